// file: internals/features/school/announcements/dto/announcement_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	model "studypulse_backend/internals/features/school/announcements/model"
)

/* ===================== REQUESTS ===================== */

type CreateAnnouncementRequest struct {
	AnnouncementText string `json:"announcement_text" validate:"required,min=1"`
}

func (r CreateAnnouncementRequest) ToModel(classID, teacherID uuid.UUID) *model.AnnouncementModel {
	return &model.AnnouncementModel{
		AnnouncementClassID:   classID,
		AnnouncementTeacherID: teacherID,
		AnnouncementText:      strings.TrimSpace(r.AnnouncementText),
	}
}

type UpdateAnnouncementRequest struct {
	AnnouncementText string `json:"announcement_text" validate:"required,min=1"`
}

type ReplyRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

/* ===================== RESPONSES ===================== */

// AnnouncementView carries the decoded reply log alongside the record so
// clients never have to parse the raw JSON column.
type AnnouncementView struct {
	Announcement model.AnnouncementModel   `json:"announcement"`
	Replies      []model.AnnouncementReply `json:"replies"`
}
