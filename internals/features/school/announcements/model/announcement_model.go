// file: internals/features/school/announcements/model/announcement_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnnouncementReply is one entry of the append-only reply log. AuthorName is a
// snapshot of the display name at post time, not a live reference; a later
// profile rename does not rewrite history.
type AnnouncementReply struct {
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AuthorRole string    `json:"author_role"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnnouncementModel maps the `announcements` table. Replies live inline as a
// JSONB log ordered by append; they are never edited or deleted once posted.
type AnnouncementModel struct {
	AnnouncementID            uuid.UUID      `json:"announcement_id" gorm:"column:announcement_id;type:uuid;primaryKey"`
	AnnouncementClassID       uuid.UUID      `json:"announcement_class_id" gorm:"column:announcement_class_id;type:uuid;not null;index:idx_announcements_class"`
	AnnouncementTeacherID     uuid.UUID      `json:"announcement_teacher_id" gorm:"column:announcement_teacher_id;type:uuid;not null"`
	AnnouncementText          string         `json:"announcement_text" gorm:"column:announcement_text;type:text;not null"`
	AnnouncementAttachmentURL *string        `json:"announcement_attachment_url" gorm:"column:announcement_attachment_url;type:text"`
	AnnouncementReplies       datatypes.JSON `json:"announcement_replies" gorm:"column:announcement_replies;type:jsonb"`
	AnnouncementCreatedAt     time.Time      `json:"announcement_created_at" gorm:"column:announcement_created_at;not null;autoCreateTime;index:idx_announcements_created,sort:desc"`
	AnnouncementUpdatedAt     time.Time      `json:"announcement_updated_at" gorm:"column:announcement_updated_at;not null;autoUpdateTime"`
}

func (AnnouncementModel) TableName() string { return "announcements" }

func (m *AnnouncementModel) BeforeCreate(tx *gorm.DB) error {
	if m.AnnouncementID == uuid.Nil {
		m.AnnouncementID = uuid.New()
	}
	if len(m.AnnouncementReplies) == 0 {
		m.AnnouncementReplies = datatypes.JSON([]byte("[]"))
	}
	return nil
}

// Replies decodes the inline reply log.
func (m *AnnouncementModel) Replies() ([]AnnouncementReply, error) {
	if len(m.AnnouncementReplies) == 0 {
		return []AnnouncementReply{}, nil
	}
	var out []AnnouncementReply
	if err := json.Unmarshal(m.AnnouncementReplies, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendReply pushes onto the reply log, preserving append order.
func (m *AnnouncementModel) AppendReply(r AnnouncementReply) error {
	replies, err := m.Replies()
	if err != nil {
		return err
	}
	replies = append(replies, r)
	raw, err := json.Marshal(replies)
	if err != nil {
		return err
	}
	m.AnnouncementReplies = datatypes.JSON(raw)
	return nil
}
