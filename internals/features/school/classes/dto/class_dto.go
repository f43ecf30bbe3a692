// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	model "studypulse_backend/internals/features/school/classes/model"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	ClassName    string `json:"class_name" validate:"required,min=2,max=150"`
	ClassSubject string `json:"class_subject" validate:"required,min=2,max=100"`
}

func (r CreateClassRequest) ToModel(teacherID uuid.UUID, code string) *model.ClassModel {
	return &model.ClassModel{
		ClassTeacherID: teacherID,
		ClassName:      strings.TrimSpace(r.ClassName),
		ClassSubject:   strings.TrimSpace(r.ClassSubject),
		ClassCode:      code,
	}
}

type UpdateClassRequest struct {
	ClassName    *string `json:"class_name" validate:"omitempty,min=2,max=150"`
	ClassSubject *string `json:"class_subject" validate:"omitempty,min=2,max=100"`
}

// ApplyToModel applies only the fields that were sent.
func (r *UpdateClassRequest) ApplyToModel(m *model.ClassModel) {
	if r.ClassName != nil {
		m.ClassName = strings.TrimSpace(*r.ClassName)
	}
	if r.ClassSubject != nil {
		m.ClassSubject = strings.TrimSpace(*r.ClassSubject)
	}
}

type JoinClassRequest struct {
	Code string `json:"code" validate:"required,min=4,max=12"`
}

/* ===================== RESPONSES ===================== */

type ClassStudentLite struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"user_name"`
	JoinedAt string    `json:"joined_at"`
}
