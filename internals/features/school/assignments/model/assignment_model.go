// file: internals/features/school/assignments/model/assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentModel maps the `assignments` table. Open/Closed is never stored:
// it is derived per request from the due date (see IsClosed).
type AssignmentModel struct {
	AssignmentID            uuid.UUID      `json:"assignment_id" gorm:"column:assignment_id;type:uuid;primaryKey"`
	AssignmentClassID       uuid.UUID      `json:"assignment_class_id" gorm:"column:assignment_class_id;type:uuid;not null;index:idx_assignments_class"`
	AssignmentTeacherID     uuid.UUID      `json:"assignment_teacher_id" gorm:"column:assignment_teacher_id;type:uuid;not null"`
	AssignmentTitle         string         `json:"assignment_title" gorm:"column:assignment_title;type:varchar(180);not null"`
	AssignmentInstructions  string         `json:"assignment_instructions" gorm:"column:assignment_instructions;type:text"`
	AssignmentDueAt         *time.Time     `json:"assignment_due_at" gorm:"column:assignment_due_at"`
	AssignmentMaxMarks      *int           `json:"assignment_max_marks" gorm:"column:assignment_max_marks"`
	AssignmentAttachmentURL *string        `json:"assignment_attachment_url" gorm:"column:assignment_attachment_url;type:text"`
	AssignmentCreatedAt     time.Time      `json:"assignment_created_at" gorm:"column:assignment_created_at;not null;autoCreateTime"`
	AssignmentUpdatedAt     time.Time      `json:"assignment_updated_at" gorm:"column:assignment_updated_at;not null;autoUpdateTime"`
	AssignmentDeletedAt     gorm.DeletedAt `json:"-" gorm:"column:assignment_deleted_at;index"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentID == uuid.Nil {
		m.AssignmentID = uuid.New()
	}
	return nil
}

// IsClosed reports whether the submission window is shut at the given instant.
// A nil due date means the assignment never closes.
func (m *AssignmentModel) IsClosed(now time.Time) bool {
	return m.AssignmentDueAt != nil && now.After(*m.AssignmentDueAt)
}
