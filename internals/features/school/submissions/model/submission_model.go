// file: internals/features/school/submissions/model/submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionModel maps the `submissions` table. The compound unique index on
// (assignment, student) is what makes "at most one submission per pair" hold
// under concurrent resubmits; submit is an upsert against it.
type SubmissionModel struct {
	SubmissionID           uuid.UUID  `json:"submission_id" gorm:"column:submission_id;type:uuid;primaryKey"`
	SubmissionAssignmentID uuid.UUID  `json:"submission_assignment_id" gorm:"column:submission_assignment_id;type:uuid;not null;uniqueIndex:uq_submissions_pair,priority:1"`
	SubmissionStudentID    uuid.UUID  `json:"submission_student_id" gorm:"column:submission_student_id;type:uuid;not null;uniqueIndex:uq_submissions_pair,priority:2"`
	SubmissionFileURL      *string    `json:"submission_file_url" gorm:"column:submission_file_url;type:text"`
	SubmissionAnswerText   *string    `json:"submission_answer_text" gorm:"column:submission_answer_text;type:text"`
	SubmissionMarks        *int       `json:"submission_marks" gorm:"column:submission_marks"`
	SubmissionFeedback     *string    `json:"submission_feedback" gorm:"column:submission_feedback;type:text"`
	SubmissionSubmittedAt  time.Time  `json:"submission_submitted_at" gorm:"column:submission_submitted_at;not null"`
	SubmissionCreatedAt    time.Time  `json:"submission_created_at" gorm:"column:submission_created_at;not null;autoCreateTime"`
	SubmissionUpdatedAt    time.Time  `json:"submission_updated_at" gorm:"column:submission_updated_at;not null;autoUpdateTime"`
}

func (SubmissionModel) TableName() string { return "submissions" }

func (m *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	return nil
}
