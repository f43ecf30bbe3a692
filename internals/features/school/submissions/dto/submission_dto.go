// file: internals/features/school/submissions/dto/submission_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type GradeSubmissionRequest struct {
	Marks    int     `json:"marks"`
	Feedback *string `json:"feedback" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

// TeacherSubmissionView populates student identity for the grading list.
type TeacherSubmissionView struct {
	SubmissionID          uuid.UUID  `json:"submission_id"`
	SubmissionStudentID   uuid.UUID  `json:"submission_student_id"`
	StudentName           string     `json:"student_name"`
	StudentEmail          string     `json:"student_email"`
	SubmissionFileURL     *string    `json:"submission_file_url"`
	SubmissionAnswerText  *string    `json:"submission_answer_text"`
	SubmissionMarks       *int       `json:"submission_marks"`
	SubmissionFeedback    *string    `json:"submission_feedback"`
	SubmissionSubmittedAt time.Time  `json:"submission_submitted_at"`
}
