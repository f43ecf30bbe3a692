// file: internals/features/school/assignments/dto/assignment_dto.go
package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "studypulse_backend/internals/features/school/assignments/model"
	subModel "studypulse_backend/internals/features/school/submissions/model"
)

/* ===================== REQUESTS ===================== */

// Create: class/teacher ids come from the route and token, never the body.
type CreateAssignmentRequest struct {
	AssignmentTitle        string     `json:"assignment_title" validate:"required,min=2,max=180"`
	AssignmentInstructions string     `json:"assignment_instructions" validate:"omitempty"`
	AssignmentDueAt        *time.Time `json:"assignment_due_at" validate:"omitempty"`
	AssignmentMaxMarks     *int       `json:"assignment_max_marks" validate:"omitempty,min=0"`
}

// FromForm fills the request from a multipart form (attachment handled by the
// controller separately).
func (r *CreateAssignmentRequest) FromForm(c *fiber.Ctx) error {
	r.AssignmentTitle = strings.TrimSpace(c.FormValue("assignment_title"))
	r.AssignmentInstructions = strings.TrimSpace(c.FormValue("assignment_instructions"))
	if v := strings.TrimSpace(c.FormValue("assignment_due_at")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return err
		}
		r.AssignmentDueAt = &t
	}
	if v := strings.TrimSpace(c.FormValue("assignment_max_marks")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		r.AssignmentMaxMarks = &n
	}
	return nil
}

func (r CreateAssignmentRequest) ToModel(classID, teacherID uuid.UUID) *model.AssignmentModel {
	return &model.AssignmentModel{
		AssignmentClassID:      classID,
		AssignmentTeacherID:    teacherID,
		AssignmentTitle:        strings.TrimSpace(r.AssignmentTitle),
		AssignmentInstructions: strings.TrimSpace(r.AssignmentInstructions),
		AssignmentDueAt:        r.AssignmentDueAt,
		AssignmentMaxMarks:     r.AssignmentMaxMarks,
	}
}

type UpdateAssignmentRequest struct {
	AssignmentTitle        *string    `json:"assignment_title" validate:"omitempty,min=2,max=180"`
	AssignmentInstructions *string    `json:"assignment_instructions" validate:"omitempty"`
	AssignmentDueAt        *time.Time `json:"assignment_due_at" validate:"omitempty"`
	AssignmentMaxMarks     *int       `json:"assignment_max_marks" validate:"omitempty,min=0"`
}

// ApplyToModel applies only the fields that were sent; everything else keeps
// its stored value.
func (r *UpdateAssignmentRequest) ApplyToModel(m *model.AssignmentModel) {
	if r.AssignmentTitle != nil {
		m.AssignmentTitle = strings.TrimSpace(*r.AssignmentTitle)
	}
	if r.AssignmentInstructions != nil {
		m.AssignmentInstructions = strings.TrimSpace(*r.AssignmentInstructions)
	}
	if r.AssignmentDueAt != nil {
		m.AssignmentDueAt = r.AssignmentDueAt
	}
	if r.AssignmentMaxMarks != nil {
		m.AssignmentMaxMarks = r.AssignmentMaxMarks
	}
}

/* ===================== RESPONSES ===================== */

// StudentAssignmentView is the per-request join of an assignment with the
// calling student's own submission. Never stored.
type StudentAssignmentView struct {
	Assignment model.AssignmentModel      `json:"assignment"`
	Closed     bool                       `json:"closed"`
	Submitted  bool                       `json:"submitted"`
	Submission *subModel.SubmissionModel  `json:"submission"`
}
