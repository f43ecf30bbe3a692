// file: internals/features/school/submissions/controller/submission_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	asgModel "studypulse_backend/internals/features/school/assignments/model"
	"studypulse_backend/internals/features/school/guard"
	subDTO "studypulse_backend/internals/features/school/submissions/dto"
	subModel "studypulse_backend/internals/features/school/submissions/model"
	helper "studypulse_backend/internals/helpers"
	"studypulse_backend/internals/services/storage"
)

type SubmissionController struct {
	DB    *gorm.DB
	Store storage.BlobStore
}

func NewSubmissionController(db *gorm.DB, store storage.BlobStore) *SubmissionController {
	return &SubmissionController{DB: db, Store: store}
}

var validateSubmission = validator.New()

func (h *SubmissionController) findAssignment(classID, assignmentID uuid.UUID) (*asgModel.AssignmentModel, error) {
	var m asgModel.AssignmentModel
	err := h.DB.First(&m, "assignment_id = ? AND assignment_class_id = ?", assignmentID, classID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ===================== SUBMIT =====================
// POST /api/u/classes/:classId/assignments/:assignmentId/submit
//
// The (assignment, student) pair is guarded by a unique compound index and the
// write is an upsert, so two racing submits cannot leave two rows behind.
func (h *SubmissionController) Submit(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	if _, err := guard.EnsureEnrolled(h.DB, classID, studentID); err != nil {
		return guard.HTTPError(c, err)
	}

	assignment, err := h.findAssignment(classID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignment")
	}

	now := time.Now()
	if assignment.IsClosed(now) {
		return helper.JsonError(c, fiber.StatusConflict, "Cannot submit after the due date")
	}

	answerText := strings.TrimSpace(c.FormValue("answer_text"))
	fh, _ := c.FormFile("file")
	if answerText == "" && fh == nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Provide an answer text or a file")
	}

	// replacing a submission replaces its blob as well; a missing blob is fine
	var prev subModel.SubmissionModel
	if err := h.DB.First(&prev,
		"submission_assignment_id = ? AND submission_student_id = ?", assignmentID, studentID,
	).Error; err == nil && prev.SubmissionFileURL != nil {
		if err := h.Store.Delete(c.UserContext(), *prev.SubmissionFileURL); err != nil {
			log.Printf("submission blob delete: %v", err)
		}
	}

	m := subModel.SubmissionModel{
		SubmissionAssignmentID: assignmentID,
		SubmissionStudentID:    studentID,
		SubmissionSubmittedAt:  now,
	}
	if answerText != "" {
		m.SubmissionAnswerText = &answerText
	}
	if fh != nil {
		url, err := storage.SaveUpload(c.UserContext(), h.Store, "submissions", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
		}
		m.SubmissionFileURL = &url
	}

	// resubmit overwrites content and clears any earlier grade
	if err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "submission_assignment_id"},
			{Name: "submission_student_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"submission_file_url":     m.SubmissionFileURL,
			"submission_answer_text":  m.SubmissionAnswerText,
			"submission_marks":        nil,
			"submission_feedback":     nil,
			"submission_submitted_at": m.SubmissionSubmittedAt,
		}),
	}).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit")
	}

	var saved subModel.SubmissionModel
	if err := h.DB.First(&saved,
		"submission_assignment_id = ? AND submission_student_id = ?", assignmentID, studentID,
	).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load submission")
	}
	return helper.JsonCreated(c, "Submitted", saved)
}

// ===================== UNSEND =====================
// DELETE /api/u/classes/:classId/assignments/:assignmentId/unsend
func (h *SubmissionController) Unsend(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	if _, err := guard.EnsureEnrolled(h.DB, classID, studentID); err != nil {
		return guard.HTTPError(c, err)
	}

	assignment, err := h.findAssignment(classID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignment")
	}

	if assignment.IsClosed(time.Now()) {
		return helper.JsonError(c, fiber.StatusConflict, "Cannot unsend after the due date")
	}

	var m subModel.SubmissionModel
	if err := h.DB.First(&m,
		"submission_assignment_id = ? AND submission_student_id = ?", assignmentID, studentID,
	).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to unsend")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load submission")
	}

	if m.SubmissionFileURL != nil {
		if err := h.Store.Delete(c.UserContext(), *m.SubmissionFileURL); err != nil {
			log.Printf("submission blob delete: %v", err)
		}
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unsend")
	}
	return helper.JsonDeleted(c, "Submission removed", fiber.Map{"submission_id": m.SubmissionID})
}

// ===================== GRADE =====================
// PUT /api/t/classes/:classId/assignments/:assignmentId/submissions/:id/marks
//
// Grading stays open indefinitely; the due date only gates the student surface.
func (h *SubmissionController) Grade(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	submissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	assignment, err := h.findAssignment(classID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignment")
	}

	var req subDTO.GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateSubmission.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m subModel.SubmissionModel
	if err := h.DB.First(&m,
		"submission_id = ? AND submission_assignment_id = ?", submissionID, assignmentID,
	).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load submission")
	}

	marks := clampMarks(req.Marks, assignment.AssignmentMaxMarks)
	m.SubmissionMarks = &marks
	if req.Feedback != nil {
		fb := strings.TrimSpace(*req.Feedback)
		m.SubmissionFeedback = &fb
	}
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grade submission")
	}
	return helper.JsonUpdated(c, "Submission graded", m)
}

// clampMarks keeps a grade inside [0, max]; a nil max clamps to 0.
func clampMarks(marks int, max *int) int {
	if marks < 0 {
		return 0
	}
	limit := 0
	if max != nil {
		limit = *max
	}
	if marks > limit {
		return limit
	}
	return marks
}

// ===================== LIST (teacher) =====================
// GET /api/t/classes/:classId/assignments/:assignmentId/submissions
func (h *SubmissionController) ListForTeacher(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}
	if _, err := h.findAssignment(classID, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignment")
	}

	var views []subDTO.TeacherSubmissionView
	if err := h.DB.Model(&subModel.SubmissionModel{}).
		Select(`submissions.submission_id, submissions.submission_student_id,
			users.user_name AS student_name, users.user_email AS student_email,
			submissions.submission_file_url, submissions.submission_answer_text,
			submissions.submission_marks, submissions.submission_feedback,
			submissions.submission_submitted_at`).
		Joins("JOIN users ON users.user_id = submissions.submission_student_id").
		Where("submissions.submission_assignment_id = ?", assignmentID).
		Order("submissions.submission_submitted_at ASC").
		Scan(&views).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list submissions")
	}
	return helper.JsonOK(c, "ok", views)
}
