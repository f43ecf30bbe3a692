// file: internals/features/school/assignments/controller/assignment_controller.go
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

	asgDTO "studypulse_backend/internals/features/school/assignments/dto"
	asgModel "studypulse_backend/internals/features/school/assignments/model"
	"studypulse_backend/internals/features/school/guard"
	subModel "studypulse_backend/internals/features/school/submissions/model"
	helper "studypulse_backend/internals/helpers"
	"studypulse_backend/internals/services/storage"
)

type AssignmentController struct {
	DB    *gorm.DB
	Store storage.BlobStore
}

func NewAssignmentController(db *gorm.DB, store storage.BlobStore) *AssignmentController {
	return &AssignmentController{DB: db, Store: store}
}

var validateAssignment = validator.New()

// ===================== CREATE =====================
// POST /api/t/classes/:classId/assignments (multipart or JSON)
func (h *AssignmentController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	var req asgDTO.CreateAssignmentRequest
	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		if err := req.FromForm(c); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form payload")
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
		}
	}
	if err := validateAssignment.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := req.ToModel(classID, teacherID)

	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		url, err := storage.SaveUpload(c.UserContext(), h.Store, "assignments", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store attachment")
		}
		m.AssignmentAttachmentURL = &url
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create assignment")
	}
	return helper.JsonCreated(c, "Assignment created", m)
}

// ===================== LIST (teacher) =====================
// GET /api/t/classes/:classId/assignments — bare records.
func (h *AssignmentController) ListForTeacher(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	var assignments []asgModel.AssignmentModel
	if err := h.DB.Where("assignment_class_id = ?", classID).
		Order("assignment_created_at DESC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list assignments")
	}
	return helper.JsonOK(c, "ok", assignments)
}

// ===================== LIST (student) =====================
// GET /api/u/classes/:classId/assignments — each record joined with the
// caller's own submission, computed per request.
func (h *AssignmentController) ListForStudent(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	if _, err := guard.EnsureEnrolled(h.DB, classID, studentID); err != nil {
		return guard.HTTPError(c, err)
	}

	var assignments []asgModel.AssignmentModel
	if err := h.DB.Where("assignment_class_id = ?", classID).
		Order("assignment_created_at DESC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list assignments")
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.AssignmentID)
	}
	var submissions []subModel.SubmissionModel
	if len(ids) > 0 {
		if err := h.DB.
			Where("submission_assignment_id IN ? AND submission_student_id = ?", ids, studentID).
			Find(&submissions).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load submissions")
		}
	}
	byAssignment := make(map[uuid.UUID]*subModel.SubmissionModel, len(submissions))
	for i := range submissions {
		byAssignment[submissions[i].SubmissionAssignmentID] = &submissions[i]
	}

	now := time.Now()
	views := make([]asgDTO.StudentAssignmentView, 0, len(assignments))
	for _, a := range assignments {
		sub := byAssignment[a.AssignmentID]
		views = append(views, asgDTO.StudentAssignmentView{
			Assignment: a,
			Closed:     a.IsClosed(now),
			Submitted:  sub != nil,
			Submission: sub,
		})
	}
	return helper.JsonOK(c, "ok", views)
}

// ===================== UPDATE =====================
// PUT /api/t/classes/:classId/assignments/:id
func (h *AssignmentController) Update(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	var m asgModel.AssignmentModel
	if err := h.DB.First(&m, "assignment_id = ? AND assignment_class_id = ?", assignmentID, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignment")
	}

	var req asgDTO.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssignment.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	req.ApplyToModel(&m)

	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		if m.AssignmentAttachmentURL != nil {
			if err := h.Store.Delete(c.UserContext(), *m.AssignmentAttachmentURL); err != nil {
				log.Printf("assignment attachment delete: %v", err)
			}
		}
		url, err := storage.SaveUpload(c.UserContext(), h.Store, "assignments", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store attachment")
		}
		m.AssignmentAttachmentURL = &url
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update assignment")
	}
	return helper.JsonUpdated(c, "Assignment updated", m)
}

// ===================== DELETE =====================
// DELETE /api/t/classes/:classId/assignments/:id
func (h *AssignmentController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	var m asgModel.AssignmentModel
	if err := h.DB.First(&m, "assignment_id = ? AND assignment_class_id = ?", assignmentID, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignment")
	}

	if m.AssignmentAttachmentURL != nil {
		if err := h.Store.Delete(c.UserContext(), *m.AssignmentAttachmentURL); err != nil {
			log.Printf("assignment attachment delete: %v", err)
		}
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"assignment_id": m.AssignmentID})
}
