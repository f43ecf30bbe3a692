// file: internals/features/school/materials/controller/material_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	clsController "studypulse_backend/internals/features/school/classes/controller"
	"studypulse_backend/internals/features/school/guard"
	matDTO "studypulse_backend/internals/features/school/materials/dto"
	matModel "studypulse_backend/internals/features/school/materials/model"
	helper "studypulse_backend/internals/helpers"
	"studypulse_backend/internals/services/notifier"
	"studypulse_backend/internals/services/storage"
)

type MaterialController struct {
	DB       *gorm.DB
	Store    storage.BlobStore
	Notifier notifier.Notifier
}

func NewMaterialController(db *gorm.DB, store storage.BlobStore, n notifier.Notifier) *MaterialController {
	return &MaterialController{DB: db, Store: store, Notifier: n}
}

var validateMaterial = validator.New()

// ===================== CREATE =====================
// POST /api/t/classes/:classId/materials (multipart or JSON)
// Publishing a material pings every enrolled student; delivery is best effort
// and never blocks the response.
func (h *MaterialController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	cls, err := guard.EnsureClassTeacher(h.DB, classID, teacherID)
	if err != nil {
		return guard.HTTPError(c, err)
	}

	var req matDTO.CreateMaterialRequest
	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		req.FromForm(c)
	} else {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
		}
	}
	if err := validateMaterial.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := req.ToModel(classID, teacherID)

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		url, err := storage.SaveUpload(c.UserContext(), h.Store, "materials", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
		}
		m.MaterialFileURL = &url
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create material")
	}

	h.fanOut(cls.ClassID, notifier.Event{
		Title: "New material in " + cls.ClassName,
		Body:  m.MaterialTitle,
		Tags:  []string{"material", cls.ClassID.String()},
	})
	return helper.JsonCreated(c, "Material published", m)
}

// ===================== LIST =====================
// GET /api/t|u/classes/:classId/materials
func (h *MaterialController) List(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, _ := helper.GetRoleFromLocals(c)
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	if _, err := guard.EnsureClassReader(h.DB, classID, callerID, role); err != nil {
		return guard.HTTPError(c, err)
	}

	var materials []matModel.MaterialModel
	if err := h.DB.Where("material_class_id = ?", classID).
		Order("material_created_at DESC").Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list materials")
	}
	return helper.JsonOK(c, "ok", materials)
}

// ===================== DETAIL =====================
// GET /api/t|u/classes/:classId/materials/:id
func (h *MaterialController) Detail(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, _ := helper.GetRoleFromLocals(c)
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}
	if _, err := guard.EnsureClassReader(h.DB, classID, callerID, role); err != nil {
		return guard.HTTPError(c, err)
	}

	m, err := h.find(classID, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load material")
	}
	return helper.JsonOK(c, "ok", m)
}

// ===================== UPDATE =====================
// PUT /api/t/classes/:classId/materials/:id
func (h *MaterialController) Update(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	m, err := h.find(classID, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load material")
	}

	var req matDTO.UpdateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateMaterial.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	req.ApplyToModel(m)

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		if m.MaterialFileURL != nil {
			if err := h.Store.Delete(c.UserContext(), *m.MaterialFileURL); err != nil {
				log.Printf("material file delete: %v", err)
			}
		}
		url, err := storage.SaveUpload(c.UserContext(), h.Store, "materials", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
		}
		m.MaterialFileURL = &url
	}

	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update material")
	}
	return helper.JsonUpdated(c, "Material updated", m)
}

// ===================== DELETE =====================
// DELETE /api/t/classes/:classId/materials/:id
func (h *MaterialController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	materialID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	m, err := h.find(classID, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load material")
	}

	if m.MaterialFileURL != nil {
		if err := h.Store.Delete(c.UserContext(), *m.MaterialFileURL); err != nil {
			log.Printf("material file delete: %v", err)
		}
	}
	if err := h.DB.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete material")
	}
	return helper.JsonDeleted(c, "Material deleted", fiber.Map{"material_id": m.MaterialID})
}

func (h *MaterialController) find(classID, materialID uuid.UUID) (*matModel.MaterialModel, error) {
	var m matModel.MaterialModel
	err := h.DB.First(&m, "material_id = ? AND material_class_id = ?", materialID, classID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *MaterialController) fanOut(classID uuid.UUID, ev notifier.Event) {
	users, err := clsController.LoadRecipients(h.DB, classID)
	if err != nil {
		log.Printf("material fan-out: %v", err)
		return
	}
	recipients := make([]notifier.Recipient, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, notifier.Recipient{
			UserID: u.UserID,
			Name:   u.UserName,
			Email:  u.UserEmail,
		})
	}
	h.Notifier.Notify(recipients, ev)
}
