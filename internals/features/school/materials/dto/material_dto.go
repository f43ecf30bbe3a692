// file: internals/features/school/materials/dto/material_dto.go
package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "studypulse_backend/internals/features/school/materials/model"
)

/* ===================== REQUESTS ===================== */

type CreateMaterialRequest struct {
	MaterialTitle   string  `json:"material_title" validate:"required,min=2,max=180"`
	MaterialContent *string `json:"material_content" validate:"omitempty"`
}

// FromForm fills the request from a multipart form (the file is handled by the
// controller separately).
func (r *CreateMaterialRequest) FromForm(c *fiber.Ctx) {
	r.MaterialTitle = strings.TrimSpace(c.FormValue("material_title"))
	if v := strings.TrimSpace(c.FormValue("material_content")); v != "" {
		r.MaterialContent = &v
	}
}

func (r CreateMaterialRequest) ToModel(classID, teacherID uuid.UUID) *model.MaterialModel {
	m := &model.MaterialModel{
		MaterialClassID:   classID,
		MaterialTeacherID: teacherID,
		MaterialTitle:     strings.TrimSpace(r.MaterialTitle),
	}
	if r.MaterialContent != nil {
		trimmed := strings.TrimSpace(*r.MaterialContent)
		m.MaterialContent = &trimmed
	}
	return m
}

type UpdateMaterialRequest struct {
	MaterialTitle   *string `json:"material_title" validate:"omitempty,min=2,max=180"`
	MaterialContent *string `json:"material_content" validate:"omitempty"`
}

// ApplyToModel applies only the fields that were sent.
func (r *UpdateMaterialRequest) ApplyToModel(m *model.MaterialModel) {
	if r.MaterialTitle != nil {
		m.MaterialTitle = strings.TrimSpace(*r.MaterialTitle)
	}
	if r.MaterialContent != nil {
		trimmed := strings.TrimSpace(*r.MaterialContent)
		m.MaterialContent = &trimmed
	}
}
