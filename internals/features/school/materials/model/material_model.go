// file: internals/features/school/materials/model/material_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialModel struct {
	MaterialID        uuid.UUID `json:"material_id" gorm:"column:material_id;type:uuid;primaryKey"`
	MaterialClassID   uuid.UUID `json:"material_class_id" gorm:"column:material_class_id;type:uuid;not null;index:idx_materials_class"`
	MaterialTeacherID uuid.UUID `json:"material_teacher_id" gorm:"column:material_teacher_id;type:uuid;not null"`
	MaterialTitle     string    `json:"material_title" gorm:"column:material_title;type:varchar(180);not null"`
	MaterialContent   *string   `json:"material_content" gorm:"column:material_content;type:text"`
	MaterialFileURL   *string   `json:"material_file_url" gorm:"column:material_file_url;type:text"`
	MaterialCreatedAt time.Time `json:"material_created_at" gorm:"column:material_created_at;not null;autoCreateTime"`
	MaterialUpdatedAt time.Time `json:"material_updated_at" gorm:"column:material_updated_at;not null;autoUpdateTime"`
}

func (MaterialModel) TableName() string { return "materials" }

func (m *MaterialModel) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialID == uuid.Nil {
		m.MaterialID = uuid.New()
	}
	return nil
}
