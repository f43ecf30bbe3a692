// file: internals/features/school/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel maps the `classes` table. The join code is a short unique
// upper-alphanumeric token handed out for self-service enrollment.
type ClassModel struct {
	ClassID        uuid.UUID      `json:"class_id" gorm:"column:class_id;type:uuid;primaryKey"`
	ClassTeacherID uuid.UUID      `json:"class_teacher_id" gorm:"column:class_teacher_id;type:uuid;not null;index:idx_classes_teacher"`
	ClassName      string         `json:"class_name" gorm:"column:class_name;type:varchar(150);not null"`
	ClassSubject   string         `json:"class_subject" gorm:"column:class_subject;type:varchar(100);not null"`
	ClassCode      string         `json:"class_code" gorm:"column:class_code;type:varchar(12);not null;uniqueIndex:uq_classes_code"`
	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"-" gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
