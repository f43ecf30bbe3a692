// file: internals/features/school/classes/model/class_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassStudentModel is one enrollment row. The compound unique index is the
// real membership guarantee; the controller's pre-check only picks the nicer
// error message.
type ClassStudentModel struct {
	ClassStudentID        uuid.UUID `json:"class_student_id" gorm:"column:class_student_id;type:uuid;primaryKey"`
	ClassStudentClassID   uuid.UUID `json:"class_student_class_id" gorm:"column:class_student_class_id;type:uuid;not null;uniqueIndex:uq_class_students_pair,priority:1"`
	ClassStudentUserID    uuid.UUID `json:"class_student_user_id" gorm:"column:class_student_user_id;type:uuid;not null;uniqueIndex:uq_class_students_pair,priority:2"`
	ClassStudentCreatedAt time.Time `json:"class_student_created_at" gorm:"column:class_student_created_at;not null;autoCreateTime"`
}

func (ClassStudentModel) TableName() string { return "class_students" }

func (m *ClassStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassStudentID == uuid.Nil {
		m.ClassStudentID = uuid.New()
	}
	return nil
}
