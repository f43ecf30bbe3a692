// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel maps the `users` table. Role is a flat enum; it is set at
// registration and never changed through the normal flow.
type UserModel struct {
	UserID       uuid.UUID      `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserName     string         `json:"user_name" gorm:"column:user_name;type:varchar(100);not null"`
	UserEmail    string         `json:"user_email" gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	UserPassword string         `json:"-" gorm:"column:user_password;type:text;not null"`
	UserRole     string         `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:student"`
	UserCreatedAt time.Time     `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserUpdatedAt time.Time     `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"-" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
