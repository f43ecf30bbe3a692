// file: internals/features/users/auth/model/refresh_token_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshTokenModel struct {
	RefreshTokenID        uuid.UUID `json:"refresh_token_id" gorm:"column:refresh_token_id;type:uuid;primaryKey"`
	RefreshTokenUserID    uuid.UUID `json:"refresh_token_user_id" gorm:"column:refresh_token_user_id;type:uuid;not null;index:idx_refresh_tokens_user"`
	RefreshTokenToken     string    `json:"-" gorm:"column:refresh_token_token;type:text;not null"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at" gorm:"column:refresh_token_expires_at;not null"`
	RefreshTokenCreatedAt time.Time `json:"refresh_token_created_at" gorm:"column:refresh_token_created_at;not null;autoCreateTime"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }

func (m *RefreshTokenModel) BeforeCreate(tx *gorm.DB) error {
	if m.RefreshTokenID == uuid.Nil {
		m.RefreshTokenID = uuid.New()
	}
	return nil
}
