// file: internals/features/users/auth/model/token_blacklist_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklistModel holds access tokens revoked by logout until they expire.
type TokenBlacklistModel struct {
	TokenBlacklistID        uuid.UUID `json:"token_blacklist_id" gorm:"column:token_blacklist_id;type:uuid;primaryKey"`
	TokenBlacklistToken     string    `json:"-" gorm:"column:token_blacklist_token;type:text;not null;index:idx_token_blacklist_token"`
	TokenBlacklistExpiresAt time.Time `json:"token_blacklist_expires_at" gorm:"column:token_blacklist_expires_at;not null"`
	TokenBlacklistCreatedAt time.Time `json:"token_blacklist_created_at" gorm:"column:token_blacklist_created_at;not null;autoCreateTime"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }

func (m *TokenBlacklistModel) BeforeCreate(tx *gorm.DB) error {
	if m.TokenBlacklistID == uuid.Nil {
		m.TokenBlacklistID = uuid.New()
	}
	return nil
}
