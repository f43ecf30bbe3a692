// file: internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studypulse_backend/internals/configs"
	authModel "studypulse_backend/internals/features/users/auth/model"
	userModel "studypulse_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// IssueAccessToken mints the short-lived JWT the auth middleware consumes.
// The claims mirror what the middleware stores into locals.
func IssueAccessToken(u *userModel.UserModel, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":        u.UserID.String(),
		"role":      u.UserRole,
		"user_name": u.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// IssueRefreshToken mints the long-lived token and persists it; refresh is
// only honored for tokens that still have a live row.
func IssueRefreshToken(db *gorm.DB, u *userModel.UserModel, now time.Time) (string, error) {
	expiresAt := now.Add(RefreshTokenTTL)
	claims := jwt.MapClaims{
		"id":  u.UserID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", err
	}

	row := authModel.RefreshTokenModel{
		RefreshTokenUserID:    u.UserID,
		RefreshTokenToken:     signed,
		RefreshTokenExpiresAt: expiresAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return "", err
	}
	return signed, nil
}

// RotateRefreshToken validates a presented token against both its signature
// and its stored row, then replaces the row in one transaction.
func RotateRefreshToken(db *gorm.DB, presented string, now time.Time) (*userModel.UserModel, string, error) {
	parsed, err := jwt.Parse(presented, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefreshToken
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, "", ErrInvalidRefreshToken
	}

	var row authModel.RefreshTokenModel
	if err := db.First(&row, "refresh_token_token = ?", presented).Error; err != nil {
		return nil, "", ErrInvalidRefreshToken
	}
	if now.After(row.RefreshTokenExpiresAt) {
		_ = db.Delete(&row).Error
		return nil, "", ErrInvalidRefreshToken
	}

	var user userModel.UserModel
	if err := db.First(&user, "user_id = ?", row.RefreshTokenUserID).Error; err != nil {
		return nil, "", ErrInvalidRefreshToken
	}

	var next string
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		signed, err := IssueRefreshToken(tx, &user, now)
		if err != nil {
			return err
		}
		next = signed
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return &user, next, nil
}

// BlacklistAccessToken parks a revoked access token until its natural expiry.
func BlacklistAccessToken(db *gorm.DB, token string, now time.Time) error {
	row := authModel.TokenBlacklistModel{
		TokenBlacklistToken:     token,
		TokenBlacklistExpiresAt: now.Add(AccessTokenTTL),
	}
	return db.Create(&row).Error
}

// RevokeUserRefreshTokens drops every live refresh token for a user.
func RevokeUserRefreshTokens(db *gorm.DB, u *userModel.UserModel) error {
	return db.Where("refresh_token_user_id = ?", u.UserID).
		Delete(&authModel.RefreshTokenModel{}).Error
}
