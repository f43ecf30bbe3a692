// file: internals/features/school/classes/service/join_code.go
package service

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"gorm.io/gorm"

	model "studypulse_backend/internals/features/school/classes/model"
)

// Join codes are short upper-alphanumeric tokens; ambiguous glyphs are left in
// on purpose since codes are normally copy-pasted, not typed.
const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 6
)

// NormalizeCode is the server-side normalization applied on create and join,
// so "a1b2c3" and "A1B2C3" address the same class.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func randomCode() (string, error) {
	b := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeCharset[n.Int64()]
	}
	return string(b), nil
}

// GenerateUniqueCode samples codes until one has no collision. Termination is
// near-certain given the token entropy; the unique index backs it up anyway.
func GenerateUniqueCode(db *gorm.DB) (string, error) {
	for {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&model.ClassModel{}).Where("class_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

// FindByCode resolves a normalized join code to its class.
func FindByCode(db *gorm.DB, code string) (*model.ClassModel, error) {
	var cls model.ClassModel
	err := db.First(&cls, "class_code = ?", NormalizeCode(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &cls, nil
}
