// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studypulse_backend/internals/configs"
	authDTO "studypulse_backend/internals/features/users/auth/dto"
	authService "studypulse_backend/internals/features/users/auth/service"
	userModel "studypulse_backend/internals/features/users/user/model"
	helper "studypulse_backend/internals/helpers"
)

type AuthController struct{ DB *gorm.DB }

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var validateAuth = validator.New()

// ===================== REGISTER =====================
// POST /api/auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.DB.Model(&userModel.UserModel{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check email")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	u := userModel.UserModel{
		UserName:     strings.TrimSpace(req.UserName),
		UserEmail:    email,
		UserPassword: string(hash),
		UserRole:     req.Role,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		// unique index catches the race between check and insert
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}
	return helper.JsonCreated(c, "Account created", userLite(&u))
}

// ===================== LOGIN =====================
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u userModel.UserModel
	if err := h.DB.First(&u, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return h.issuePair(c, &u, "Logged in")
}

// ===================== GOOGLE LOGIN =====================
// POST /api/auth/login-google
// Verifies the ID token, then finds or creates the account as a student.
func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google account has no email")
	}

	var u userModel.UserModel
	err = h.DB.First(&u, "user_email = ?", email).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		name := strings.TrimSpace(claimSet.Name)
		if name == "" {
			name = email
		}
		u = userModel.UserModel{
			UserName:  name,
			UserEmail: email,
			// no usable local password for a federated account
			UserPassword: "-",
			UserRole:     "student",
		}
		if err := h.DB.Create(&u).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load account")
	}

	return h.issuePair(c, &u, "Logged in")
}

// ===================== REFRESH =====================
// POST /api/auth/refresh — rotation: the presented token is consumed.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	now := time.Now()
	u, next, err := authService.RotateRefreshToken(h.DB, req.RefreshToken, now)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidRefreshToken) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to refresh session")
	}

	access, err := authService.IssueAccessToken(u, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return helper.JsonOK(c, "Session refreshed", authDTO.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: next,
		User:         userLite(u),
	})
}

// ===================== LOGOUT =====================
// POST /api/auth/logout (authenticated)
// Blacklists the presented access token and revokes the refresh family.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	token, _ := c.Locals("access_token").(string)
	if token == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing access token")
	}

	now := time.Now()
	if err := authService.BlacklistAccessToken(h.DB, token, now); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
	}
	if err := authService.RevokeUserRefreshTokens(h.DB, &userModel.UserModel{UserID: userID}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log out")
	}
	return helper.JsonOK(c, "Logged out", fiber.Map{"user_id": userID})
}

func (h *AuthController) issuePair(c *fiber.Ctx, u *userModel.UserModel, message string) error {
	now := time.Now()
	access, err := authService.IssueAccessToken(u, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	refresh, err := authService.IssueRefreshToken(h.DB, u, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return helper.JsonOK(c, message, authDTO.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userLite(u),
	})
}

func userLite(u *userModel.UserModel) authDTO.UserLite {
	return authDTO.UserLite{
		UserID:   u.UserID.String(),
		UserName: u.UserName,
		Email:    u.UserEmail,
		Role:     u.UserRole,
	}
}
