// file: internals/features/users/user/controller/admin_user_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	aiModel "studypulse_backend/internals/features/ai/model"
	actModel "studypulse_backend/internals/features/study/activities/model"
	userModel "studypulse_backend/internals/features/users/user/model"
	helper "studypulse_backend/internals/helpers"
)

// AdminUserController serves the /api/a/users surface; the admin role is
// enforced by the route group, not here.
type AdminUserController struct{ DB *gorm.DB }

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{DB: db}
}

// ===================== LIST =====================
// GET /api/a/users?role=&page=&per_page=
func (h *AdminUserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&userModel.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("user_role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	return helper.JsonList(c, "ok", users, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ===================== DETAIL =====================
// GET /api/a/users/:id
func (h *AdminUserController) Detail(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var u userModel.UserModel
	if err := h.DB.First(&u, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	return helper.JsonOK(c, "ok", u)
}

// ===================== DELETE =====================
// DELETE /api/a/users/:id
// Removes the account and the user's private study artifacts. Submissions,
// enrollments and announcement replies are kept: grading history outlives the
// account.
func (h *AdminUserController) Delete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var u userModel.UserModel
	if err := h.DB.First(&u, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_user_id = ?", userID).Delete(&actModel.ActivityModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_user_id = ?", userID).Delete(&aiModel.QuizModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_user_id = ?", userID).Delete(&aiModel.NoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("insight_user_id = ?", userID).Delete(&aiModel.InsightModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chat_message_user_id = ?", userID).Delete(&aiModel.ChatMessageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"user_id": userID})
}
