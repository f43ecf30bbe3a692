// file: internals/features/home/notifications/controller/notification_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "studypulse_backend/internals/features/home/notifications/model"
	helper "studypulse_backend/internals/helpers"
)

type NotificationController struct{ DB *gorm.DB }

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ===================== LIST =====================
// GET /api/u/notifications — caller's own, newest first, paginated.
func (h *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ?", userID).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var rows []notifModel.NotificationModel
	if err := h.DB.Where("notification_user_id = ?", userID).
		Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list notifications")
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ===================== MARK READ =====================
// PUT /api/u/notifications/:id/read — idempotent, keeps the first read time.
func (h *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	var m notifModel.NotificationModel
	if err := h.DB.First(&m,
		"notification_id = ? AND notification_user_id = ?", notificationID, userID,
	).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load notification")
	}

	if m.NotificationReadAt == nil {
		now := time.Now()
		m.NotificationReadAt = &now
		if err := h.DB.Save(&m).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark notification")
		}
	}
	return helper.JsonUpdated(c, "Notification read", m)
}
