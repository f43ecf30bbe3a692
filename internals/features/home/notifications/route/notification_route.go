// file: internals/features/home/notifications/route/notification_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifController "studypulse_backend/internals/features/home/notifications/controller"
)

// NotificationRoutes mounts the inbox on the user group.
func NotificationRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := notifController.NewNotificationController(db)

	r.Get("/notifications", ctrl.List)
	r.Put("/notifications/:id/read", ctrl.MarkRead)
}
