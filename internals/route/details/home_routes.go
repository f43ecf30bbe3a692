// file: internals/route/details/home_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "studypulse_backend/internals/features/home/notifications/route"
)

func HomeUserRoutes(user fiber.Router, db *gorm.DB) {
	notificationRoute.NotificationRoutes(user, db)
}
