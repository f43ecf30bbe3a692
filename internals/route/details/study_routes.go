// file: internals/route/details/study_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityRoute "studypulse_backend/internals/features/study/activities/route"
)

func StudyUserRoutes(user fiber.Router, db *gorm.DB) {
	activityRoute.ActivityRoutes(user, db)
}
