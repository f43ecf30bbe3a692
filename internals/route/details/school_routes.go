// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolRoute "studypulse_backend/internals/features/school/route"
	"studypulse_backend/internals/services/notifier"
	"studypulse_backend/internals/services/storage"
)

func SchoolTeacherRoutes(teacher fiber.Router, db *gorm.DB, store storage.BlobStore, n notifier.Notifier) {
	schoolRoute.SchoolTeacherRoutes(teacher, db, store, n)
}

func SchoolUserRoutes(user fiber.Router, db *gorm.DB, store storage.BlobStore) {
	schoolRoute.SchoolUserRoutes(user, db, store)
}
