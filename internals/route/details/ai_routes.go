// file: internals/route/details/ai_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aiRoute "studypulse_backend/internals/features/ai/route"
	"studypulse_backend/internals/services/aigen"
)

func AIUserRoutes(user fiber.Router, db *gorm.DB, gen aigen.Generator) {
	aiRoute.AIRoutes(user, db, gen)
}
