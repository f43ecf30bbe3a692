// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "studypulse_backend/internals/features/users/user/route"
)

func UserRoutes(user fiber.Router, db *gorm.DB) {
	userRoute.UserRoutes(user, db)
}

func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.AdminUserRoutes(admin, db)
}
