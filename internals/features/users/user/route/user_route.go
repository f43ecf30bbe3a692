// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "studypulse_backend/internals/features/users/user/controller"
)

// UserRoutes mounts the self-service profile endpoints on the user group.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	r.Get("/users/me", ctrl.Me)
	r.Put("/users/me", ctrl.UpdateMe)
}

// AdminUserRoutes mounts user management on the admin group.
func AdminUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewAdminUserController(db)

	r.Get("/users", ctrl.List)
	r.Get("/users/:id", ctrl.Detail)
	r.Delete("/users/:id", ctrl.Delete)
}
