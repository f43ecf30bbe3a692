// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "studypulse_backend/internals/features/users/auth/controller"
	"studypulse_backend/internals/middlewares"
	authMw "studypulse_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public auth surface plus the authenticated logout.
// The tighter limiter applies to the whole group: credential endpoints are the
// ones worth brute-forcing.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	grp := app.Group("/api/auth", middlewares.AuthRateLimiter())
	grp.Post("/register", ctrl.Register)
	grp.Post("/login", ctrl.Login)
	grp.Post("/login-google", ctrl.LoginGoogle)
	grp.Post("/refresh", ctrl.Refresh)
	grp.Post("/logout", authMw.AuthMiddleware(db), ctrl.Logout)
}
