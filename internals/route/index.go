// file: internals/route/index.go
package route

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studypulse_backend/internals/constants"
	authMw "studypulse_backend/internals/middlewares/auth"
	routeDetails "studypulse_backend/internals/route/details"
	"studypulse_backend/internals/services/aigen"
	"studypulse_backend/internals/services/notifier"
	"studypulse_backend/internals/services/storage"
)

// Deps carries the shared services handed to the feature routes.
type Deps struct {
	Store    storage.BlobStore
	Notifier notifier.Notifier
	Gen      aigen.Generator
}

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	// ===================== HEALTH =====================
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMw.AuthMiddleware(db))

	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api/t",
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles(constants.RoleErrorTeacher("class management"), constants.TeacherOnly...),
	)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(user, db)
	routeDetails.AdminRoutes(admin, db)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolTeacherRoutes(teacher, db, deps.Store, deps.Notifier)
	routeDetails.SchoolUserRoutes(user, db, deps.Store)

	log.Println("[INFO] Mounting Study routes...")
	routeDetails.StudyUserRoutes(user, db)

	log.Println("[INFO] Mounting AI routes...")
	routeDetails.AIUserRoutes(user, db, deps.Gen)

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomeUserRoutes(user, db)
}
