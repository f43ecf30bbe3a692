// file: internals/features/study/activities/route/activity_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	actController "studypulse_backend/internals/features/study/activities/controller"
)

// ActivityRoutes mounts the study log on the user group. The stats route is
// registered before the :id routes so it is never shadowed.
func ActivityRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := actController.NewActivityController(db)

	r.Get("/activities/stats", ctrl.Stats)
	r.Post("/activities", ctrl.Create)
	r.Get("/activities", ctrl.List)
	r.Put("/activities/:id", ctrl.Update)
	r.Delete("/activities/:id", ctrl.Delete)
}
