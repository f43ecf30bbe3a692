// file: internals/features/school/route/school_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	annController "studypulse_backend/internals/features/school/announcements/controller"
	asgController "studypulse_backend/internals/features/school/assignments/controller"
	clsController "studypulse_backend/internals/features/school/classes/controller"
	matController "studypulse_backend/internals/features/school/materials/controller"
	subController "studypulse_backend/internals/features/school/submissions/controller"
	"studypulse_backend/internals/services/notifier"
	"studypulse_backend/internals/services/storage"
)

// SchoolTeacherRoutes mounts the class-management surface on the teacher group.
func SchoolTeacherRoutes(r fiber.Router, db *gorm.DB, store storage.BlobStore, n notifier.Notifier) {
	cls := clsController.NewClassController(db)
	asg := asgController.NewAssignmentController(db, store)
	sub := subController.NewSubmissionController(db, store)
	ann := annController.NewAnnouncementController(db, store, n)
	mat := matController.NewMaterialController(db, store, n)

	// ===================== CLASSES =====================
	r.Post("/classes", cls.Create)
	r.Get("/classes", cls.ListForTeacher)
	r.Get("/classes/:id", cls.Detail)
	r.Put("/classes/:id", cls.Update)
	r.Delete("/classes/:id", cls.Delete)

	// ===================== ASSIGNMENTS =====================
	r.Post("/classes/:classId/assignments", asg.Create)
	r.Get("/classes/:classId/assignments", asg.ListForTeacher)
	r.Put("/classes/:classId/assignments/:id", asg.Update)
	r.Delete("/classes/:classId/assignments/:id", asg.Delete)

	// ===================== SUBMISSIONS =====================
	r.Get("/classes/:classId/assignments/:assignmentId/submissions", sub.ListForTeacher)
	r.Put("/classes/:classId/assignments/:assignmentId/submissions/:id/marks", sub.Grade)

	// ===================== ANNOUNCEMENTS =====================
	r.Post("/classes/:classId/announcements", ann.Create)
	r.Get("/classes/:classId/announcements", ann.List)
	r.Put("/classes/:classId/announcements/:id", ann.Update)
	r.Delete("/classes/:classId/announcements/:id", ann.Delete)

	// ===================== MATERIALS =====================
	r.Post("/classes/:classId/materials", mat.Create)
	r.Get("/classes/:classId/materials", mat.List)
	r.Get("/classes/:classId/materials/:id", mat.Detail)
	r.Put("/classes/:classId/materials/:id", mat.Update)
	r.Delete("/classes/:classId/materials/:id", mat.Delete)
}

// SchoolUserRoutes mounts the student-facing class surface on the user group.
func SchoolUserRoutes(r fiber.Router, db *gorm.DB, store storage.BlobStore) {
	cls := clsController.NewClassController(db)
	asg := asgController.NewAssignmentController(db, store)
	sub := subController.NewSubmissionController(db, store)
	ann := annController.NewAnnouncementController(db, store, notifier.NopNotifier{})
	mat := matController.NewMaterialController(db, store, notifier.NopNotifier{})

	// ===================== CLASSES =====================
	r.Get("/classes", cls.ListForStudent)
	r.Post("/classes/join", cls.Join)
	r.Get("/classes/:id", cls.Detail)

	// ===================== ASSIGNMENTS & SUBMISSIONS =====================
	r.Get("/classes/:classId/assignments", asg.ListForStudent)
	r.Post("/classes/:classId/assignments/:assignmentId/submit", sub.Submit)
	r.Delete("/classes/:classId/assignments/:assignmentId/unsend", sub.Unsend)

	// ===================== ANNOUNCEMENTS =====================
	r.Get("/classes/:classId/announcements", ann.List)
	r.Post("/classes/:classId/announcements/:id/replies", ann.Reply)

	// ===================== MATERIALS =====================
	r.Get("/classes/:classId/materials", mat.List)
	r.Get("/classes/:classId/materials/:id", mat.Detail)
}
