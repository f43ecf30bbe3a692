// file: internals/features/ai/route/ai_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aiController "studypulse_backend/internals/features/ai/controller"
	"studypulse_backend/internals/services/aigen"
)

// AIRoutes mounts the generation surface on the user group.
func AIRoutes(r fiber.Router, db *gorm.DB, gen aigen.Generator) {
	ctrl := aiController.NewAIController(db, gen)

	// ===================== NOTES =====================
	r.Post("/ai/notes", ctrl.GenerateNote)
	r.Get("/ai/notes", ctrl.ListNotes)
	r.Get("/ai/notes/:id", ctrl.GetNote)
	r.Delete("/ai/notes/:id", ctrl.DeleteNote)

	// ===================== QUIZZES =====================
	r.Post("/ai/quizzes", ctrl.GenerateQuiz)
	r.Get("/ai/quizzes", ctrl.ListQuizzes)
	r.Get("/ai/quizzes/:id", ctrl.GetQuiz)
	r.Put("/ai/quizzes/:id/score", ctrl.SubmitQuizScore)
	r.Delete("/ai/quizzes/:id", ctrl.DeleteQuiz)

	// ===================== CHAT =====================
	r.Post("/ai/chat", ctrl.Chat)
	r.Get("/ai/chat", ctrl.ListChat)

	// ===================== INSIGHTS =====================
	r.Post("/ai/insights", ctrl.GenerateInsight)
	r.Get("/ai/insights", ctrl.ListInsights)
	r.Delete("/ai/insights/:id", ctrl.DeleteInsight)
}
