// file: internals/features/ai/controller/ai_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	aiDTO "studypulse_backend/internals/features/ai/dto"
	aiModel "studypulse_backend/internals/features/ai/model"
	actController "studypulse_backend/internals/features/study/activities/controller"
	actModel "studypulse_backend/internals/features/study/activities/model"
	helper "studypulse_backend/internals/helpers"
	"studypulse_backend/internals/services/aigen"
)

type AIController struct {
	DB  *gorm.DB
	Gen aigen.Generator
}

func NewAIController(db *gorm.DB, gen aigen.Generator) *AIController {
	return &AIController{DB: db, Gen: gen}
}

var validateAI = validator.New()

func (h *AIController) generate(c *fiber.Ctx, prompt string) (string, bool) {
	text, err := h.Gen.Generate(c.UserContext(), prompt)
	if err != nil {
		if errors.Is(err, aigen.ErrUpstream) {
			_ = helper.JsonError(c, fiber.StatusBadGateway, "AI provider is unavailable")
		} else {
			_ = helper.JsonError(c, fiber.StatusInternalServerError, "Generation failed")
		}
		return "", false
	}
	return text, true
}

/* ===================== NOTES ===================== */

// POST /api/u/ai/notes
func (h *AIController) GenerateNote(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req aiDTO.GenerateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAI.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	prompt := fmt.Sprintf(
		"Write concise, well-structured study notes on the topic %q. Use short sections with headings and bullet points.",
		strings.TrimSpace(req.Topic))
	content, ok := h.generate(c, prompt)
	if !ok {
		return nil
	}

	m := aiModel.NoteModel{
		NoteUserID:  userID,
		NoteTopic:   strings.TrimSpace(req.Topic),
		NoteContent: content,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save note")
	}
	return helper.JsonCreated(c, "Note generated", m)
}

// GET /api/u/ai/notes
func (h *AIController) ListNotes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	var notes []aiModel.NoteModel
	if err := h.DB.Where("note_user_id = ?", userID).
		Order("note_created_at DESC").Find(&notes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list notes")
	}
	return helper.JsonOK(c, "ok", notes)
}

// GET /api/u/ai/notes/:id
func (h *AIController) GetNote(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid note id")
	}
	var m aiModel.NoteModel
	if err := h.DB.First(&m, "note_id = ? AND note_user_id = ?", noteID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Note not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load note")
	}
	return helper.JsonOK(c, "ok", m)
}

// DELETE /api/u/ai/notes/:id
func (h *AIController) DeleteNote(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid note id")
	}
	res := h.DB.Where("note_id = ? AND note_user_id = ?", noteID, userID).Delete(&aiModel.NoteModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete note")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Note not found")
	}
	return helper.JsonDeleted(c, "Note deleted", fiber.Map{"note_id": noteID})
}

/* ===================== QUIZZES ===================== */

// POST /api/u/ai/quizzes
func (h *AIController) GenerateQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req aiDTO.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAI.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	prompt := fmt.Sprintf(
		"Generate a quiz of %d multiple-choice questions on the topic %q. "+
			"Respond with only a JSON array; each element has the keys "+
			`"question", "options" (four strings) and "answer".`,
		req.QuestionCount, strings.TrimSpace(req.Topic))
	content, ok := h.generate(c, prompt)
	if !ok {
		return nil
	}

	m := aiModel.QuizModel{
		QuizUserID:        userID,
		QuizTopic:         strings.TrimSpace(req.Topic),
		QuizQuestionCount: req.QuestionCount,
		QuizQuestions:     asJSON(content),
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save quiz")
	}
	return helper.JsonCreated(c, "Quiz generated", m)
}

// GET /api/u/ai/quizzes
func (h *AIController) ListQuizzes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	var quizzes []aiModel.QuizModel
	if err := h.DB.Where("quiz_user_id = ?", userID).
		Order("quiz_created_at DESC").Find(&quizzes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list quizzes")
	}
	return helper.JsonOK(c, "ok", quizzes)
}

// GET /api/u/ai/quizzes/:id
func (h *AIController) GetQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	var m aiModel.QuizModel
	if err := h.DB.First(&m, "quiz_id = ? AND quiz_user_id = ?", quizID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load quiz")
	}
	return helper.JsonOK(c, "ok", m)
}

// PUT /api/u/ai/quizzes/:id/score
func (h *AIController) SubmitQuizScore(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	var req aiDTO.SubmitQuizScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAI.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m aiModel.QuizModel
	if err := h.DB.First(&m, "quiz_id = ? AND quiz_user_id = ?", quizID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load quiz")
	}

	score := req.Score
	if score > m.QuizQuestionCount {
		score = m.QuizQuestionCount
	}
	m.QuizScore = &score
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record score")
	}
	return helper.JsonUpdated(c, "Score recorded", m)
}

// DELETE /api/u/ai/quizzes/:id
func (h *AIController) DeleteQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	res := h.DB.Where("quiz_id = ? AND quiz_user_id = ?", quizID, userID).Delete(&aiModel.QuizModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete quiz")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}
	return helper.JsonDeleted(c, "Quiz deleted", fiber.Map{"quiz_id": quizID})
}

/* ===================== CHAT ===================== */

// POST /api/u/ai/chat — single relay call; the last user turn and the reply
// are appended to the caller's chat log.
func (h *AIController) Chat(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req aiDTO.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAI.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var b strings.Builder
	b.WriteString("You are a helpful study tutor. Continue this conversation.\n\n")
	for _, t := range req.Messages {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	reply, ok := h.generate(c, b.String())
	if !ok {
		return nil
	}

	last := req.Messages[len(req.Messages)-1]
	rows := []aiModel.ChatMessageModel{
		{ChatMessageUserID: userID, ChatMessageRole: last.Role, ChatMessageContent: last.Content},
		{ChatMessageUserID: userID, ChatMessageRole: "assistant", ChatMessageContent: reply},
	}
	if err := h.DB.Create(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save chat log")
	}
	return helper.JsonOK(c, "ok", aiDTO.ChatResponse{Reply: reply})
}

// GET /api/u/ai/chat — caller's chat log, oldest first.
func (h *AIController) ListChat(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	var messages []aiModel.ChatMessageModel
	if err := h.DB.Where("chat_message_user_id = ?", userID).
		Order("chat_message_created_at ASC").Find(&messages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list messages")
	}
	return helper.JsonOK(c, "ok", messages)
}

/* ===================== INSIGHTS ===================== */

// POST /api/u/ai/insights — summarizes the caller's study stats.
func (h *AIController) GenerateInsight(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var activities []actModel.ActivityModel
	if err := h.DB.Where("activity_user_id = ?", userID).Find(&activities).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load activities")
	}
	if len(activities) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Log some study activities first")
	}

	stats := actController.BuildStats(activities, time.Now())
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build stats")
	}

	prompt := fmt.Sprintf(
		"Here are a student's study statistics as JSON: %s\n"+
			"Write a short, encouraging analysis of their study habits with two or three concrete suggestions.",
		statsJSON)
	content, ok := h.generate(c, prompt)
	if !ok {
		return nil
	}

	m := aiModel.InsightModel{InsightUserID: userID, InsightContent: content}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save insight")
	}
	return helper.JsonCreated(c, "Insight generated", m)
}

// GET /api/u/ai/insights
func (h *AIController) ListInsights(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	var insights []aiModel.InsightModel
	if err := h.DB.Where("insight_user_id = ?", userID).
		Order("insight_created_at DESC").Find(&insights).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list insights")
	}
	return helper.JsonOK(c, "ok", insights)
}

// DELETE /api/u/ai/insights/:id
func (h *AIController) DeleteInsight(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	insightID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid insight id")
	}
	res := h.DB.Where("insight_id = ? AND insight_user_id = ?", insightID, userID).Delete(&aiModel.InsightModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete insight")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Insight not found")
	}
	return helper.JsonDeleted(c, "Insight deleted", fiber.Map{"insight_id": insightID})
}

// asJSON keeps a generation that is already valid JSON as-is; anything else is
// wrapped as a JSON string so the column never rejects it.
func asJSON(text string) datatypes.JSON {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return datatypes.JSON([]byte(trimmed))
	}
	raw, _ := json.Marshal(trimmed)
	return datatypes.JSON(raw)
}
