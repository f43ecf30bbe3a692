// file: internals/features/ai/dto/ai_dto.go
package dto

/* ===================== REQUESTS ===================== */

type GenerateNoteRequest struct {
	Topic string `json:"topic" validate:"required,min=2,max=180"`
}

type GenerateQuizRequest struct {
	Topic         string `json:"topic" validate:"required,min=2,max=180"`
	QuestionCount int    `json:"question_count" validate:"required,min=1,max=20"`
}

type SubmitQuizScoreRequest struct {
	Score int `json:"score" validate:"min=0"`
}

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,min=1"`
}

type ChatRequest struct {
	Messages []ChatTurn `json:"messages" validate:"required,min=1,dive"`
}

/* ===================== RESPONSES ===================== */

type ChatResponse struct {
	Reply string `json:"reply"`
}
