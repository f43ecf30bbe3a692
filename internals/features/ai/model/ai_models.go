// file: internals/features/ai/model/ai_models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generated artifacts are stored as opaque text: the backend never parses the
// model output beyond keeping it for the owning student.

type NoteModel struct {
	NoteID        uuid.UUID `json:"note_id" gorm:"column:note_id;type:uuid;primaryKey"`
	NoteUserID    uuid.UUID `json:"note_user_id" gorm:"column:note_user_id;type:uuid;not null;index:idx_notes_user"`
	NoteTopic     string    `json:"note_topic" gorm:"column:note_topic;type:varchar(180);not null"`
	NoteContent   string    `json:"note_content" gorm:"column:note_content;type:text;not null"`
	NoteCreatedAt time.Time `json:"note_created_at" gorm:"column:note_created_at;not null;autoCreateTime"`
}

func (NoteModel) TableName() string { return "ai_notes" }

func (m *NoteModel) BeforeCreate(tx *gorm.DB) error {
	if m.NoteID == uuid.Nil {
		m.NoteID = uuid.New()
	}
	return nil
}

type QuizModel struct {
	QuizID            uuid.UUID      `json:"quiz_id" gorm:"column:quiz_id;type:uuid;primaryKey"`
	QuizUserID        uuid.UUID      `json:"quiz_user_id" gorm:"column:quiz_user_id;type:uuid;not null;index:idx_quizzes_user"`
	QuizTopic         string         `json:"quiz_topic" gorm:"column:quiz_topic;type:varchar(180);not null"`
	QuizQuestionCount int            `json:"quiz_question_count" gorm:"column:quiz_question_count;not null"`
	QuizQuestions     datatypes.JSON `json:"quiz_questions" gorm:"column:quiz_questions;type:jsonb"`
	QuizScore         *int           `json:"quiz_score" gorm:"column:quiz_score"`
	QuizCreatedAt     time.Time      `json:"quiz_created_at" gorm:"column:quiz_created_at;not null;autoCreateTime"`
}

func (QuizModel) TableName() string { return "ai_quizzes" }

func (m *QuizModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizID == uuid.Nil {
		m.QuizID = uuid.New()
	}
	return nil
}

type ChatMessageModel struct {
	ChatMessageID        uuid.UUID `json:"chat_message_id" gorm:"column:chat_message_id;type:uuid;primaryKey"`
	ChatMessageUserID    uuid.UUID `json:"chat_message_user_id" gorm:"column:chat_message_user_id;type:uuid;not null;index:idx_chat_messages_user"`
	ChatMessageRole      string    `json:"chat_message_role" gorm:"column:chat_message_role;type:varchar(20);not null"`
	ChatMessageContent   string    `json:"chat_message_content" gorm:"column:chat_message_content;type:text;not null"`
	ChatMessageCreatedAt time.Time `json:"chat_message_created_at" gorm:"column:chat_message_created_at;not null;autoCreateTime"`
}

func (ChatMessageModel) TableName() string { return "ai_chat_messages" }

func (m *ChatMessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ChatMessageID == uuid.Nil {
		m.ChatMessageID = uuid.New()
	}
	return nil
}

type InsightModel struct {
	InsightID        uuid.UUID `json:"insight_id" gorm:"column:insight_id;type:uuid;primaryKey"`
	InsightUserID    uuid.UUID `json:"insight_user_id" gorm:"column:insight_user_id;type:uuid;not null;index:idx_insights_user"`
	InsightContent   string    `json:"insight_content" gorm:"column:insight_content;type:text;not null"`
	InsightCreatedAt time.Time `json:"insight_created_at" gorm:"column:insight_created_at;not null;autoCreateTime"`
}

func (InsightModel) TableName() string { return "ai_insights" }

func (m *InsightModel) BeforeCreate(tx *gorm.DB) error {
	if m.InsightID == uuid.Nil {
		m.InsightID = uuid.New()
	}
	return nil
}
