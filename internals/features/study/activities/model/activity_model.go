// file: internals/features/study/activities/model/activity_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ActivityModel is one logged study session, owned by the student who logged it.
type ActivityModel struct {
	ActivityID              uuid.UUID `json:"activity_id" gorm:"column:activity_id;type:uuid;primaryKey"`
	ActivityUserID          uuid.UUID `json:"activity_user_id" gorm:"column:activity_user_id;type:uuid;not null;index:idx_activities_user"`
	ActivitySubject         string    `json:"activity_subject" gorm:"column:activity_subject;type:varchar(100);not null"`
	ActivityTopic           string    `json:"activity_topic" gorm:"column:activity_topic;type:varchar(180);not null"`
	ActivityDurationMinutes int       `json:"activity_duration_minutes" gorm:"column:activity_duration_minutes;not null"`
	ActivityDifficulty      string    `json:"activity_difficulty" gorm:"column:activity_difficulty;type:varchar(10);not null;default:medium"`
	ActivityStudiedAt       time.Time `json:"activity_studied_at" gorm:"column:activity_studied_at;not null"`
	ActivityCreatedAt       time.Time `json:"activity_created_at" gorm:"column:activity_created_at;not null;autoCreateTime"`
	ActivityUpdatedAt       time.Time `json:"activity_updated_at" gorm:"column:activity_updated_at;not null;autoUpdateTime"`
}

func (ActivityModel) TableName() string { return "activities" }

func (m *ActivityModel) BeforeCreate(tx *gorm.DB) error {
	if m.ActivityID == uuid.Nil {
		m.ActivityID = uuid.New()
	}
	return nil
}
