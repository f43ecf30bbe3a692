// file: internals/features/study/activities/dto/activity_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "studypulse_backend/internals/features/study/activities/model"
)

/* ===================== REQUESTS ===================== */

type CreateActivityRequest struct {
	ActivitySubject         string     `json:"activity_subject" validate:"required,min=1,max=100"`
	ActivityTopic           string     `json:"activity_topic" validate:"required,min=1,max=180"`
	ActivityDurationMinutes int        `json:"activity_duration_minutes" validate:"required,min=1,max=1440"`
	ActivityDifficulty      string     `json:"activity_difficulty" validate:"omitempty,oneof=easy medium hard"`
	ActivityStudiedAt       *time.Time `json:"activity_studied_at" validate:"omitempty"`
}

func (r CreateActivityRequest) ToModel(userID uuid.UUID) *model.ActivityModel {
	m := &model.ActivityModel{
		ActivityUserID:          userID,
		ActivitySubject:         strings.TrimSpace(r.ActivitySubject),
		ActivityTopic:           strings.TrimSpace(r.ActivityTopic),
		ActivityDurationMinutes: r.ActivityDurationMinutes,
		ActivityDifficulty:      r.ActivityDifficulty,
	}
	if m.ActivityDifficulty == "" {
		m.ActivityDifficulty = model.DifficultyMedium
	}
	if r.ActivityStudiedAt != nil {
		m.ActivityStudiedAt = *r.ActivityStudiedAt
	} else {
		m.ActivityStudiedAt = time.Now()
	}
	return m
}

type UpdateActivityRequest struct {
	ActivitySubject         *string    `json:"activity_subject" validate:"omitempty,min=1,max=100"`
	ActivityTopic           *string    `json:"activity_topic" validate:"omitempty,min=1,max=180"`
	ActivityDurationMinutes *int       `json:"activity_duration_minutes" validate:"omitempty,min=1,max=1440"`
	ActivityDifficulty      *string    `json:"activity_difficulty" validate:"omitempty,oneof=easy medium hard"`
	ActivityStudiedAt       *time.Time `json:"activity_studied_at" validate:"omitempty"`
}

// ApplyToModel applies only the fields that were sent.
func (r *UpdateActivityRequest) ApplyToModel(m *model.ActivityModel) {
	if r.ActivitySubject != nil {
		m.ActivitySubject = strings.TrimSpace(*r.ActivitySubject)
	}
	if r.ActivityTopic != nil {
		m.ActivityTopic = strings.TrimSpace(*r.ActivityTopic)
	}
	if r.ActivityDurationMinutes != nil {
		m.ActivityDurationMinutes = *r.ActivityDurationMinutes
	}
	if r.ActivityDifficulty != nil {
		m.ActivityDifficulty = *r.ActivityDifficulty
	}
	if r.ActivityStudiedAt != nil {
		m.ActivityStudiedAt = *r.ActivityStudiedAt
	}
}

/* ===================== RESPONSES ===================== */

// DayBucket is one day of the trailing week, hours summed over its sessions.
type DayBucket struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type ActivityStats struct {
	TotalHours       float64        `json:"total_hours"`
	TotalSessions    int            `json:"total_sessions"`
	Last7Days        []DayBucket    `json:"last_7_days"`
	DifficultyCounts map[string]int `json:"difficulty_counts"`
}
