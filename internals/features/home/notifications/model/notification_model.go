// file: internals/features/home/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type NotificationModel struct {
	NotificationID        uuid.UUID      `json:"notification_id" gorm:"column:notification_id;type:uuid;primaryKey"`
	NotificationUserID    uuid.UUID      `json:"notification_user_id" gorm:"column:notification_user_id;type:uuid;not null;index:idx_notifications_user"`
	NotificationTitle     string         `json:"notification_title" gorm:"column:notification_title;type:varchar(255);not null"`
	NotificationBody      string         `json:"notification_body" gorm:"column:notification_body;type:text"`
	NotificationTags      pq.StringArray `json:"notification_tags" gorm:"column:notification_tags;type:text[]"`
	NotificationReadAt    *time.Time     `json:"notification_read_at" gorm:"column:notification_read_at"`
	NotificationCreatedAt time.Time      `json:"notification_created_at" gorm:"column:notification_created_at;not null;autoCreateTime"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}
