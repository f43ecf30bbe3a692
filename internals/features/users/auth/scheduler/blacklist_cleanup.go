// file: internals/features/users/auth/scheduler/blacklist_cleanup.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "studypulse_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler sweeps expired blacklist entries and refresh
// tokens every hour. Both tables only matter while their rows are live.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			if err := db.Where("token_blacklist_expires_at < ?", now).
				Delete(&authModel.TokenBlacklistModel{}).Error; err != nil {
				log.Printf("blacklist cleanup: %v", err)
			}
			if err := db.Where("refresh_token_expires_at < ?", now).
				Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
				log.Printf("refresh token cleanup: %v", err)
			}
		}
	}()
}
