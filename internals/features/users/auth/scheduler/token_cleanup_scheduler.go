package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/auth/model"
)

// StartResetTokenCleanup sweeps expired password-reset codes on an interval.
// Runs until the process exits.
func StartResetTokenCleanup(db *gorm.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			res := db.Unscoped().
				Where("expires_at < ?", time.Now()).
				Delete(&authModel.PasswordResetToken{})
			if res.Error != nil {
				log.Printf("[ERROR] reset-token cleanup: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("[INFO] reset-token cleanup: removed %d expired codes", res.RowsAffected)
			}
		}
	}()
}
