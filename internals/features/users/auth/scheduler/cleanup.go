package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"materiku_backend/internals/features/users/auth/repository"
)

// StartTokenCleanupScheduler membersihkan token blacklist & refresh token
// kedaluwarsa secara berkala.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		interval := 24 * time.Hour
		if val := os.Getenv("TOKEN_CLEANUP_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				interval = time.Duration(parsed) * time.Hour
			}
		}

		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token kedaluwarsa...")

			if n, err := repository.DeleteExpiredBlacklist(db); err != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus token blacklist: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d token blacklist kedaluwarsa dihapus", n)
			}

			if n, err := repository.DeleteExpiredRefreshTokens(db); err != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus refresh token: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d refresh token kedaluwarsa dihapus", n)
			}

			time.Sleep(interval)
		}
	}()
}
