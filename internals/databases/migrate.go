package database

import (
	"log"
	"os"

	adminModel "materiku_backend/internals/features/admin/model"
	auditModel "materiku_backend/internals/features/audit/model"
	jobModel "materiku_backend/internals/features/jobs/model"
	authModel "materiku_backend/internals/features/users/auth/model"
	userModel "materiku_backend/internals/features/users/user/model"
)

// MigrateOnBoot jalankan AutoMigrate jika MIGRATE_ON_BOOT=true.
// Di production skema dikelola lewat migrasi SQL terpisah.
func MigrateOnBoot() {
	if os.Getenv("MIGRATE_ON_BOOT") != "true" {
		return
	}

	log.Println("🛠 AutoMigrate berjalan...")
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&jobModel.JobModel{},
		&auditModel.AuditLogModel{},
		&adminModel.AnnouncementTemplate{},
		&adminModel.AssignmentTemplate{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}
