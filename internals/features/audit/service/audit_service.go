package service

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"materiku_backend/internals/features/audit/model"
	helper "materiku_backend/internals/helpers"
)

// Record mencatat satu entri audit. Kegagalan hanya di-log, tidak pernah
// menggagalkan request utama.
func Record(db *gorm.DB, c *fiber.Ctx, action, entityID string, details interface{}) {
	var userID *uuid.UUID
	if userIDStr, err := helper.GetUserIDFromLocals(c); err == nil {
		if parsed, err := uuid.Parse(userIDStr); err == nil {
			userID = &parsed
		}
	}
	RecordAs(db, c, userID, helper.GetUserEmailFromLocals(c), action, entityID, details)
}

// RecordAs dipakai saat identitas belum ada di Locals (mis. saat login).
func RecordAs(db *gorm.DB, c *fiber.Ctx, userID *uuid.UUID, email, action, entityID string, details interface{}) {
	entry := model.AuditLogModel{
		Action:    action,
		EntityID:  entityID,
		IPAddress: c.IP(),
		UserID:    userID,
		UserEmail: email,
	}

	if details != nil {
		raw, err := sonic.Marshal(details)
		if err != nil {
			log.Println("[WARN] Gagal marshal audit details:", err)
		} else {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Println("[WARN] Gagal mencatat audit log:", err)
	}
}
