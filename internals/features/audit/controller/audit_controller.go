package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/audit/model"
	helper "materiku_backend/internals/helpers"
)

type AuditController struct {
	DB *gorm.DB
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

// GET /api/admin/audit-logs — filter: action, user_id, entity_id, from, to
func (ac *AuditController) Index(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := ac.DB.Model(&model.AuditLogModel{})
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if entityID := c.Query("entity_id"); entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			q = q.Where("created_at <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] Gagal menghitung audit logs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil audit log")
	}

	var logs []model.AuditLogModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&logs).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil audit logs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil audit log")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Audit log berhasil diambil", logs, &pagination)
}
