package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/audit/controller"
	authMiddleware "materiku_backend/internals/middlewares/auth"
)

func AuditAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ac := controller.NewAuditController(db)

	logs := admin.Group("/audit-logs", authMiddleware.AdminOnly("audit log"))
	logs.Get("/", ac.Index)
}
