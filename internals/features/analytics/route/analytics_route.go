package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/analytics/controller"
	"materiku_backend/internals/features/catalog/store"
	generateService "materiku_backend/internals/features/generate/service"
	"materiku_backend/internals/helpers/google"
	authMiddleware "materiku_backend/internals/middlewares/auth"
)

func AnalyticsRoutes(api fiber.Router, db *gorm.DB, catalog *store.Store, sheets *google.SheetsClient, gen *generateService.Generator) {
	ac := controller.NewAnalyticsController(db, catalog, sheets, gen)

	analytics := api.Group("/analytics")
	analytics.Get("/materials/:id/quiz", ac.QuizAnalysis)
}

func AnalyticsAdminRoutes(admin fiber.Router, db *gorm.DB, catalog *store.Store, sheets *google.SheetsClient, gen *generateService.Generator) {
	ac := controller.NewAnalyticsController(db, catalog, sheets, gen)

	analytics := admin.Group("/analytics", authMiddleware.AdminOnly("analitik"))
	analytics.Get("/dashboard", ac.Dashboard)
}
