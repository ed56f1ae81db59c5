package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminRoute "materiku_backend/internals/features/admin/route"
	analyticsRoute "materiku_backend/internals/features/analytics/route"
	auditRoute "materiku_backend/internals/features/audit/route"
	"materiku_backend/internals/features/catalog/store"
	generateService "materiku_backend/internals/features/generate/service"
	jobRoute "materiku_backend/internals/features/jobs/route"
	materialRoute "materiku_backend/internals/features/materials/route"
	scheduleRoute "materiku_backend/internals/features/schedules/route"
	authRoute "materiku_backend/internals/features/users/auth/route"
	userRoute "materiku_backend/internals/features/users/user/route"
	webhookRoute "materiku_backend/internals/features/webhooks/route"
	"materiku_backend/internals/helpers/google"
	"materiku_backend/internals/helpers/workflow"
	authMiddleware "materiku_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps dependensi bersama yang dirakit di main.
type Deps struct {
	Catalog   *store.Store
	Drive     *google.DriveService
	Sheets    *google.SheetsClient
	Generator *generateService.Generator
	Workflow  *workflow.Client
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	BaseRoutes(app)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	public := app.Group("/api")
	authRoute.AuthRoutes(public, db)

	// Webhook n8n: token bersama, bukan JWT
	log.Println("[INFO] Setting up WebhookRoutes...")
	webhookRoute.WebhookRoutes(public, db, deps.Catalog)

	// ===================== PRIVATE (JWT) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMiddleware.AuthMiddleware(db))

	userRoute.UserRoutes(private, db)
	materialRoute.MaterialRoutes(private, db, deps.Catalog, deps.Drive, deps.Workflow)
	jobRoute.JobRoutes(private, db, deps.Workflow)
	scheduleRoute.ScheduleRoutes(private, deps.Catalog)
	analyticsRoute.AnalyticsRoutes(private, db, deps.Catalog, deps.Sheets, deps.Generator)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/admin", authMiddleware.AuthMiddleware(db))

	userRoute.UserAdminRoutes(admin, db)
	auditRoute.AuditAdminRoutes(admin, db)
	analyticsRoute.AnalyticsAdminRoutes(admin, db, deps.Catalog, deps.Sheets, deps.Generator)
	adminRoute.AdminRoutes(admin, db, deps.Catalog, deps.Workflow)

	log.Println("✅ Semua route selesai didaftarkan")
}
