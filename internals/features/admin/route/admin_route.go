package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/admin/controller"
	"materiku_backend/internals/features/catalog/store"
	"materiku_backend/internals/helpers/workflow"
	authMiddleware "materiku_backend/internals/middlewares/auth"
)

func AdminRoutes(admin fiber.Router, db *gorm.DB, catalog *store.Store, wf *workflow.Client) {
	tc := controller.NewTemplateController(db)
	sc := controller.NewSystemController(db, catalog, wf)

	templates := admin.Group("/templates", authMiddleware.AdminOnly("template"))
	templates.Get("/announcements", tc.ListAnnouncements)
	templates.Post("/announcements", tc.CreateAnnouncement)
	templates.Put("/announcements/:id", tc.UpdateAnnouncement)
	templates.Delete("/announcements/:id", tc.DeleteAnnouncement)
	templates.Get("/assignments", tc.ListAssignments)
	templates.Post("/assignments", tc.CreateAssignment)
	templates.Put("/assignments/:id", tc.UpdateAssignment)
	templates.Delete("/assignments/:id", tc.DeleteAssignment)

	system := admin.Group("/system", authMiddleware.AdminOnly("sistem"))
	system.Get("/status", sc.Status)
	system.Post("/trigger-sync", sc.TriggerSync)
}
