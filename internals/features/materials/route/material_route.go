package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/catalog/store"
	"materiku_backend/internals/features/materials/controller"
	"materiku_backend/internals/helpers/google"
	"materiku_backend/internals/helpers/workflow"
	"materiku_backend/internals/middlewares"
)

func MaterialRoutes(api fiber.Router, db *gorm.DB, catalog *store.Store, drive *google.DriveService, wf *workflow.Client) {
	mc := controller.NewMaterialController(db, catalog, drive, wf)

	materials := api.Group("/materials")
	materials.Get("/", mc.Index)
	materials.Post("/", middlewares.UploadRateLimiter(), mc.Store)
	materials.Get("/:id", mc.Show)
	materials.Post("/:id/generate", mc.GenerateDigital)
}
