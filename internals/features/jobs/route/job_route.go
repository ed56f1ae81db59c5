package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/jobs/controller"
	"materiku_backend/internals/helpers/workflow"
)

func JobRoutes(api fiber.Router, db *gorm.DB, wf *workflow.Client) {
	jc := controller.NewJobController(db, wf)

	jobs := api.Group("/jobs")
	jobs.Get("/", jc.Index)
	jobs.Get("/:id", jc.Show)
	jobs.Post("/:id/retry", jc.Retry)
}
