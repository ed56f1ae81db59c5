package route

import (
	"github.com/gofiber/fiber/v2"

	"materiku_backend/internals/features/catalog/store"
	"materiku_backend/internals/features/schedules/controller"
)

func ScheduleRoutes(api fiber.Router, catalog *store.Store) {
	sc := controller.NewScheduleController(catalog)

	schedules := api.Group("/schedules")
	schedules.Get("/", sc.Index)
	schedules.Get("/tomorrow", sc.Tomorrow)
	schedules.Post("/", sc.Store)
}
