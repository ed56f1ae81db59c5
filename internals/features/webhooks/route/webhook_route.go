package route

import (
	"crypto/subtle"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/configs"
	"materiku_backend/internals/features/catalog/store"
	"materiku_backend/internals/features/webhooks/controller"
	helper "materiku_backend/internals/helpers"
)

// verifyInboundToken cek header X-N8N-Token terhadap token bersama.
func verifyInboundToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := configs.WebhookInboundToken()
		if expected == "" {
			log.Println("[ERROR] N8N_INBOUND_TOKEN belum diset, webhook ditolak")
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Webhook belum dikonfigurasi")
		}
		got := c.Get("X-N8N-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			log.Println("[WARNING] Webhook dengan token tidak valid dari", c.IP())
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token webhook tidak valid")
		}
		return c.Next()
	}
}

func WebhookRoutes(api fiber.Router, db *gorm.DB, catalog *store.Store) {
	wc := controller.NewWebhookController(db, catalog)

	hooks := api.Group("/webhooks/n8n", verifyInboundToken())
	hooks.Post("/job-status", wc.JobStatus)
	hooks.Post("/material-complete", wc.MaterialComplete)
	hooks.Post("/schedule-processed", wc.ScheduleProcessed)
}
