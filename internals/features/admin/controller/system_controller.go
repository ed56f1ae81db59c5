package controller

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"materiku_backend/internals/configs"
	auditModel "materiku_backend/internals/features/audit/model"
	auditService "materiku_backend/internals/features/audit/service"
	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
	jobModel "materiku_backend/internals/features/jobs/model"
	scheduleService "materiku_backend/internals/features/schedules/service"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/workflow"
)

type SystemController struct {
	DB       *gorm.DB
	Catalog  *store.Store
	Workflow *workflow.Client
}

func NewSystemController(db *gorm.DB, catalog *store.Store, wf *workflow.Client) *SystemController {
	return &SystemController{DB: db, Catalog: catalog, Workflow: wf}
}

// GET /api/admin/system/status — kesehatan dependensi eksternal.
func (sc *SystemController) Status(c *fiber.Ctx) error {
	status := fiber.Map{
		"time":             time.Now().UTC().Format(time.RFC3339),
		"database":         "ok",
		"catalog_sheets":   "ok",
		"workflow_enabled": configs.LoadWorkflow().Enabled(),
	}

	sqlDB, err := sc.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status["database"] = "down"
	}

	if _, err := sc.Catalog.FetchAll(c.Context(), catalogModel.TableMaterials); err != nil {
		status["catalog_sheets"] = "down"
		log.Println("[WARN] Katalog sheets tidak terjangkau:", err)
	}

	return helper.JsonOK(c, "Status sistem", status)
}

// POST /api/admin/system/trigger-sync — kirim jadwal H-1 ke pipeline
// secara manual (di luar cron n8n).
func (sc *SystemController) TriggerSync(c *fiber.Ctx) error {
	schedules, err := scheduleService.TomorrowSchedules(c.Context(), sc.Catalog, time.Now())
	if err != nil {
		log.Println("[ERROR] Gagal mengambil jadwal besok:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil data jadwal")
	}

	triggered := 0
	for _, rec := range schedules {
		// Baris yang dua-duanya sudah final tidak dikirim ulang
		if rec.AnnouncementStatus != "PENDING" && rec.AssignmentStatus != "PENDING" {
			continue
		}

		job := jobModel.JobModel{
			MaterialID: rec.MaterialID,
			Action:     jobModel.JobActionScheduleNotify,
			Status:     jobModel.JobStatusPending,
		}
		if raw, err := sonic.Marshal(rec); err == nil {
			job.Payload = datatypes.JSON(raw)
		}
		if err := sc.DB.Create(&job).Error; err != nil {
			log.Println("[WARN] Gagal membuat job sync:", err)
			continue
		}

		sc.Workflow.TriggerJob(workflow.TriggerPayload{
			JobID:      job.ID.String(),
			MaterialID: rec.MaterialID,
			Action:     jobModel.JobActionScheduleNotify,
			Payload:    job.Payload,
		})
		triggered++
	}

	auditService.Record(sc.DB, c, auditModel.ActionSyncTriggered, "", fiber.Map{
		"schedules_found": len(schedules),
		"jobs_triggered":  triggered,
	})

	log.Printf("[SUCCESS] Sync manual: %d dari %d jadwal dikirim\n", triggered, len(schedules))
	return helper.JsonOK(c, "Sinkronisasi jadwal dikirim ke pipeline", fiber.Map{
		"schedules_found": len(schedules),
		"jobs_triggered":  triggered,
	})
}
