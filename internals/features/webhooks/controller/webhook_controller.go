package controller

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditModel "materiku_backend/internals/features/audit/model"
	auditService "materiku_backend/internals/features/audit/service"
	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
	jobModel "materiku_backend/internals/features/jobs/model"
	"materiku_backend/internals/features/webhooks/dto"
	helper "materiku_backend/internals/helpers"
)

type WebhookController struct {
	DB       *gorm.DB
	Catalog  *store.Store
	validate *validator.Validate
}

func NewWebhookController(db *gorm.DB, catalog *store.Store) *WebhookController {
	return &WebhookController{DB: db, Catalog: catalog, validate: validator.New()}
}

// POST /api/webhooks/n8n/job-status — pipeline lapor mulai/gagal.
func (wc *WebhookController) JobStatus(c *fiber.Ctx) error {
	var payload dto.JobStatusPayload
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := wc.validate.Struct(payload); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	job, ferr := wc.findJob(payload.JobID)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	now := time.Now().UTC()
	switch payload.Status {
	case jobModel.JobStatusProcessing:
		if err := job.MarkProcessing(now); err != nil {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		// Materi ikut pindah ke PROCESSING
		wc.bumpMaterialStatus(c, job.MaterialID, catalogModel.MaterialProcessing)
	case jobModel.JobStatusFailed:
		if err := job.MarkFailed(now, payload.Message); err != nil {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		wc.bumpMaterialStatus(c, job.MaterialID, catalogModel.MaterialWaiting)
		wc.markDigitalFailed(c, job.MaterialID, payload.Message)
	}

	if err := wc.DB.Save(job).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan status job:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan status job")
	}

	log.Printf("[INFO] Job %s -> %s\n", job.ID, job.Status)
	return helper.JsonOK(c, "Status job diperbarui", fiber.Map{
		"job_id": job.ID.String(),
		"status": job.Status,
	})
}

// POST /api/webhooks/n8n/material-complete — pipeline selesai, simpan aset.
func (wc *WebhookController) MaterialComplete(c *fiber.Ctx) error {
	var payload dto.MaterialCompletePayload
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := wc.validate.Struct(payload); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	job, ferr := wc.findJob(payload.JobID)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	// Upsert aset digital -> DONE
	digital := catalogModel.DigitalContentRecord{
		MaterialID:    payload.MaterialID,
		RoomURL:       payload.RoomURL,
		VideoURL:      payload.VideoURL,
		PodcastURL:    payload.PodcastURL,
		FlashcardURL:  payload.FlashcardURL,
		SQ3RReportURL: payload.SQ3RReportURL,
		DigitalStatus: string(catalogModel.DigitalDone),
	}
	if err := wc.Catalog.UpsertByKey(c.Context(), catalogModel.TableDigital, payload.MaterialID, digital.ToFields()); err != nil {
		log.Println("[ERROR] Gagal upsert aset digital:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal menyimpan aset digital")
	}

	// Classroom opsional (hanya jika pipeline membuatnya)
	if payload.ClassroomURL != "" || payload.GFormURL != "" {
		classroom := catalogModel.ClassroomRecord{
			MaterialID:            payload.MaterialID,
			ClassroomURL:          payload.ClassroomURL,
			GFormURL:              payload.GFormURL,
			SheetformResponsesURL: payload.SheetformResponsesURL,
			ClassroomStatus:       string(catalogModel.ClassroomCreated),
		}
		if err := wc.Catalog.UpsertByKey(c.Context(), catalogModel.TableClassroom, payload.MaterialID, classroom.ToFields()); err != nil {
			log.Println("[WARN] Gagal upsert data classroom:", err)
		}
	}

	// Materi naik ke PUBLISHED
	wc.bumpMaterialStatus(c, payload.MaterialID, catalogModel.MaterialPublished)

	// Tutup job
	now := time.Now().UTC()
	result, _ := sonic.Marshal(payload)
	if err := job.MarkDone(now, datatypes.JSON(result)); err != nil {
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	if err := wc.DB.Save(job).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan job:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan job")
	}

	auditService.Record(wc.DB, c, auditModel.ActionMaterialPublished, payload.MaterialID, fiber.Map{
		"job_id": job.ID.String(),
	})

	log.Printf("[SUCCESS] Materi %s selesai didigitalisasi (job %s)\n", payload.MaterialID, job.ID)
	return helper.JsonOK(c, "Aset digital tersimpan", fiber.Map{
		"material_id": payload.MaterialID,
		"job_id":      job.ID.String(),
	})
}

// POST /api/webhooks/n8n/schedule-processed — update status baris jadwal
// in-place berdasarkan row_index yang dikirim saat sinkronisasi.
func (wc *WebhookController) ScheduleProcessed(c *fiber.Ctx) error {
	var payload dto.ScheduleProcessedPayload
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := wc.validate.Struct(payload); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	row, err := wc.scheduleRowAt(c, payload.RowIndex)
	if err != nil {
		log.Println("[ERROR] Gagal membaca jadwal:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membaca katalog jadwal")
	}
	if row == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Baris jadwal tidak ditemukan")
	}

	rec := catalogModel.ScheduleFromRow(*row)
	if payload.AnnouncementStatus != "" {
		rec.AnnouncementStatus = payload.AnnouncementStatus
	}
	if payload.AssignmentStatus != "" {
		rec.AssignmentStatus = payload.AssignmentStatus
	}
	if payload.AssignmentURL != "" {
		rec.AssignmentURL = payload.AssignmentURL
	}
	if payload.ProcessLog != "" {
		rec.LastProcessLog = payload.ProcessLog
	}

	if err := wc.Catalog.UpdateAt(c.Context(), catalogModel.TableSchedule, payload.RowIndex, rec.ToFields()); err != nil {
		log.Println("[ERROR] Gagal update baris jadwal:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal memperbarui katalog jadwal")
	}

	return helper.JsonOK(c, "Status jadwal diperbarui", fiber.Map{
		"row_index": payload.RowIndex,
	})
}

func (wc *WebhookController) findJob(jobID string) (*jobModel.JobModel, *fiber.Error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format job_id tidak valid")
	}
	var job jobModel.JobModel
	if err := wc.DB.First(&job, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Job tidak ditemukan")
	}
	return &job, nil
}

func (wc *WebhookController) bumpMaterialStatus(c *fiber.Ctx, materialID string, status catalogModel.MaterialStatus) {
	row, err := wc.Catalog.FindByKey(c.Context(), catalogModel.TableMaterials, materialID)
	if err != nil || row == nil {
		log.Printf("[WARN] Materi %s tidak ditemukan saat update status\n", materialID)
		return
	}
	rec := catalogModel.MaterialFromRow(*row)
	if !catalogModel.MaterialStatus(rec.Status).CanTransition(status) {
		log.Printf("[WARN] Transisi status materi %s %s -> %s dilewati\n", materialID, rec.Status, status)
		return
	}
	rec.Status = string(status)
	if err := wc.Catalog.UpsertByKey(c.Context(), catalogModel.TableMaterials, materialID, rec.ToFields()); err != nil {
		log.Println("[WARN] Gagal update status materi:", err)
	}
}

func (wc *WebhookController) markDigitalFailed(c *fiber.Ctx, materialID, message string) {
	row, err := wc.Catalog.FindByKey(c.Context(), catalogModel.TableDigital, materialID)
	if err != nil || row == nil {
		return
	}
	rec := catalogModel.DigitalFromRow(*row)
	rec.DigitalStatus = string(catalogModel.DigitalFailed)
	rec.DigitalErrorLog = message
	if err := wc.Catalog.UpsertByKey(c.Context(), catalogModel.TableDigital, materialID, rec.ToFields()); err != nil {
		log.Println("[WARN] Gagal menandai digital failed:", err)
	}
}

func (wc *WebhookController) scheduleRowAt(c *fiber.Ctx, rawIndex int) (*store.Row, error) {
	rows, err := wc.Catalog.FetchAll(c.Context(), catalogModel.TableSchedule)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Index == rawIndex {
			return &rows[i], nil
		}
	}
	return nil, nil
}
