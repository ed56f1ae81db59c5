package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "materiku_backend/internals/features/audit/model"
	auditService "materiku_backend/internals/features/audit/service"
	"materiku_backend/internals/features/jobs/dto"
	"materiku_backend/internals/features/jobs/model"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/workflow"
)

type JobController struct {
	DB       *gorm.DB
	Workflow *workflow.Client
}

func NewJobController(db *gorm.DB, wf *workflow.Client) *JobController {
	return &JobController{DB: db, Workflow: wf}
}

// GET /api/jobs — teacher hanya lihat job miliknya, admin lihat semua
func (jc *JobController) Index(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := jc.DB.Model(&model.JobModel{})
	if !helper.IsAdmin(c) {
		userID, err := helper.GetUserIDFromLocals(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		q = q.Where("created_by = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if materialID := c.Query("material_id"); materialID != "" {
		q = q.Where("material_id = ?", materialID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] Gagal menghitung jobs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data job")
	}

	var jobs []model.JobModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&jobs).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil jobs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data job")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar job berhasil diambil", dto.FromJobModels(jobs), &pagination)
}

// GET /api/jobs/:id
func (jc *JobController) Show(c *fiber.Ctx) error {
	job, ferr := jc.findOwnedJob(c)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}
	return helper.JsonOK(c, "Detail job berhasil diambil", dto.FromJobModel(job))
}

// POST /api/jobs/:id/retry — hanya job failed yang bisa dikirim ulang
func (jc *JobController) Retry(c *fiber.Ctx) error {
	job, ferr := jc.findOwnedJob(c)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	if err := job.Retry(); err != nil {
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}

	if err := jc.DB.Save(job).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan retry job:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan job")
	}

	jc.Workflow.TriggerJob(workflow.TriggerPayload{
		JobID:      job.ID.String(),
		MaterialID: job.MaterialID,
		Action:     job.Action,
		Payload:    job.Payload,
	})

	auditService.Record(jc.DB, c, auditModel.ActionJobRetried, job.ID.String(), fiber.Map{
		"material_id": job.MaterialID,
		"action":      job.Action,
		"attempts":    job.Attempts,
	})

	log.Printf("[SUCCESS] Job %s dikirim ulang ke pipeline\n", job.ID)
	return helper.JsonOK(c, "Job dikirim ulang ke pipeline", dto.FromJobModel(job))
}

// findOwnedJob ambil job by :id dan enforce kepemilikan untuk non-admin.
func (jc *JobController) findOwnedJob(c *fiber.Ctx) (*model.JobModel, *fiber.Error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var job model.JobModel
	if err := jc.DB.First(&job, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Job tidak ditemukan")
	}

	if !helper.IsAdmin(c) {
		userID, err := helper.GetUserIDFromLocals(c)
		if err != nil || job.CreatedBy.String() != userID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses ke job ini")
		}
	}
	return &job, nil
}
