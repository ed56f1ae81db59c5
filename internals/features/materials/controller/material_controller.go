package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"materiku_backend/internals/constants"
	auditModel "materiku_backend/internals/features/audit/model"
	auditService "materiku_backend/internals/features/audit/service"
	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
	jobDTO "materiku_backend/internals/features/jobs/dto"
	jobModel "materiku_backend/internals/features/jobs/model"
	"materiku_backend/internals/features/materials/dto"
	"materiku_backend/internals/features/materials/service"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/google"
	"materiku_backend/internals/helpers/workflow"
)

type MaterialController struct {
	DB       *gorm.DB
	Catalog  *store.Store
	Drive    *google.DriveService
	Workflow *workflow.Client
	validate *validator.Validate
}

func NewMaterialController(db *gorm.DB, catalog *store.Store, drive *google.DriveService, wf *workflow.Client) *MaterialController {
	return &MaterialController{
		DB:       db,
		Catalog:  catalog,
		Drive:    drive,
		Workflow: wf,
		validate: validator.New(),
	}
}

// GET /api/materials — teacher lihat miliknya, admin semua.
// Filter: ?status=...&search=...
func (mc *MaterialController) Index(c *fiber.Ctx) error {
	filter := service.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if !helper.IsAdmin(c) {
		filter.OwnerEmail = helper.GetUserEmailFromLocals(c)
		if filter.OwnerEmail == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
	}

	records, err := service.ListMaterials(c.Context(), mc.Catalog, filter)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil katalog materi:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil data materi")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	total := int64(len(records))
	start := paging.Offset
	if start > len(records) {
		start = len(records)
	}
	end := start + paging.PerPage
	if end > len(records) {
		end = len(records)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar materi berhasil diambil", records[start:end], &pagination)
}

// GET /api/materials/:id — cek kepemilikan dulu baru kirim data.
func (mc *MaterialController) Show(c *fiber.Ctx) error {
	materialID := c.Params("id")

	material, err := service.FindMaterial(c.Context(), mc.Catalog, materialID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil materi:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil data materi")
	}
	if material == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	if ferr := mc.ensureOwner(c, material); ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	detail := dto.MaterialDetailResponse{Material: *material}

	if digital, err := service.FindDigital(c.Context(), mc.Catalog, materialID); err != nil {
		log.Println("[WARN] Gagal mengambil aset digital:", err)
	} else {
		detail.Digital = digital
	}
	if classroom, err := service.FindClassroom(c.Context(), mc.Catalog, materialID); err != nil {
		log.Println("[WARN] Gagal mengambil data classroom:", err)
	} else {
		detail.Classroom = classroom
	}

	var jobs []jobModel.JobModel
	if err := mc.DB.Where("material_id = ?", materialID).
		Order("created_at DESC").Find(&jobs).Error; err != nil {
		log.Println("[WARN] Gagal mengambil jobs materi:", err)
	}
	detail.Jobs = jobDTO.FromJobModels(jobs)

	return helper.JsonOK(c, "Detail materi berhasil diambil", detail)
}

// POST /api/materials — upload materi baru (multipart).
func (mc *MaterialController) Store(c *fiber.Ctx) error {
	var req dto.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := mc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File materi wajib diunggah")
	}
	if !constants.IsAllowedSourceFile(fh.Filename) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tipe file tidak didukung. Gunakan PDF, PPT, atau DOC")
	}
	if fh.Size > constants.MaxSourceFileSize {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Ukuran file melebihi batas 10MB")
	}

	teacherEmail := helper.GetUserEmailFromLocals(c)
	if teacherEmail == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// Duplikat judul per guru ditolak
	exists, err := service.TitleExistsForTeacher(c.Context(), mc.Catalog, teacherEmail, req.MaterialTitle)
	if err != nil {
		log.Println("[ERROR] Gagal cek duplikat judul:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengakses katalog materi")
	}
	if exists {
		return helper.JsonError(c, fiber.StatusConflict, "Materi dengan judul yang sama sudah ada")
	}

	materialID := helper.NewMaterialID()
	slug := helper.GenerateMaterialSlug(req.MaterialTitle)

	// Folder Drive + upload file sumber
	folderID, subfolders, err := mc.Drive.CreateMaterialFolder(c.Context(), materialID, slug)
	if err != nil {
		log.Println("[ERROR] Gagal membuat folder Drive:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal menyiapkan folder Drive")
	}
	sourceFile, err := mc.Drive.UploadFile(c.Context(), fh, subfolders["source"], fh.Filename)
	if err != nil {
		log.Println("[ERROR] Gagal upload file sumber:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengunggah file ke Drive")
	}

	// Tulis baris katalog
	material := catalogModel.MaterialRecord{
		MaterialID:          materialID,
		Slug:                slug,
		SubjectName:         req.SubjectName,
		MaterialTitle:       req.MaterialTitle,
		MaterialDescription: req.MaterialDescription,
		TeacherEmail:        teacherEmail,
		DateRelease:         req.DateRelease,
		DriveSourceFileLink: sourceFile.ViewURL,
		Status:              string(catalogModel.MaterialWaiting),
	}
	if err := mc.Catalog.Append(c.Context(), catalogModel.TableMaterials, material.ToFields()); err != nil {
		log.Println("[ERROR] Gagal menulis katalog materi:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal menulis katalog materi")
	}

	// Slot aset digital dibuat di depan dengan status PENDING
	digital := catalogModel.DigitalContentRecord{
		MaterialID:    materialID,
		DigitalStatus: string(catalogModel.DigitalPending),
	}
	if err := mc.Catalog.UpsertByKey(c.Context(), catalogModel.TableDigital, materialID, digital.ToFields()); err != nil {
		log.Println("[WARN] Gagal menyiapkan baris digital:", err)
	}

	// Job record untuk pipeline
	userID, _ := helper.GetUserIDFromLocals(c)
	job, err := mc.createJob(materialID, jobModel.JobActionDigitalize, userID, fiber.Map{
		"drive_folder_id":   folderID,
		"drive_subfolders":  subfolders,
		"source_file_link":  sourceFile.ViewURL,
		"material_title":    req.MaterialTitle,
		"subject_name":      req.SubjectName,
		"teacher_email":     teacherEmail,
		"date_release":      req.DateRelease,
	})
	if err != nil {
		log.Println("[ERROR] Gagal membuat job:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat job pipeline")
	}

	auditService.Record(mc.DB, c, auditModel.ActionMaterialUploaded, materialID, fiber.Map{
		"material_title": req.MaterialTitle,
		"subject_name":   req.SubjectName,
		"job_id":         job.ID.String(),
	})

	mc.Workflow.TriggerJob(workflow.TriggerPayload{
		JobID:      job.ID.String(),
		MaterialID: materialID,
		Action:     jobModel.JobActionDigitalize,
		Payload:    job.Payload,
	})

	log.Printf("[SUCCESS] Materi %s diunggah oleh %s\n", materialID, teacherEmail)
	return helper.JsonCreated(c, "Materi berhasil diunggah dan masuk antrian digitalisasi", dto.UploadResult{
		Material:   material,
		JobID:      job.ID.String(),
		FolderID:   folderID,
		SourceLink: sourceFile.ViewURL,
	})
}

// POST /api/materials/:id/generate — minta ulang pipeline untuk materi.
func (mc *MaterialController) GenerateDigital(c *fiber.Ctx) error {
	materialID := c.Params("id")

	var req dto.GenerateDigitalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := mc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	material, err := service.FindMaterial(c.Context(), mc.Catalog, materialID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil materi:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil data materi")
	}
	if material == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	if ferr := mc.ensureOwner(c, material); ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}

	// Tandai sedang diproses ulang
	material.Status = string(catalogModel.MaterialProcessing)
	if err := mc.Catalog.UpsertByKey(c.Context(), catalogModel.TableMaterials, materialID, material.ToFields()); err != nil {
		log.Println("[ERROR] Gagal update status materi:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal memperbarui katalog materi")
	}

	userID, _ := helper.GetUserIDFromLocals(c)
	job, err := mc.createJob(materialID, req.Action, userID, fiber.Map{
		"source_file_link": material.DriveSourceFileLink,
		"material_title":   material.MaterialTitle,
		"subject_name":     material.SubjectName,
		"teacher_email":    material.TeacherEmail,
	})
	if err != nil {
		log.Println("[ERROR] Gagal membuat job:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat job pipeline")
	}

	auditService.Record(mc.DB, c, auditModel.ActionGenerateRequested, materialID, fiber.Map{
		"action": req.Action,
		"job_id": job.ID.String(),
	})

	mc.Workflow.TriggerJob(workflow.TriggerPayload{
		JobID:      job.ID.String(),
		MaterialID: materialID,
		Action:     req.Action,
		Payload:    job.Payload,
	})

	return helper.JsonCreated(c, "Permintaan digitalisasi dikirim ke pipeline", fiber.Map{
		"material_id": materialID,
		"job_id":      job.ID.String(),
		"action":      req.Action,
	})
}

func (mc *MaterialController) ensureOwner(c *fiber.Ctx, material *catalogModel.MaterialRecord) *fiber.Error {
	if helper.IsAdmin(c) {
		return nil
	}
	email := helper.GetUserEmailFromLocals(c)
	if email == "" || !strings.EqualFold(material.TeacherEmail, email) {
		return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses ke materi ini")
	}
	return nil
}

func (mc *MaterialController) createJob(materialID, action, userID string, payload fiber.Map) (*jobModel.JobModel, error) {
	job := jobModel.JobModel{
		MaterialID: materialID,
		Action:     action,
		Status:     jobModel.JobStatusPending,
	}
	if uid, err := uuid.Parse(userID); err == nil {
		job.CreatedBy = uid
	}
	if payload != nil {
		raw, err := sonic.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		job.Payload = datatypes.JSON(raw)
	}
	if err := mc.DB.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
