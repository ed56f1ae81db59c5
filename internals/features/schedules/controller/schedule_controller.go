package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
	materialService "materiku_backend/internals/features/materials/service"
	"materiku_backend/internals/features/schedules/dto"
	"materiku_backend/internals/features/schedules/service"
	helper "materiku_backend/internals/helpers"
)

type ScheduleController struct {
	Catalog  *store.Store
	validate *validator.Validate
}

func NewScheduleController(catalog *store.Store) *ScheduleController {
	return &ScheduleController{Catalog: catalog, validate: validator.New()}
}

// GET /api/schedules — admin lihat semua, teacher hanya jadwal materinya.
func (sc *ScheduleController) Index(c *fiber.Ctx) error {
	records, err := service.ListSchedules(c.Context(), sc.Catalog)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil jadwal:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal mengambil data jadwal")
	}

	if !helper.IsAdmin(c) {
		email := helper.GetUserEmailFromLocals(c)
		owned, err := sc.ownedMaterialIDs(c, email)
		if err != nil {
			log.Println("[ERROR] Gagal mengambil materi guru:", err)
			return helper.Error(c, fiber.StatusBadGateway, "Gagal mengambil data jadwal")
		}
		filtered := records[:0]
		for _, rec := range records {
			if _, ok := owned[rec.MaterialID]; ok {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	return helper.Success(c, "Daftar jadwal berhasil diambil", fiber.Map{
		"total":     len(records),
		"schedules": records,
	})
}

// GET /api/schedules/tomorrow — baris jadwal H-1 (tanggal WIB).
func (sc *ScheduleController) Tomorrow(c *fiber.Ctx) error {
	records, err := service.TomorrowSchedules(c.Context(), sc.Catalog, time.Now())
	if err != nil {
		log.Println("[ERROR] Gagal mengambil jadwal besok:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal mengambil data jadwal")
	}
	return helper.Success(c, "Jadwal untuk besok berhasil diambil", fiber.Map{
		"total":     len(records),
		"schedules": records,
	})
}

// POST /api/schedules — tambah jadwal rilis untuk materi milik sendiri.
func (sc *ScheduleController) Store(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := sc.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	material, err := materialService.FindMaterial(c.Context(), sc.Catalog, req.MaterialID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil materi:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal mengambil data materi")
	}
	if material == nil {
		return helper.Error(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	if !helper.IsAdmin(c) {
		email := helper.GetUserEmailFromLocals(c)
		if !strings.EqualFold(material.TeacherEmail, email) {
			return helper.Error(c, fiber.StatusForbidden, "Anda tidak memiliki akses ke materi ini")
		}
	}

	rec := catalogModel.ScheduleRecord{
		DateRelease:          req.DateRelease,
		TimeTrigger:          req.TimeTrigger,
		MaterialID:           req.MaterialID,
		ProctorEmail:         req.ProctorEmail,
		ClassgroupEmail:      req.ClassgroupEmail,
		AnnouncementTemplate: req.AnnouncementTemplate,
		AssignmentTemplate:   req.AssignmentTemplate,
		ClassroomID:          req.ClassroomID,
	}
	if err := service.AppendSchedule(c.Context(), sc.Catalog, rec); err != nil {
		log.Println("[ERROR] Gagal menambah jadwal:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal menambah jadwal")
	}

	log.Printf("[SUCCESS] Jadwal %s %s untuk %s ditambahkan\n", req.DateRelease, req.TimeTrigger, req.MaterialID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Jadwal berhasil ditambahkan", rec)
}

func (sc *ScheduleController) ownedMaterialIDs(c *fiber.Ctx, email string) (map[string]struct{}, error) {
	materials, err := materialService.ListMaterials(c.Context(), sc.Catalog, materialService.ListFilter{OwnerEmail: email})
	if err != nil {
		return nil, err
	}
	owned := make(map[string]struct{}, len(materials))
	for _, m := range materials {
		owned[m.MaterialID] = struct{}{}
	}
	return owned, nil
}
