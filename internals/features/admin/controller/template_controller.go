package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"materiku_backend/internals/features/admin/dto"
	"materiku_backend/internals/features/admin/model"
	helper "materiku_backend/internals/helpers"
)

type TemplateController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db, validate: validator.New()}
}

/* ==========================
   ANNOUNCEMENT TEMPLATES
========================== */

// GET /api/admin/templates/announcements
func (tc *TemplateController) ListAnnouncements(c *fiber.Ctx) error {
	var templates []model.AnnouncementTemplate
	q := tc.DB.Order("code ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&templates).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil template pengumuman:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil template")
	}
	return helper.JsonOK(c, "Daftar template pengumuman", fiber.Map{
		"total":     len(templates),
		"templates": templates,
	})
}

// POST /api/admin/templates/announcements
func (tc *TemplateController) CreateAnnouncement(c *fiber.Ctx) error {
	var req dto.AnnouncementTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := tc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	tpl := model.AnnouncementTemplate{
		Code:     strings.ToLower(strings.TrimSpace(req.Code)),
		Name:     req.Name,
		Subject:  req.Subject,
		Body:     req.Body,
		IsActive: true,
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	tpl.CreatedBy = currentUserID(c)
	if err := tc.DB.Create(&tpl).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Kode template sudah dipakai")
		}
		log.Println("[ERROR] Gagal membuat template pengumuman:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan template")
	}
	return helper.JsonCreated(c, "Template pengumuman dibuat", tpl)
}

// PUT /api/admin/templates/announcements/:id
func (tc *TemplateController) UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.AnnouncementTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := tc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var tpl model.AnnouncementTemplate
	if err := tc.DB.First(&tpl, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Template tidak ditemukan")
	}

	tpl.Code = strings.ToLower(strings.TrimSpace(req.Code))
	tpl.Name = req.Name
	tpl.Subject = req.Subject
	tpl.Body = req.Body
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	if err := tc.DB.Save(&tpl).Error; err != nil {
		log.Println("[ERROR] Gagal update template pengumuman:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan template")
	}
	return helper.JsonOK(c, "Template pengumuman diperbarui", tpl)
}

// DELETE /api/admin/templates/announcements/:id
func (tc *TemplateController) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}
	res := tc.DB.Delete(&model.AnnouncementTemplate{}, "id = ?", id)
	if res.Error != nil {
		log.Println("[ERROR] Gagal menghapus template pengumuman:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus template")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Template tidak ditemukan")
	}
	return helper.JsonOK(c, "Template pengumuman dihapus", fiber.Map{"id": id.String()})
}

/* ==========================
   ASSIGNMENT TEMPLATES
========================== */

// GET /api/admin/templates/assignments
func (tc *TemplateController) ListAssignments(c *fiber.Ctx) error {
	var templates []model.AssignmentTemplate
	q := tc.DB.Order("code ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&templates).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil template tugas:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil template")
	}
	return helper.JsonOK(c, "Daftar template tugas", fiber.Map{
		"total":     len(templates),
		"templates": templates,
	})
}

// POST /api/admin/templates/assignments
func (tc *TemplateController) CreateAssignment(c *fiber.Ctx) error {
	var req dto.AssignmentTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := tc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	tpl := model.AssignmentTemplate{
		Code:         strings.ToLower(strings.TrimSpace(req.Code)),
		Name:         req.Name,
		Title:        req.Title,
		Instructions: req.Instructions,
		MaxPoints:    req.MaxPoints,
		DueDays:      req.DueDays,
		IsActive:     true,
	}
	if tpl.MaxPoints == 0 {
		tpl.MaxPoints = 100
	}
	if tpl.DueDays == 0 {
		tpl.DueDays = 7
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	tpl.CreatedBy = currentUserID(c)
	if err := tc.DB.Create(&tpl).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Kode template sudah dipakai")
		}
		log.Println("[ERROR] Gagal membuat template tugas:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan template")
	}
	return helper.JsonCreated(c, "Template tugas dibuat", tpl)
}

// PUT /api/admin/templates/assignments/:id
func (tc *TemplateController) UpdateAssignment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.AssignmentTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := tc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var tpl model.AssignmentTemplate
	if err := tc.DB.First(&tpl, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Template tidak ditemukan")
	}

	tpl.Code = strings.ToLower(strings.TrimSpace(req.Code))
	tpl.Name = req.Name
	tpl.Title = req.Title
	tpl.Instructions = req.Instructions
	if req.MaxPoints > 0 {
		tpl.MaxPoints = req.MaxPoints
	}
	if req.DueDays > 0 {
		tpl.DueDays = req.DueDays
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	if err := tc.DB.Save(&tpl).Error; err != nil {
		log.Println("[ERROR] Gagal update template tugas:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan template")
	}
	return helper.JsonOK(c, "Template tugas diperbarui", tpl)
}

// DELETE /api/admin/templates/assignments/:id
func (tc *TemplateController) DeleteAssignment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}
	res := tc.DB.Delete(&model.AssignmentTemplate{}, "id = ?", id)
	if res.Error != nil {
		log.Println("[ERROR] Gagal menghapus template tugas:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus template")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Template tidak ditemukan")
	}
	return helper.JsonOK(c, "Template tugas dihapus", fiber.Map{"id": id.String()})
}

func currentUserID(c *fiber.Ctx) *uuid.UUID {
	idStr, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	return &id
}
