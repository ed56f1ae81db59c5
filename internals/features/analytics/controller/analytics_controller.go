package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/analytics/service"
	"materiku_backend/internals/features/catalog/store"
	generateService "materiku_backend/internals/features/generate/service"
	materialService "materiku_backend/internals/features/materials/service"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/google"
)

type AnalyticsController struct {
	DB        *gorm.DB
	Catalog   *store.Store
	Sheets    *google.SheetsClient
	Generator *generateService.Generator
}

func NewAnalyticsController(db *gorm.DB, catalog *store.Store, sheets *google.SheetsClient, gen *generateService.Generator) *AnalyticsController {
	return &AnalyticsController{DB: db, Catalog: catalog, Sheets: sheets, Generator: gen}
}

// GET /api/admin/analytics/dashboard
func (ac *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	stats, err := service.BuildDashboardStats(c.Context(), ac.DB, ac.Catalog)
	if err != nil {
		log.Println("[ERROR] Gagal membangun statistik dashboard:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil statistik")
	}
	return helper.JsonOK(c, "Statistik dashboard berhasil diambil", stats)
}

// GET /api/analytics/materials/:id/quiz — analisis hasil kuis oleh Gemini.
func (ac *AnalyticsController) QuizAnalysis(c *fiber.Ctx) error {
	materialID := c.Params("id")

	material, err := materialService.FindMaterial(c.Context(), ac.Catalog, materialID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil materi:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil data materi")
	}
	if material == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	if !helper.IsAdmin(c) {
		email := helper.GetUserEmailFromLocals(c)
		if !strings.EqualFold(material.TeacherEmail, email) {
			return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak memiliki akses ke materi ini")
		}
	}

	classroom, err := materialService.FindClassroom(c.Context(), ac.Catalog, materialID)
	if err != nil {
		log.Println("[ERROR] Gagal mengambil data classroom:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengambil data classroom")
	}

	analysis, err := service.AnalyzeQuiz(c.Context(), ac.Sheets, ac.Generator, material, classroom)
	if err != nil {
		// detail error (range sheet, pesan Gemini) cukup di log, jangan bocor ke klien
		log.Println("[WARN] Analisis kuis gagal:", err)
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Analisis kuis belum dapat dibuat untuk materi ini")
	}

	return helper.JsonOK(c, "Analisis kuis berhasil dibuat", fiber.Map{
		"material_id": materialID,
		"analysis":    analysis,
	})
}
