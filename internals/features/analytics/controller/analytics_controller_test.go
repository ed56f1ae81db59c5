package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"materiku_backend/internals/configs"
	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
)

type memSheets struct {
	data map[string][][]string
}

func (m *memSheets) Get(ctx context.Context, id, rng string) ([][]string, error) {
	return m.data[id], nil
}

func (m *memSheets) Append(ctx context.Context, id, rng string, rows [][]string) error {
	m.data[id] = append(m.data[id], rows...)
	return nil
}

func (m *memSheets) Update(ctx context.Context, id, rng string, rows [][]string) error {
	return nil
}

func quizTestApp(t *testing.T) *fiber.App {
	t.Helper()

	fake := &memSheets{data: map[string][][]string{
		"sheet-materials": {
			{"material_id", "slug", "subject_name", "material_title", "material_description",
				"teacher_email", "date_release", "drive_source_file_link", "status"},
			{"MTR1", "aljabar-x1ab", "Matematika", "Aljabar", "desc",
				"guru@sekolah.sch.id", "2024-06-01", "https://drive.google.com/x", "PUBLISHED"},
		},
	}}
	catalog := store.New(fake, catalogModel.Tables(configs.CatalogSheetsConfig{
		MaterialsSpreadsheetID: "sheet-materials",
		ClassroomSpreadsheetID: "sheet-classroom",
	}))
	ac := NewAnalyticsController(nil, catalog, nil, nil)

	app := fiber.New()
	app.Get("/api/analytics/materials/:id/quiz", func(c *fiber.Ctx) error {
		c.Locals("userRole", "admin")
		return ac.QuizAnalysis(c)
	})
	return app
}

// Kegagalan analisis (materi tanpa classroom/sheet respons) dijawab dengan
// pesan generik; detail errornya hanya untuk log server.
func TestQuizAnalysisFailureHidesInternalDetail(t *testing.T) {
	app := quizTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/analytics/materials/MTR1/quiz", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Analisis kuis belum dapat dibuat")
	assert.NotContains(t, string(body), "analytics:")
}

func TestQuizAnalysisUnknownMaterial(t *testing.T) {
	app := quizTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/analytics/materials/MTR404/quiz", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
