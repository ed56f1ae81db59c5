package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
	generateService "materiku_backend/internals/features/generate/service"
	jobModel "materiku_backend/internals/features/jobs/model"
	userModel "materiku_backend/internals/features/users/user/model"
)

// DashboardStats ringkasan untuk halaman admin.
type DashboardStats struct {
	TotalMaterials    int              `json:"total_materials"`
	MaterialsByStatus map[string]int   `json:"materials_by_status"`
	TotalJobs         int64            `json:"total_jobs"`
	JobsByStatus      map[string]int64 `json:"jobs_by_status"`
	TotalActiveUsers  int64            `json:"total_active_users"`
	DigitalDone       int              `json:"digital_done"`
	ClassroomsCreated int              `json:"classrooms_created"`
}

// BuildDashboardStats gabungkan hitungan dari katalog dan database.
func BuildDashboardStats(ctx context.Context, db *gorm.DB, st *store.Store) (*DashboardStats, error) {
	stats := &DashboardStats{
		MaterialsByStatus: map[string]int{},
		JobsByStatus:      map[string]int64{},
	}

	materialRows, err := st.FetchAll(ctx, catalogModel.TableMaterials)
	if err != nil {
		return nil, fmt.Errorf("analytics: fetch materials: %w", err)
	}
	stats.TotalMaterials = len(materialRows)
	for _, row := range materialRows {
		rec := catalogModel.MaterialFromRow(row)
		stats.MaterialsByStatus[rec.Status]++
	}

	digitalRows, err := st.FetchAll(ctx, catalogModel.TableDigital)
	if err != nil {
		return nil, fmt.Errorf("analytics: fetch digital: %w", err)
	}
	for _, row := range digitalRows {
		if catalogModel.DigitalFromRow(row).DigitalStatus == string(catalogModel.DigitalDone) {
			stats.DigitalDone++
		}
	}

	classroomRows, err := st.FetchAll(ctx, catalogModel.TableClassroom)
	if err != nil {
		return nil, fmt.Errorf("analytics: fetch classroom: %w", err)
	}
	for _, row := range classroomRows {
		if catalogModel.ClassroomFromRow(row).ClassroomStatus == string(catalogModel.ClassroomCreated) {
			stats.ClassroomsCreated++
		}
	}

	if err := db.Model(&jobModel.JobModel{}).Count(&stats.TotalJobs).Error; err != nil {
		return nil, fmt.Errorf("analytics: count jobs: %w", err)
	}
	type statusCount struct {
		Status string
		Total  int64
	}
	var counts []statusCount
	if err := db.Model(&jobModel.JobModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("analytics: group jobs: %w", err)
	}
	for _, sc := range counts {
		stats.JobsByStatus[sc.Status] = sc.Total
	}

	if err := db.Model(&userModel.UserModel{}).
		Where("is_active = ?", true).
		Count(&stats.TotalActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("analytics: count users: %w", err)
	}

	return stats, nil
}

var spreadsheetURLRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetIDFromURL ambil ID dari URL sheet respons Google Form.
func SpreadsheetIDFromURL(url string) (string, error) {
	m := spreadsheetURLRe.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", fmt.Errorf("analytics: URL spreadsheet tidak dikenali: %s", url)
	}
	return m[1], nil
}

// SheetsReader subset klien sheets yang dibutuhkan analisis kuis.
type SheetsReader interface {
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// AnalyzeQuiz baca respons Google Form dari sheet lalu minta analisis Gemini.
func AnalyzeQuiz(ctx context.Context, sheets SheetsReader, gen *generateService.Generator,
	material *catalogModel.MaterialRecord, classroom *catalogModel.ClassroomRecord) (string, error) {

	if classroom == nil || classroom.SheetformResponsesURL == "" {
		return "", fmt.Errorf("analytics: materi belum punya sheet respons kuis")
	}
	sheetID, err := SpreadsheetIDFromURL(classroom.SheetformResponsesURL)
	if err != nil {
		return "", err
	}

	rows, err := sheets.Get(ctx, sheetID, "Form Responses 1!A:Z")
	if err != nil {
		return "", fmt.Errorf("analytics: baca respons kuis: %w", err)
	}
	if len(rows) < 2 {
		return "", fmt.Errorf("analytics: belum ada respons kuis")
	}

	return gen.AnalyzeQuizResults(ctx, material.MaterialTitle, rowsToCSV(rows))
}

func rowsToCSV(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(cell, ",\"\n") {
				b.WriteString(`"` + strings.ReplaceAll(cell, `"`, `""`) + `"`)
			} else {
				b.WriteString(cell)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
