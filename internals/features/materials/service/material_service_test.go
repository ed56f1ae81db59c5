package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"materiku_backend/internals/configs"
	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
)

// Fake in-memory untuk store.SheetsAPI.
type memSheets struct {
	mu   sync.Mutex
	data map[string][][]string
}

func (m *memSheets) Get(_ context.Context, spreadsheetID, _ string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[spreadsheetID], nil
}

func (m *memSheets) Append(_ context.Context, spreadsheetID, _ string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[spreadsheetID] = append(m.data[spreadsheetID], rows...)
	return nil
}

func (m *memSheets) Update(_ context.Context, spreadsheetID, writeRange string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rowNum int
	if _, err := fmt.Sscanf(writeRange[strings.Index(writeRange, "!A")+2:], "%d", &rowNum); err != nil {
		return err
	}
	if rowNum-1 < len(m.data[spreadsheetID]) {
		m.data[spreadsheetID][rowNum-1] = rows[0]
	}
	return nil
}

func newTestStore(t *testing.T) (*store.Store, *memSheets) {
	t.Helper()
	api := &memSheets{data: map[string][][]string{
		"sheet-materi": {
			{"material_id", "slug", "subject_name", "material_title", "material_description", "teacher_email", "date_release", "drive_source_file_link", "status"},
			{"MTRAAAA0001", "aljabar-x1", "Matematika", "Aljabar Dasar", "Bab 1", "bu.siti@sekolah.sch.id", "2024-03-10", "https://drive/a", "PUBLISHED", "2024-03-01T08:00:00Z", "2024-03-02T08:00:00Z"},
			{"MTRAAAA0002", "fotosintesis", "Biologi", "Fotosintesis", "Bab 2", "pak.budi@sekolah.sch.id", "2024-03-11", "https://drive/b", "WAITING", "2024-03-03T08:00:00Z", "2024-03-03T08:00:00Z"},
			{"MTRAAAA0003", "trigonometri", "Matematika", "Trigonometri", "Bab 3", "bu.siti@sekolah.sch.id", "2024-03-12", "https://drive/c", "WAITING", "2024-03-02T08:00:00Z", "2024-03-02T08:00:00Z"},
		},
	}}
	cfg := configs.CatalogSheetsConfig{
		MaterialsSpreadsheetID: "sheet-materi",
		DigitalSpreadsheetID:   "sheet-digital",
		ClassroomSpreadsheetID: "sheet-classroom",
		ScheduleSpreadsheetID:  "sheet-jadwal",
	}
	return store.New(api, catalogModel.Tables(cfg)), api
}

func TestListMaterialsOwnerFilter(t *testing.T) {
	st, _ := newTestStore(t)

	records, err := ListMaterials(context.Background(), st, ListFilter{OwnerEmail: "bu.siti@sekolah.sch.id"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		require.Equal(t, "bu.siti@sekolah.sch.id", rec.TeacherEmail)
	}
	// Terbaru dulu berdasarkan created_at
	require.Equal(t, "MTRAAAA0003", records[0].MaterialID)
	require.Equal(t, "MTRAAAA0001", records[1].MaterialID)
}

func TestListMaterialsStatusAndSearch(t *testing.T) {
	st, _ := newTestStore(t)

	records, err := ListMaterials(context.Background(), st, ListFilter{Status: "WAITING"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = ListMaterials(context.Background(), st, ListFilter{Search: "foto"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Fotosintesis", records[0].MaterialTitle)
}

func TestFindMaterialNotFound(t *testing.T) {
	st, _ := newTestStore(t)

	rec, err := FindMaterial(context.Background(), st, "MTRTIDAKADA")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestTitleExistsForTeacher(t *testing.T) {
	st, _ := newTestStore(t)

	exists, err := TitleExistsForTeacher(context.Background(), st, "bu.siti@sekolah.sch.id", "aljabar dasar")
	require.NoError(t, err)
	require.True(t, exists, "case-insensitive match judul milik guru yang sama")

	exists, err = TitleExistsForTeacher(context.Background(), st, "pak.budi@sekolah.sch.id", "Aljabar Dasar")
	require.NoError(t, err)
	require.False(t, exists, "judul sama milik guru lain tidak dihitung duplikat")
}
