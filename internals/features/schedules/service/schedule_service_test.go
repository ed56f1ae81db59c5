package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"materiku_backend/internals/configs"
	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
)

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

func (m *memSheets) Update(_ context.Context, _, _ string, _ [][]string) error {
	return nil
}

func scheduleRow(date, timeTrigger, materialID string) []string {
	return []string{
		date, timeTrigger, materialID,
		"proctor@sekolah.sch.id", "kelas-x1@sekolah.sch.id",
		"tpl-pengumuman", "tpl-tugas", "cls-001", "",
		"PENDING", "PENDING", "",
	}
}

func newScheduleStore(t *testing.T) *store.Store {
	t.Helper()
	api := &memSheets{data: map[string][][]string{
		"sheet-jadwal": {
			{"date_release", "time_trigger", "material_id"}, // header
			scheduleRow("2024-03-09", "07:00", "MTRAAAA0001"),
			scheduleRow("2024-03-10", "07:00", "MTRAAAA0002"),
			scheduleRow("2024-03-10", "13:00", "MTRAAAA0003"),
			scheduleRow("2024-03-11", "07:00", "MTRAAAA0004"),
		},
	}}
	cfg := configs.CatalogSheetsConfig{ScheduleSpreadsheetID: "sheet-jadwal"}
	return store.New(api, catalogModel.Tables(cfg))
}

func TestTomorrowSchedulesFiltersByJakartaDate(t *testing.T) {
	st := newScheduleStore(t)

	// 2024-03-09 pukul 20:00 WIB -> besok 2024-03-10
	now := time.Date(2024, 3, 9, 13, 0, 0, 0, time.UTC)

	matched, err := TomorrowSchedules(context.Background(), st, now)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	for _, rec := range matched {
		require.Equal(t, "2024-03-10", rec.DateRelease)
	}
}

func TestTomorrowSchedulesDateRollsOverAtMidnightWIB(t *testing.T) {
	st := newScheduleStore(t)

	// 2024-03-09 pukul 17:30 UTC = 2024-03-10 00:30 WIB -> besok 2024-03-11
	now := time.Date(2024, 3, 9, 17, 30, 0, 0, time.UTC)

	matched, err := TomorrowSchedules(context.Background(), st, now)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "MTRAAAA0004", matched[0].MaterialID)
}

func TestListSchedulesRecordsRowIndex(t *testing.T) {
	st := newScheduleStore(t)

	records, err := ListSchedules(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, records, 4)
	// Index mentah termasuk header, baris data pertama = 1
	require.Equal(t, 1, records[0].RowIndex)
	require.Equal(t, 4, records[3].RowIndex)
}

func TestAppendScheduleDefaultsPending(t *testing.T) {
	st := newScheduleStore(t)

	err := AppendSchedule(context.Background(), st, catalogModel.ScheduleRecord{
		DateRelease: "2024-03-15",
		TimeTrigger: "07:00",
		MaterialID:  "MTRAAAA0005",
	})
	require.NoError(t, err)

	records, err := ListSchedules(context.Background(), st)
	require.NoError(t, err)
	last := records[len(records)-1]
	require.Equal(t, "MTRAAAA0005", last.MaterialID)
	require.Equal(t, "PENDING", last.AnnouncementStatus)
	require.Equal(t, "PENDING", last.AssignmentStatus)
	require.NotEmpty(t, last.UpdatedAt, "stamp updated_at saat append")
}
