package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ===============================
   Fake SheetsAPI (in-memory)
=================================*/

type fakeSheets struct {
	mu    sync.Mutex
	data  map[string][][]string // spreadsheetID → raw rows
	onGet func()                // hook untuk mengatur interleaving di test race
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{data: make(map[string][][]string)}
}

func (f *fakeSheets) seed(id string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[id] = append(f.data[id], rows...)
}

func (f *fakeSheets) rows(id string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.data[id]))
	copy(out, f.data[id])
	return out
}

func (f *fakeSheets) Get(ctx context.Context, id, rng string) ([][]string, error) {
	f.mu.Lock()
	snapshot := make([][]string, len(f.data[id]))
	copy(snapshot, f.data[id])
	f.mu.Unlock()

	if f.onGet != nil {
		f.onGet()
	}
	return snapshot, nil
}

func (f *fakeSheets) Append(ctx context.Context, id, rng string, rows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[id] = append(f.data[id], rows...)
	return nil
}

func (f *fakeSheets) Update(ctx context.Context, id, rng string, rows [][]string) error {
	// rng contoh: "Sheet1!A3:I3" → baris 3 (1-based), lebar 9 kolom
	bang := strings.Index(rng, "!")
	if bang < 0 {
		return fmt.Errorf("fake: range %q tanpa sheet", rng)
	}
	parts := strings.SplitN(rng[bang+1:], ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("fake: range %q bukan rectangular", rng)
	}
	numStr := strings.TrimLeft(parts[0], "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return fmt.Errorf("fake: range %q tanpa nomor baris", rng)
	}
	span := colNumber(parts[1]) - colNumber(parts[0]) + 1
	if span < 1 {
		return fmt.Errorf("fake: range %q lebar kolom tidak valid", rng)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if n < 1 || n > len(f.data[id]) {
		return fmt.Errorf("fake: baris %d di luar data (%d)", n, len(f.data[id]))
	}
	// Sheets API menolak baris yang melebihi lebar range (400 INVALID_ARGUMENT)
	if len(rows[0]) > span {
		return fmt.Errorf("fake: baris %d sel > lebar range %q (%d kolom)", len(rows[0]), rng, span)
	}
	f.data[id][n-1] = rows[0]
	return nil
}

// colNumber: "A" → 1, "K" → 11, "AA" → 27.
func colNumber(ref string) int {
	col := strings.TrimRight(ref, "0123456789")
	n := 0
	for _, ch := range col {
		n = n*26 + int(ch-'A'+1)
	}
	return n
}

/* ===============================
   Table fixtures
=================================*/

const (
	materialsSheetID = "sheet-materials"
	digitalSheetID   = "sheet-digital"
)

func testTables() map[string]TableSpec {
	return map[string]TableSpec{
		"materials": {
			SpreadsheetID: materialsSheetID,
			Range:         "Sheet1!A:K",
			Schema: Schema{
				Fields: []string{
					"material_id", "slug", "subject_name", "material_title",
					"material_description", "teacher_email", "date_release",
					"drive_source_file_link", "status", "created_at", "updated_at",
				},
				KeyField:  "material_id",
				MinWidth:  9,
				HasHeader: true,
			},
		},
		"digital": {
			SpreadsheetID: digitalSheetID,
			Range:         "Sheet1!A:I",
			Schema: Schema{
				Fields: []string{
					"material_id", "room_url", "video_url", "podcast_url",
					"flashcard_url", "sq3r_report_url", "digital_status",
					"digital_error_log", "updated_at",
				},
				KeyField: "material_id",
				MinWidth: 8,
			},
		},
	}
}

var materialsHeader = []string{
	"material_id", "slug", "subject_name", "material_title", "material_description",
	"teacher_email", "date_release", "drive_source_file_link", "status",
}

func fixedClock() func() time.Time {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

/* ===============================
   FetchAll / FindByKey
=================================*/

func TestFetchAllMaterialsSkipsHeader(t *testing.T) {
	fake := newFakeSheets()
	fake.seed(materialsSheetID,
		materialsHeader,
		[]string{"MTR1", "a-slug", "Math", "Algebra", "desc", "t@x.com", "2024-01-01", "http://f", "WAITING"},
	)
	s := New(fake, testTables())

	rows, err := s.FetchAll(context.Background(), "materials")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MTR1", rows[0].Fields["material_id"])
	assert.Equal(t, "WAITING", rows[0].Fields["status"])
	assert.Equal(t, "t@x.com", rows[0].Fields["teacher_email"])
	// baris 9 sel: kolom timestamp di luar lebar baris → ""
	assert.Equal(t, "", rows[0].Fields["created_at"])
	// index mentah menyertakan header, dipakai untuk alamat update 1-based
	assert.Equal(t, 1, rows[0].Index)
}

func TestFetchAllEmptyTable(t *testing.T) {
	s := New(newFakeSheets(), testTables())

	rows, err := s.FetchAll(context.Background(), "digital")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchAllSkipsShortRows(t *testing.T) {
	fake := newFakeSheets()
	fake.seed(digitalSheetID,
		[]string{"MTR1", "http://room"}, // setengah tertulis: < MinWidth
		[]string{"MTR2", "", "", "", "", "", "DONE", ""},
	)
	s := New(fake, testTables())

	rows, err := s.FetchAll(context.Background(), "digital")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MTR2", rows[0].Fields["material_id"])
}

func TestFetchAllIgnoresExtraWidth(t *testing.T) {
	fake := newFakeSheets()
	fake.seed(digitalSheetID,
		[]string{"MTR1", "", "", "", "", "", "DONE", "", "2024-01-01T00:00:00Z", "kolom-liar", "lagi"},
	)
	s := New(fake, testTables())

	rows, err := s.FetchAll(context.Background(), "digital")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Fields, 9)
}

func TestFindByKeyNotFound(t *testing.T) {
	fake := newFakeSheets()
	s := New(fake, testTables())

	// tabel kosong
	row, err := s.FindByKey(context.Background(), "digital", "MTR404")
	require.NoError(t, err)
	assert.Nil(t, row)

	// key tidak pernah ditulis
	fake.seed(digitalSheetID, []string{"MTR1", "", "", "", "", "", "PENDING", ""})
	row, err = s.FindByKey(context.Background(), "digital", "MTR404")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestUnknownTable(t *testing.T) {
	s := New(newFakeSheets(), testTables())

	_, err := s.FetchAll(context.Background(), "nope")
	assert.Error(t, err)
}

/* ===============================
   Append / Upsert
=================================*/

func TestAppendThenFetchAll(t *testing.T) {
	fake := newFakeSheets()
	fake.seed(materialsSheetID, materialsHeader)
	s := New(fake, testTables(), WithClock(fixedClock()))

	err := s.Append(context.Background(), "materials", map[string]string{
		"material_id":            "MTRABCD1234",
		"slug":                   "aljabar-x1ab",
		"subject_name":           "Matematika",
		"material_title":         "Aljabar",
		"material_description":   "Pengenalan aljabar",
		"teacher_email":          "guru@sekolah.sch.id",
		"date_release":           "2024-06-01",
		"drive_source_file_link": "https://drive.google.com/x",
		"status":                 "WAITING",
	})
	require.NoError(t, err)

	rows, err := s.FetchAll(context.Background(), "materials")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0].Fields
	assert.Equal(t, "MTRABCD1234", got["material_id"])
	assert.Equal(t, "Aljabar", got["material_title"])
	assert.Equal(t, "WAITING", got["status"])
	// timestamp server disuntik saat tulis
	assert.Equal(t, "2024-03-01T10:00:00Z", got["created_at"])
	assert.Equal(t, "2024-03-01T10:00:00Z", got["updated_at"])
}

func TestUpsertByKeyAppendsThenUpdatesInPlace(t *testing.T) {
	fake := newFakeSheets()
	s := New(fake, testTables(), WithClock(fixedClock()))
	ctx := context.Background()

	err := s.UpsertByKey(ctx, "digital", "MTR1", map[string]string{
		"material_id":    "MTR1",
		"digital_status": "DONE",
		"video_url":      "http://v",
	})
	require.NoError(t, err)

	err = s.UpsertByKey(ctx, "digital", "MTR1", map[string]string{
		"material_id":    "MTR1",
		"digital_status": "FAILED",
	})
	require.NoError(t, err)

	rows, err := s.FetchAll(ctx, "digital")
	require.NoError(t, err)
	require.Len(t, rows, 1, "upsert kedua harus in-place, bukan append")

	row, err := s.FindByKey(ctx, "digital", "MTR1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "FAILED", row.Fields["digital_status"])
	// baris ditulis utuh dari fields terakhir (last write wins)
	assert.Equal(t, "", row.Fields["video_url"])
}

// Baris materials penuh = 11 sel (termasuk created_at/updated_at); range
// tabel harus selebar itu supaya update in-place tidak ditolak Sheets.
func TestUpsertMaterialsFullWidthInPlace(t *testing.T) {
	fake := newFakeSheets()
	fake.seed(materialsSheetID,
		materialsHeader,
		[]string{"MTR1", "aljabar-x1ab", "Matematika", "Aljabar", "desc", "guru@sekolah.sch.id", "2024-06-01", "https://drive.google.com/x", "WAITING"},
	)
	s := New(fake, testTables(), WithClock(fixedClock()))
	ctx := context.Background()

	err := s.UpsertByKey(ctx, "materials", "MTR1", map[string]string{
		"material_id":            "MTR1",
		"slug":                   "aljabar-x1ab",
		"subject_name":           "Matematika",
		"material_title":         "Aljabar",
		"material_description":   "desc",
		"teacher_email":          "guru@sekolah.sch.id",
		"date_release":           "2024-06-01",
		"drive_source_file_link": "https://drive.google.com/x",
		"status":                 "PUBLISHED",
		"created_at":             "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	rows, err := s.FetchAll(ctx, "materials")
	require.NoError(t, err)
	require.Len(t, rows, 1, "update status harus in-place, bukan append")
	assert.Equal(t, "PUBLISHED", rows[0].Fields["status"])
	assert.Equal(t, "2024-03-01T10:00:00Z", rows[0].Fields["updated_at"])

	raw := fake.rows(materialsSheetID)
	require.Len(t, raw, 2)
	assert.Len(t, raw[1], 11)
}

func TestUpsertUpdatesCorrectAbsoluteRow(t *testing.T) {
	fake := newFakeSheets()
	fake.seed(digitalSheetID,
		[]string{"MTR1", "", "", "", "", "", "PENDING", ""},
		[]string{"MTR2", "", "", "", "", "", "PENDING", ""},
		[]string{"MTR3", "", "", "", "", "", "PENDING", ""},
	)
	s := New(fake, testTables())

	err := s.UpsertByKey(context.Background(), "digital", "MTR2", map[string]string{
		"material_id":    "MTR2",
		"digital_status": "DONE",
	})
	require.NoError(t, err)

	raw := fake.rows(digitalSheetID)
	require.Len(t, raw, 3)
	assert.Equal(t, "PENDING", raw[0][6])
	assert.Equal(t, "DONE", raw[1][6])
	assert.Equal(t, "PENDING", raw[2][6])
}

func TestUpdateAtAddressesRawIndex(t *testing.T) {
	fake := newFakeSheets()
	fake.seed(digitalSheetID,
		[]string{"MTR1", "", "", "", "", "", "PENDING", ""},
		[]string{"MTR2", "", "", "", "", "", "PENDING", ""},
	)
	s := New(fake, testTables())

	err := s.UpdateAt(context.Background(), "digital", 1, map[string]string{
		"material_id":    "MTR2",
		"digital_status": "PROCESSING",
	})
	require.NoError(t, err)

	raw := fake.rows(digitalSheetID)
	assert.Equal(t, "PROCESSING", raw[1][6])
	assert.Equal(t, "PENDING", raw[0][6])
}

/* ===============================
   Race upsert (scan-then-write)
=================================*/

// Tanpa guard: dua upsert konkuren untuk key sama, dua-duanya membaca
// sebelum ada yang menulis → dua baris untuk satu key. Ini race yang
// didokumentasikan dari pola scan-then-write.
func TestConcurrentUpsertWithoutGuardDuplicates(t *testing.T) {
	fake := newFakeSheets()

	var barrier sync.WaitGroup
	barrier.Add(2)
	fake.onGet = func() {
		barrier.Done()
		barrier.Wait() // dua-duanya selesai scan dulu, baru boleh menulis
	}

	s := New(fake, testTables(), WithoutWriteGuard())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.UpsertByKey(context.Background(), "digital", "MTR1", map[string]string{
				"material_id":    "MTR1",
				"digital_status": fmt.Sprintf("WRITE-%d", n),
			})
		}(i)
	}
	wg.Wait()

	assert.Len(t, fake.rows(digitalSheetID), 2, "tanpa guard, scan-then-write menghasilkan baris ganda")
}

func TestConcurrentUpsertWithGuardSingleRow(t *testing.T) {
	fake := newFakeSheets()
	s := New(fake, testTables())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.UpsertByKey(context.Background(), "digital", "MTR1", map[string]string{
				"material_id":    "MTR1",
				"digital_status": fmt.Sprintf("WRITE-%d", n),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rows, err := s.FetchAll(context.Background(), "digital")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "guard per (table,key) menserialkan scan+write")
}

/* ===============================
   Range math
=================================*/

func TestRowRange(t *testing.T) {
	spec := TableSpec{Range: "Sheet1!A:Q"}

	rng, err := spec.rowRange(0)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A1:Q1", rng)

	rng, err = spec.rowRange(41)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A42:Q42", rng)
}

func TestSplitRangeInvalid(t *testing.T) {
	_, _, _, err := splitRange("A:Q")
	assert.Error(t, err)

	_, _, _, err = splitRange("Sheet1!AQ")
	assert.Error(t, err)
}
