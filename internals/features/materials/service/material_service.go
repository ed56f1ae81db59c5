package service

import (
	"context"
	"sort"
	"strings"

	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
)

// ListFilter kriteria daftar materi.
type ListFilter struct {
	OwnerEmail string // kosong = semua (admin)
	Status     string
	Search     string
}

// ListMaterials ambil semua baris katalog lalu filter di memori.
// Katalognya kecil (ratusan baris), jadi satu fetch cukup.
func ListMaterials(ctx context.Context, st *store.Store, filter ListFilter) ([]catalogModel.MaterialRecord, error) {
	rows, err := st.FetchAll(ctx, catalogModel.TableMaterials)
	if err != nil {
		return nil, err
	}

	records := make([]catalogModel.MaterialRecord, 0, len(rows))
	for _, row := range rows {
		rec := catalogModel.MaterialFromRow(row)
		if filter.OwnerEmail != "" && !strings.EqualFold(rec.TeacherEmail, filter.OwnerEmail) {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(rec, filter.Search) {
			continue
		}
		records = append(records, rec)
	}

	// Terbaru dulu, berdasarkan created_at (RFC3339 aman dibanding leksikal)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
	return records, nil
}

func matchesSearch(rec catalogModel.MaterialRecord, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(rec.MaterialTitle), needle) ||
		strings.Contains(strings.ToLower(rec.SubjectName), needle) ||
		strings.Contains(strings.ToLower(rec.MaterialDescription), needle)
}

// FindMaterial cari satu materi by ID; nil kalau tidak ada.
func FindMaterial(ctx context.Context, st *store.Store, materialID string) (*catalogModel.MaterialRecord, error) {
	row, err := st.FindByKey(ctx, catalogModel.TableMaterials, materialID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	rec := catalogModel.MaterialFromRow(*row)
	return &rec, nil
}

// FindDigital aset digital untuk materi; nil kalau pipeline belum jalan.
func FindDigital(ctx context.Context, st *store.Store, materialID string) (*catalogModel.DigitalContentRecord, error) {
	row, err := st.FindByKey(ctx, catalogModel.TableDigital, materialID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	rec := catalogModel.DigitalFromRow(*row)
	return &rec, nil
}

// FindClassroom data classroom untuk materi; nil kalau belum dibuat.
func FindClassroom(ctx context.Context, st *store.Store, materialID string) (*catalogModel.ClassroomRecord, error) {
	row, err := st.FindByKey(ctx, catalogModel.TableClassroom, materialID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	rec := catalogModel.ClassroomFromRow(*row)
	return &rec, nil
}

// TitleExistsForTeacher duplikat judul per guru dicek dengan string matching
// di sisi aplikasi (katalog tidak punya unique constraint).
func TitleExistsForTeacher(ctx context.Context, st *store.Store, teacherEmail, title string) (bool, error) {
	rows, err := st.FetchAll(ctx, catalogModel.TableMaterials)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		rec := catalogModel.MaterialFromRow(row)
		if strings.EqualFold(rec.TeacherEmail, teacherEmail) &&
			strings.EqualFold(strings.TrimSpace(rec.MaterialTitle), strings.TrimSpace(title)) {
			return true, nil
		}
	}
	return false, nil
}
