package service

import (
	"context"
	"time"

	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
)

// Jadwal memakai tanggal lokal sekolah, bukan UTC.
var jakartaLoc = mustLoadLocation("Asia/Jakarta")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

// ListSchedules semua baris jadwal, dengan row_index terekam.
func ListSchedules(ctx context.Context, st *store.Store) ([]catalogModel.ScheduleRecord, error) {
	rows, err := st.FetchAll(ctx, catalogModel.TableSchedule)
	if err != nil {
		return nil, err
	}
	records := make([]catalogModel.ScheduleRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, catalogModel.ScheduleFromRow(row))
	}
	return records, nil
}

// TomorrowSchedules baris jadwal dengan date_release = besok (WIB).
// Dipakai n8n untuk menyiapkan pengumuman dan tugas H-1.
func TomorrowSchedules(ctx context.Context, st *store.Store, now time.Time) ([]catalogModel.ScheduleRecord, error) {
	all, err := ListSchedules(ctx, st)
	if err != nil {
		return nil, err
	}
	tomorrow := now.In(jakartaLoc).AddDate(0, 0, 1).Format("2006-01-02")

	matched := make([]catalogModel.ScheduleRecord, 0)
	for _, rec := range all {
		if rec.DateRelease == tomorrow {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// AppendSchedule menambah baris jadwal baru dengan status awal PENDING.
func AppendSchedule(ctx context.Context, st *store.Store, rec catalogModel.ScheduleRecord) error {
	if rec.AnnouncementStatus == "" {
		rec.AnnouncementStatus = string(catalogModel.SchedulePending)
	}
	if rec.AssignmentStatus == "" {
		rec.AssignmentStatus = string(catalogModel.SchedulePending)
	}
	return st.Append(ctx, catalogModel.TableSchedule, rec.ToFields())
}
