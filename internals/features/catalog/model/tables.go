// file: internals/features/catalog/model/tables.go
package model

import (
	"materiku_backend/internals/configs"
	"materiku_backend/internals/features/catalog/store"
)

// Nama tabel logis katalog.
const (
	TableMaterials = "materials"
	TableDigital   = "digital"
	TableClassroom = "classroom"
	TableSchedule  = "schedule"
)

// Tables membangun registrasi keempat tabel katalog dari konfigurasi.
// Layout kolom mengikuti sheet yang sudah ada — jangan ubah urutan field
// tanpa migrasi sheet.
func Tables(cfg configs.CatalogSheetsConfig) map[string]store.TableSpec {
	return map[string]store.TableSpec{
		TableMaterials: {
			SpreadsheetID: cfg.MaterialsSpreadsheetID,
			Range:         "Sheet1!A:K",
			Schema: store.Schema{
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
		TableDigital: {
			SpreadsheetID: cfg.DigitalSpreadsheetID,
			Range:         "Sheet1!A:I",
			Schema: store.Schema{
				Fields: []string{
					"material_id", "room_url", "video_url", "podcast_url",
					"flashcard_url", "sq3r_report_url", "digital_status",
					"digital_error_log", "updated_at",
				},
				KeyField: "material_id",
				MinWidth: 8,
			},
		},
		TableClassroom: {
			SpreadsheetID: cfg.ClassroomSpreadsheetID,
			Range:         "Sheet1!A:F",
			Schema: store.Schema{
				Fields: []string{
					"material_id", "classroom_url", "gform_url",
					"sheetform_responses_url", "classroom_status", "updated_at",
				},
				KeyField: "material_id",
				MinWidth: 5,
			},
		},
		TableSchedule: {
			SpreadsheetID: cfg.ScheduleSpreadsheetID,
			Range:         "Sheet1!A:Q",
			Schema: store.Schema{
				Fields: []string{
					"date_release", "time_trigger", "material_id", "proctor_email",
					"classgroup_email", "announcement_template", "assignment_template",
					"classroom_id", "assignment_url", "announcement_status",
					"assignment_status", "last_process_log", "updated_at",
				},
				KeyField: "material_id",
				MinWidth: 12,
			},
		},
	}
}
