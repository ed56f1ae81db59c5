package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"materiku_backend/internals/features/catalog/store"
)

func TestMaterialFromRowDefaultsStatus(t *testing.T) {
	rec := MaterialFromRow(store.Row{Index: 1, Fields: map[string]string{
		"material_id":   "MTR1",
		"material_title": "Aljabar",
		"status":        "",
	}})

	assert.Equal(t, "MTR1", rec.MaterialID)
	assert.Equal(t, string(MaterialWaiting), rec.Status)
}

func TestScheduleFromRowKeepsRowIndex(t *testing.T) {
	rec := ScheduleFromRow(store.Row{Index: 7, Fields: map[string]string{
		"date_release":        "2024-06-02",
		"material_id":         "MTR9",
		"announcement_status": "",
		"assignment_status":   "FAILED",
	}})

	assert.Equal(t, 7, rec.RowIndex)
	assert.Equal(t, string(SchedulePending), rec.AnnouncementStatus)
	assert.Equal(t, "FAILED", rec.AssignmentStatus)
}

func TestTablesRegistersAllCatalogs(t *testing.T) {
	tables := Tables(testSheetsConfig())

	for _, name := range []string{TableMaterials, TableDigital, TableClassroom, TableSchedule} {
		spec, ok := tables[name]
		assert.True(t, ok, name)
		assert.NotEmpty(t, spec.Range, name)
		assert.NotEmpty(t, spec.Schema.Fields, name)
	}

	assert.True(t, tables[TableMaterials].Schema.HasHeader)
	assert.False(t, tables[TableDigital].Schema.HasHeader)
	assert.Equal(t, 12, tables[TableSchedule].Schema.MinWidth)
}
