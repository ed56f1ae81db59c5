package model

import "materiku_backend/internals/configs"

func testSheetsConfig() configs.CatalogSheetsConfig {
	return configs.CatalogSheetsConfig{
		MaterialsSpreadsheetID: "sheet-materials",
		DigitalSpreadsheetID:   "sheet-digital",
		ClassroomSpreadsheetID: "sheet-classroom",
		ScheduleSpreadsheetID:  "sheet-schedule",
	}
}
