package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpreadsheetIDFromURL(t *testing.T) {
	id, err := SpreadsheetIDFromURL("https://docs.google.com/spreadsheets/d/1AbC_dEf-123/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC_dEf-123", id)

	_, err = SpreadsheetIDFromURL("https://docs.google.com/document/d/xyz")
	assert.Error(t, err)

	_, err = SpreadsheetIDFromURL("")
	assert.Error(t, err)
}

func TestRowsToCSVEscapesSpecialCells(t *testing.T) {
	csv := rowsToCSV([][]string{
		{"Nama", "Nilai", "Catatan"},
		{"Budi", "80", `jawab "cepat", teliti`},
	})
	assert.Equal(t, "Nama,Nilai,Catatan\nBudi,80,\"jawab \"\"cepat\"\", teliti\"\n", csv)
}
