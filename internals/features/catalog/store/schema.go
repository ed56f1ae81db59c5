// file: internals/features/catalog/store/schema.go
package store

import (
	"fmt"
	"strings"
)

// Schema memetakan kolom spreadsheet (posisi = offset kolom) ke nama field.
type Schema struct {
	// Fields urut sesuai kolom; offset 0 = kolom pertama range.
	Fields []string
	// KeyField: primary key logis (harus ada di Fields).
	KeyField string
	// MinWidth: jumlah sel minimum supaya baris dianggap terisi.
	// Baris lebih pendek di-skip (baris setengah-tertulis, bukan error).
	MinWidth int
	// HasHeader: baris pertama adalah header dan dibuang saat decode.
	HasHeader bool
}

func (s Schema) keyOffset() int {
	for i, f := range s.Fields {
		if f == s.KeyField {
			return i
		}
	}
	return -1
}

func (s Schema) hasField(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// decode: satu baris mentah → map field. Sel di luar panjang baris atau
// kosong jadi "" — caller tidak perlu peduli baris pendek.
func (s Schema) decode(raw []string) map[string]string {
	out := make(map[string]string, len(s.Fields))
	for i, f := range s.Fields {
		if i < len(raw) {
			out[f] = raw[i]
		} else {
			out[f] = ""
		}
	}
	return out
}

// encode: map field → baris mentah urut schema; field absen jadi "".
func (s Schema) encode(fields map[string]string) []string {
	row := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		row[i] = fields[f]
	}
	return row
}

// TableSpec: konfigurasi satu tabel logis di atas spreadsheet.
type TableSpec struct {
	SpreadsheetID string
	// Range alamat rectangular, contoh "Sheet1!A:J".
	Range  string
	Schema Schema
}

// rowRange menghasilkan alamat absolut satu baris, contoh "Sheet1!A3:J3".
// rawIndex zero-based terhadap hasil Get (termasuk header bila ada);
// service 1-based, jadi +1.
func (t TableSpec) rowRange(rawIndex int) (string, error) {
	sheet, start, end, err := splitRange(t.Range)
	if err != nil {
		return "", err
	}
	n := rawIndex + 1
	return fmt.Sprintf("%s!%s%d:%s%d", sheet, start, n, end, n), nil
}

func splitRange(rng string) (sheet, startCol, endCol string, err error) {
	bang := strings.Index(rng, "!")
	if bang < 0 {
		return "", "", "", fmt.Errorf("range %q: sheet name tidak ada", rng)
	}
	sheet = rng[:bang]
	cols := strings.SplitN(rng[bang+1:], ":", 2)
	if len(cols) != 2 || cols[0] == "" || cols[1] == "" {
		return "", "", "", fmt.Errorf("range %q: format kolom tidak valid", rng)
	}
	return sheet, stripDigits(cols[0]), stripDigits(cols[1]), nil
}

func stripDigits(col string) string {
	return strings.TrimRight(col, "0123456789")
}
