// file: internals/features/catalog/store/store.go
//
// Catalog store: lapisan repository tipis di atas service tabular eksternal
// (Google Sheets). Satu pola akses untuk keempat tabel katalog: fetch-all,
// find-by-key (scan linear), append, dan upsert-by-key (scan-then-write).
package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SheetsAPI: kontrak minimum terhadap service spreadsheet.
// Implementasi produksi ada di internals/helpers/google; test pakai fake in-memory.
type SheetsAPI interface {
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error
	Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error
}

// Row: satu record terdecode + posisi mentahnya di sheet (zero-based,
// termasuk header). Index dipakai untuk update in-place.
type Row struct {
	Index  int
	Fields map[string]string
}

// Store menyediakan akses bergaya tabel ke tabel-tabel katalog terdaftar.
//
// UpsertByKey adalah scan-then-write dan service eksternal tidak punya
// compare-and-swap, jadi dua upsert konkuren untuk key yang sama bisa saling
// menimpa atau menghasilkan baris ganda. Store menutup celah itu dengan
// serialisasi per (table, key); WithoutWriteGuard mematikannya.
type Store struct {
	api    SheetsAPI
	tables map[string]TableSpec
	guard  *keyLocks
	now    func() time.Time
}

type Option func(*Store)

// WithoutWriteGuard mematikan serialisasi scan+write per (table, key).
// Tanpa guard, upsert konkuren pada key sama bisa menghasilkan baris ganda.
func WithoutWriteGuard() Option {
	return func(s *Store) { s.guard = nil }
}

// WithClock mengganti sumber waktu untuk injeksi created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(api SheetsAPI, tables map[string]TableSpec, opts ...Option) *Store {
	s := &Store{
		api:    api,
		tables: tables,
		guard:  newKeyLocks(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) spec(table string) (TableSpec, error) {
	t, ok := s.tables[table]
	if !ok {
		return TableSpec{}, fmt.Errorf("catalog: tabel %q tidak terdaftar", table)
	}
	return t, nil
}

// FetchAll membaca seluruh range tabel. Tanpa data = hasil kosong, bukan
// error. Header dibuang, baris lebih pendek dari MinWidth di-skip, sel di
// luar schema diabaikan.
func (s *Store) FetchAll(ctx context.Context, table string) ([]Row, error) {
	t, err := s.spec(table)
	if err != nil {
		return nil, err
	}

	raw, err := s.api.Get(ctx, t.SpreadsheetID, t.Range)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: fetch: %w", table, err)
	}

	var rows []Row
	for i, r := range raw {
		if t.Schema.HasHeader && i == 0 {
			continue
		}
		if len(r) < t.Schema.MinWidth {
			// baris setengah-tertulis / hasil edit tangan — skip, jangan gagal
			continue
		}
		rows = append(rows, Row{Index: i, Fields: t.Schema.decode(r)})
	}
	return rows, nil
}

// FindByKey: scan linear, berhenti di match pertama (keunikan key diasumsikan,
// tidak diverifikasi). Key absen = (nil, nil), bukan error.
func (s *Store) FindByKey(ctx context.Context, table, key string) (*Row, error) {
	rows, err := s.FetchAll(ctx, table)
	if err != nil {
		return nil, err
	}
	t, _ := s.spec(table)
	for i := range rows {
		if rows[i].Fields[t.Schema.KeyField] == key {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// Append menulis record baru di akhir range. Tanpa cek duplikasi key —
// key ganda adalah kesalahan caller, bukan urusan lapisan ini.
func (s *Store) Append(ctx context.Context, table string, fields map[string]string) error {
	t, err := s.spec(table)
	if err != nil {
		return err
	}
	row := t.Schema.encode(s.stamp(t.Schema, fields, true))
	if err := s.api.Append(ctx, t.SpreadsheetID, t.Range, [][]string{row}); err != nil {
		return fmt.Errorf("catalog %s: append: %w", table, err)
	}
	return nil
}

// UpsertByKey: cari baris dengan key; ketemu → update in-place di alamat
// absolut barisnya, tidak → append. Baris ditulis utuh dari fields yang
// diberikan (last write wins), caller yang merge kalau perlu.
func (s *Store) UpsertByKey(ctx context.Context, table, key string, fields map[string]string) error {
	t, err := s.spec(table)
	if err != nil {
		return err
	}

	if s.guard != nil {
		unlock := s.guard.lock(table, key)
		defer unlock()
	}

	existing, err := s.FindByKey(ctx, table, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.Append(ctx, table, fields)
	}

	rng, err := t.rowRange(existing.Index)
	if err != nil {
		return fmt.Errorf("catalog %s: upsert %s: %w", table, key, err)
	}
	row := t.Schema.encode(s.stamp(t.Schema, fields, false))
	if err := s.api.Update(ctx, t.SpreadsheetID, rng, [][]string{row}); err != nil {
		return fmt.Errorf("catalog %s: upsert %s: %w", table, key, err)
	}
	return nil
}

// UpdateAt menulis ulang satu baris pada posisi mentah yang sudah diketahui
// (dipakai pembaruan status jadwal, yang mencatat posisi baris saat dibaca).
func (s *Store) UpdateAt(ctx context.Context, table string, rawIndex int, fields map[string]string) error {
	t, err := s.spec(table)
	if err != nil {
		return err
	}
	rng, err := t.rowRange(rawIndex)
	if err != nil {
		return fmt.Errorf("catalog %s: update baris %d: %w", table, rawIndex, err)
	}
	row := t.Schema.encode(s.stamp(t.Schema, fields, false))
	if err := s.api.Update(ctx, t.SpreadsheetID, rng, [][]string{row}); err != nil {
		return fmt.Errorf("catalog %s: update baris %d: %w", table, rawIndex, err)
	}
	return nil
}

// stamp menyuntikkan timestamp server saat tulis untuk tabel yang punya
// kolomnya: updated_at selalu, created_at hanya saat append (dan belum diisi).
func (s *Store) stamp(sc Schema, fields map[string]string, creating bool) map[string]string {
	out := make(map[string]string, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	ts := s.now().UTC().Format(time.RFC3339)
	if sc.hasField("updated_at") {
		out["updated_at"] = ts
	}
	if creating && sc.hasField("created_at") && out["created_at"] == "" {
		out["created_at"] = ts
	}
	return out
}

/* ===============================
   Per-key write guard
=================================*/

type keyLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{m: make(map[string]*sync.Mutex)}
}

func (k *keyLocks) lock(table, key string) func() {
	k.mu.Lock()
	id := table + "\x00" + key
	l, ok := k.m[id]
	if !ok {
		l = &sync.Mutex{}
		k.m[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
