// file: internals/helpers/google/sheets_client.go
package google

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient membungkus Sheets API v4 di balik kontrak get/append/update
// yang dipakai catalog store.
type SheetsClient struct {
	svc *sheets.Service
}

func NewSheetsClient(ctx context.Context, credentialsFile string) (*SheetsClient, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: init service: %w", err)
	}
	return &SheetsClient{svc: svc}, nil
}

func (s *SheetsClient) Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get %s: %w", readRange, err)
	}
	return toStringRows(resp.Values), nil
}

func (s *SheetsClient) Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error {
	vr := &sheets.ValueRange{Values: toAnyRows(rows)}
	_, err := s.svc.Spreadsheets.Values.Append(spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", writeRange, err)
	}
	return nil
}

func (s *SheetsClient) Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]string) error {
	vr := &sheets.ValueRange{Values: toAnyRows(rows)}
	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", writeRange, err)
	}
	return nil
}

func toStringRows(values [][]interface{}) [][]string {
	out := make([][]string, 0, len(values))
	for _, row := range values {
		r := make([]string, len(row))
		for i, cell := range row {
			if cell == nil {
				continue
			}
			r[i] = fmt.Sprint(cell)
		}
		out = append(out, r)
	}
	return out
}

func toAnyRows(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		r := make([]interface{}, len(row))
		for j, cell := range row {
			r[j] = cell
		}
		out[i] = r
	}
	return out
}
