package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"bridal-studio-backend/config"
)

// Mirror is the positional interface over the spreadsheet replica. Row
// indices are 0-based over data rows; a physical row delete shifts every
// later row up, which the bridge deliberately does not compensate for.
//
// An empty sheet name addresses the configured default sheet.
type Mirror interface {
	// AppendRow appends one row and returns its assigned row index.
	AppendRow(ctx context.Context, sheet string, row []interface{}) (int, error)
	// UpdateRow rewrites the mutable columns (C onward) of an existing row,
	// leaving the entry date/time columns untouched. Out-of-range rows are
	// silently skipped.
	UpdateRow(ctx context.Context, sheet string, rowIndex int, row []interface{}) error
	// DeleteRow physically removes a row. Out-of-range rows are a no-op.
	DeleteRow(ctx context.Context, sheet string, rowIndex int) error
}

// SheetsMirror talks to the Google Sheets API with service-account
// credentials supplied base64-encoded in the environment.
type SheetsMirror struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	startRow      int
}

func NewSheetsMirror(ctx context.Context, cfg config.SheetsConfig) (*SheetsMirror, error) {
	creds, err := base64.StdEncoding.DecodeString(cfg.CredentialsB64)
	if err != nil {
		return nil, fmt.Errorf("decode sheets credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	startRow := cfg.StartRow
	if startRow < 2 {
		startRow = 2
	}

	return &SheetsMirror{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		startRow:      startRow,
	}, nil
}

func (m *SheetsMirror) resolveSheet(sheet string) string {
	if sheet == "" {
		return m.sheetName
	}
	return sheet
}

// physicalRow maps a 0-based data row index to the sheet's 1-based row
// numbering, with the header block occupying everything before startRow.
func (m *SheetsMirror) physicalRow(rowIndex int) int {
	return rowIndex + m.startRow
}

func (m *SheetsMirror) AppendRow(ctx context.Context, sheet string, row []interface{}) (int, error) {
	name := m.resolveSheet(sheet)
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}

	resp, err := m.svc.Spreadsheets.Values.Append(m.spreadsheetID, name+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", name, err)
	}
	if resp.Updates == nil || resp.Updates.UpdatedRange == "" {
		return 0, fmt.Errorf("append to %s: response missing updated range", name)
	}

	phys, err := firstRowOfRange(resp.Updates.UpdatedRange)
	if err != nil {
		return 0, fmt.Errorf("append to %s: %w", name, err)
	}
	return phys - m.startRow, nil
}

func (m *SheetsMirror) UpdateRow(ctx context.Context, sheet string, rowIndex int, row []interface{}) error {
	if rowIndex < 0 {
		return nil
	}
	name := m.resolveSheet(sheet)
	phys := m.physicalRow(rowIndex)

	// Skip rows past the end of the data, matching the mirror's
	// bounds-check-then-ignore behavior on update.
	probe := fmt.Sprintf("%s!A%d:A%d", name, phys, phys)
	existing, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, probe).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("probe row %d of %s: %w", phys, name, err)
	}
	if len(existing.Values) == 0 {
		log.Printf("mirror: row %d of %s does not exist, skipping update", phys, name)
		return nil
	}

	rng := fmt.Sprintf("%s!C%d", name, phys)
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	if _, err := m.svc.Spreadsheets.Values.Update(m.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("update row %d of %s: %w", phys, name, err)
	}
	return nil
}

func (m *SheetsMirror) DeleteRow(ctx context.Context, sheet string, rowIndex int) error {
	if rowIndex < 0 {
		return nil
	}
	name := m.resolveSheet(sheet)

	props, err := m.sheetProperties(ctx, name)
	if err != nil {
		return err
	}

	phys := m.physicalRow(rowIndex)
	if props.GridProperties != nil && int64(phys) > props.GridProperties.RowCount {
		return nil
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    props.SheetId,
					Dimension:  "ROWS",
					StartIndex: int64(phys - 1),
					EndIndex:   int64(phys),
				},
			},
		}},
	}
	if _, err := m.svc.Spreadsheets.BatchUpdate(m.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d of %s: %w", phys, name, err)
	}
	return nil
}

// sheetProperties resolves a sheet by title, falling back to the first sheet
// when the configured name does not exist.
func (m *SheetsMirror) sheetProperties(ctx context.Context, name string) (*sheets.SheetProperties, error) {
	ss, err := m.svc.Spreadsheets.Get(m.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("load spreadsheet: %w", err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == name {
			return s.Properties, nil
		}
	}
	if len(ss.Sheets) > 0 && ss.Sheets[0].Properties != nil {
		log.Printf("mirror: sheet %q not found, using first sheet %q", name, ss.Sheets[0].Properties.Title)
		return ss.Sheets[0].Properties, nil
	}
	return nil, fmt.Errorf("spreadsheet %s has no sheets", m.spreadsheetID)
}

// firstRowOfRange extracts the first row number from an A1 range like
// "Customers!A5:H5".
func firstRowOfRange(r string) (int, error) {
	if i := strings.LastIndex(r, "!"); i >= 0 {
		r = r[i+1:]
	}
	if i := strings.Index(r, ":"); i >= 0 {
		r = r[:i]
	}
	digits := strings.TrimLeftFunc(r, func(c rune) bool { return c < '0' || c > '9' })
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("unexpected range %q", r)
	}
	return n, nil
}
