// Package ingest reads honeypot telemetry out of an xlsx workbook. Every
// sheet is one named telemetry source; the first row carries the column
// names and everything below it is data.
package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one rectangular telemetry source. Rows are kept as strings in
// column order; downstream consumers (digest, charts) decide how to
// interpret individual fields.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// HasColumn reports whether the sheet carries the named column.
func (s *Sheet) HasColumn(name string) bool {
	return s.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of the named column, or -1.
func (s *Sheet) ColumnIndex(name string) int {
	for i, c := range s.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column, in row order. Missing
// column yields nil.
func (s *Sheet) Column(name string) []string {
	idx := s.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = row[idx]
	}
	return out
}

// ReadWorkbook loads every sheet of the workbook at path, in workbook
// order. Sheets without a header row are skipped. Data rows are padded to
// the header width so row access is always rectangular.
func ReadWorkbook(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}

		columns := rows[0]
		data := make([][]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			// excelize omits trailing empty cells.
			if len(row) < len(columns) {
				padded := make([]string, len(columns))
				copy(padded, row)
				row = padded
			} else if len(row) > len(columns) {
				row = row[:len(columns)]
			}
			data = append(data, row)
		}
		sheets = append(sheets, Sheet{Name: name, Columns: columns, Rows: data})
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no usable sheets", path)
	}
	return sheets, nil
}
