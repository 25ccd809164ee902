package parse

import (
	"log"
	"strings"
)

// =============================================================================
// TABLE EXTRACTOR - Recover pipe tables from a block of model-authored text
// =============================================================================

// The extractor is deliberately a handful of line checks, not a markdown
// parser: the input is the narrow pipe dialect the prompt asks the model to
// emit, and every malformed shape recovers by silent drop rather than error.

// isTableRow reports whether a trimmed line is a table-row candidate: it
// starts and ends with the delimiter and has at least one more strictly
// inside.
func isTableRow(line string) bool {
	if len(line) < 3 {
		return false
	}
	if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
		return false
	}
	return strings.Contains(line[1:len(line)-1], "|")
}

// isSeparator reports whether a trimmed line is a separator candidate: it
// starts with the delimiter and its content is composed of dash/equals runs
// (plus delimiters, alignment colons and spacing).
func isSeparator(line string) bool {
	if !strings.HasPrefix(line, "|") {
		return false
	}
	if !strings.Contains(line, "---") && !strings.Contains(line, "====") {
		return false
	}
	for _, r := range line {
		switch r {
		case '|', '-', '=', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// splitCells splits a row candidate on the delimiter; the leading and
// trailing delimiters are not themselves cells.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// parseRegion decomposes a table region into a Table. The first line is the
// header; separator candidates anywhere after it are skipped; a data row is
// accepted only if its cell count exactly equals the header's. Returns nil
// when no data row survives: a header with nothing under it is absence, not
// an empty table.
func parseRegion(lines []string) *Table {
	if len(lines) < 3 {
		return nil
	}

	header := lines[0]
	if !isTableRow(header) {
		return nil
	}
	columns := splitCells(header)

	var rows []Record
	dropped := 0
	for _, line := range lines[1:] {
		if isSeparator(line) {
			continue
		}
		if !isTableRow(line) {
			continue
		}
		cells := splitCells(line)
		if len(cells) != len(columns) {
			dropped++
			continue
		}
		rec := make(Record, len(columns))
		for i, col := range columns {
			rec[col] = cells[i]
		}
		rows = append(rows, rec)
	}

	if dropped > 0 {
		log.Printf("[TableExtractor] dropped %d ragged row(s) under header %q", dropped, header)
	}
	if len(rows) == 0 {
		return nil
	}
	return &Table{Columns: columns, Rows: rows}
}

// ExtractTables scans text line by line, removes every recognized table
// region, and returns the remaining prose together with the tables in order
// of appearance. Non-table lines come back trimmed with blank lines removed,
// so prose reads as a single block. Running the extractor again on its own
// clean output is a no-op.
func ExtractTables(text string) (string, []Table) {
	var (
		cleanLines  []string
		regionLines []string
		tables      []Table
		inTable     bool
	)

	flush := func() {
		if len(regionLines) >= 3 {
			if t := parseRegion(regionLines); t != nil {
				tables = append(tables, *t)
			}
		}
		regionLines = nil
		inTable = false
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case isTableRow(line):
			if !inTable {
				inTable = true
				regionLines = nil
			}
			regionLines = append(regionLines, line)
		case isSeparator(line):
			// Extends a region in progress; a stray separator outside any
			// region is dropped from the clean text as table debris.
			if inTable {
				regionLines = append(regionLines, line)
			}
		default:
			if inTable {
				flush()
			}
			if line != "" {
				cleanLines = append(cleanLines, line)
			}
		}
	}
	if inTable {
		flush()
	}

	return strings.Join(cleanLines, "\n"), tables
}
