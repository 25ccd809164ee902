package parse

import (
	"strings"
	"testing"
)

// =============================================================================
// TABLE EXTRACTOR
// =============================================================================

func TestExtractTables_WellFormedRegion(t *testing.T) {
	// Input: header + separator + two matching data rows, prose around it.
	// Expected: one table, both rows retained in original order, prose kept
	// without the table lines.
	text := strings.Join([]string{
		"Attackers concentrated on SSH.",
		"| IP | Sev |",
		"|---|---|",
		"| 1.2.3.4 | High |",
		"| 5.6.7.8 | Low |",
		"Closing remark.",
	}, "\n")

	clean, tables := ExtractTables(text)

	if clean != "Attackers concentrated on SSH.\nClosing remark." {
		t.Errorf("unexpected clean text: %q", clean)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tbl := tables[0]
	if len(tbl.Columns) != 2 || tbl.Columns[0] != "IP" || tbl.Columns[1] != "Sev" {
		t.Errorf("unexpected columns: %v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0]["IP"] != "1.2.3.4" || tbl.Rows[1]["Sev"] != "Low" {
		t.Errorf("rows out of order or mangled: %v", tbl.Rows)
	}
}

func TestExtractTables_RaggedRowDropped(t *testing.T) {
	// Exactly one row has a mismatched cell count; it is dropped, the rest
	// are retained. Silent drop, never an error.
	text := strings.Join([]string{
		"| IP | Sev |",
		"|---|---|",
		"| 1.2.3.4 | High |",
		"| 9.9.9.9 | High | extra |",
		"| 5.6.7.8 | Low |",
	}, "\n")

	_, tables := ExtractTables(text)

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Fatalf("expected ragged row dropped, got %d rows", len(tables[0].Rows))
	}
	if tables[0].Rows[1]["IP"] != "5.6.7.8" {
		t.Errorf("surviving rows reordered: %v", tables[0].Rows)
	}
}

func TestExtractTables_TwoLineRegionDiscarded(t *testing.T) {
	// Header + separator, no data rows: the region is below the 3-line
	// minimum and yields nothing, silently.
	text := "| IP | Sev |\n|---|---|"

	clean, tables := ExtractTables(text)

	if len(tables) != 0 {
		t.Fatalf("expected no tables from 2-line region, got %d", len(tables))
	}
	if clean != "" {
		t.Errorf("discarded region leaked into clean text: %q", clean)
	}
}

func TestExtractTables_HeaderOnlySurvivors(t *testing.T) {
	// Three physical lines, but every data row is ragged: no row survives
	// filtering, so the region yields absence rather than an empty table.
	text := strings.Join([]string{
		"| IP | Sev |",
		"|---|---|",
		"| only-one-cell |",
	}, "\n")

	_, tables := ExtractTables(text)

	if len(tables) != 0 {
		t.Fatalf("expected no table when no data row survives, got %d", len(tables))
	}
}

func TestExtractTables_MultipleTablesSplitByProseGap(t *testing.T) {
	// Two tables separated by a non-table line stay independent even though
	// their column sets match.
	text := strings.Join([]string{
		"| User | Svc |",
		"|---|---|",
		"| root | ssh |",
		"Most used passwords follow.",
		"| Pass | Svc |",
		"|---|---|",
		"| 123456 | ssh |",
	}, "\n")

	clean, tables := ExtractTables(text)

	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Columns[0] != "User" || tables[1].Columns[0] != "Pass" {
		t.Errorf("tables merged or reordered: %v / %v", tables[0].Columns, tables[1].Columns)
	}
	if clean != "Most used passwords follow." {
		t.Errorf("unexpected clean text: %q", clean)
	}
}

func TestExtractTables_AdjacentTablesMerge(t *testing.T) {
	// Documented edge case: two logically distinct tables with no gap
	// between them form one region, and the second header is absorbed as a
	// data row when its shape matches. Pinned, not fixed.
	text := strings.Join([]string{
		"| User | Svc |",
		"|---|---|",
		"| root | ssh |",
		"| Pass | Svc |",
		"|---|---|",
		"| 123456 | ssh |",
	}, "\n")

	_, tables := ExtractTables(text)

	if len(tables) != 1 {
		t.Fatalf("expected adjacent tables to merge into 1, got %d", len(tables))
	}
	if len(tables[0].Rows) != 3 {
		t.Errorf("expected 3 rows in merged table, got %d", len(tables[0].Rows))
	}
}

func TestExtractTables_BlankLinesRemovedFromProse(t *testing.T) {
	text := "First line.\n\n\n  Second line.  \n"

	clean, tables := ExtractTables(text)

	if len(tables) != 0 {
		t.Fatalf("unexpected tables: %d", len(tables))
	}
	if clean != "First line.\nSecond line." {
		t.Errorf("expected trimmed, blank-free prose, got %q", clean)
	}
}

func TestExtractTables_Idempotent(t *testing.T) {
	// Re-running the extractor on its own clean output yields the same
	// clean text and zero tables.
	text := strings.Join([]string{
		"Intro prose.",
		"| IP | Sev |",
		"|---|---|",
		"| 1.2.3.4 | High |",
		"",
		"Outro prose.",
	}, "\n")

	clean, _ := ExtractTables(text)
	again, tables := ExtractTables(clean)

	if tables != nil {
		t.Fatalf("expected no tables on second pass, got %d", len(tables))
	}
	if again != clean {
		t.Errorf("second pass changed clean text: %q vs %q", again, clean)
	}
}

func TestExtractTables_StraySeparatorDropped(t *testing.T) {
	// A separator line outside any region is table debris, not prose.
	text := "Prose.\n|-----|\nMore prose."

	clean, tables := ExtractTables(text)

	if len(tables) != 0 {
		t.Fatalf("unexpected tables: %d", len(tables))
	}
	if clean != "Prose.\nMore prose." {
		t.Errorf("stray separator leaked: %q", clean)
	}
}
