package visuals

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"decoy_report/pkg/core/ingest"
)

func logsSheet(dates ...string) ingest.Sheet {
	s := ingest.Sheet{
		Name:    "Decoy_Logs",
		Columns: []string{"reported_at", "count", "indicator_ip"},
	}
	for i, d := range dates {
		s.Rows = append(s.Rows, []string{d, "5", "10.0.0." + string(rune('0'+i%10))})
	}
	return s
}

func TestAnalysisPeriod_MinMax(t *testing.T) {
	sheets := []ingest.Sheet{logsSheet("2025-04-14", "2025-04-01", "2025-04-30")}

	start, end := AnalysisPeriod(sheets)

	if start.Format("2006-01-02") != "2025-04-01" {
		t.Errorf("start = %s", start)
	}
	if end.Format("2006-01-02") != "2025-04-30" {
		t.Errorf("end = %s", end)
	}
}

func TestAnalysisPeriod_FallbackToCurrentMonth(t *testing.T) {
	// No reported_at column anywhere: fall back to the current month.
	sheets := []ingest.Sheet{{Name: "Ports", Columns: []string{"Attacked_Port"}}}

	start, end := AnalysisPeriod(sheets)

	now := time.Now()
	if start.Day() != 1 || start.Month() != now.Month() {
		t.Errorf("fallback start = %s", start)
	}
	if end.Before(start) {
		t.Errorf("fallback end %s before start %s", end, start)
	}
}

func TestAnalysisPeriod_UnparseableDatesIgnored(t *testing.T) {
	sheets := []ingest.Sheet{logsSheet("not a date", "2025-04-10", "also junk")}

	start, end := AnalysisPeriod(sheets)

	if start.Format("2006-01-02") != "2025-04-10" || end.Format("2006-01-02") != "2025-04-10" {
		t.Errorf("period = %s .. %s", start, end)
	}
}

func TestTrendChart_RendersPNG(t *testing.T) {
	// Two weeks of data so both axes have something to plot.
	sheet := logsSheet(
		"2025-04-01", "2025-04-02", "2025-04-03",
		"2025-04-09", "2025-04-10", "2025-04-11",
	)
	path := filepath.Join(t.TempDir(), "trend.png")

	if err := TrendChart(&sheet, path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty chart file")
	}
}

func TestTrendChart_MissingColumns(t *testing.T) {
	sheet := ingest.Sheet{Name: "Ports", Columns: []string{"Attacked_Port"}}

	if err := TrendChart(&sheet, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatal("expected error for sheet without trend columns")
	}
}

func TestNetworkTrafficChart_RendersPNG(t *testing.T) {
	sheet := ingest.Sheet{
		Name:    "Ports",
		Columns: []string{"Attacked_Port"},
		Rows: [][]string{
			{"22 && 443"},
			{"22"},
			{"NA"},
			{"8080 && not-a-port"},
		},
	}
	path := filepath.Join(t.TempDir(), "traffic.png")

	if err := NetworkTrafficChart(&sheet, path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestNetworkTrafficChart_NoValidPorts(t *testing.T) {
	sheet := ingest.Sheet{
		Name:    "Ports",
		Columns: []string{"Attacked_Port"},
		Rows:    [][]string{{"NA"}, {""}},
	}

	if err := NetworkTrafficChart(&sheet, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatal("expected error when no port survives parsing")
	}
}
