package prompt

import (
	"fmt"
	"strings"
	"testing"

	"decoy_report/pkg/core/catalog"
	"decoy_report/pkg/core/ingest"
)

func makeSheet(name string, rows int) ingest.Sheet {
	s := ingest.Sheet{
		Name:    name,
		Columns: []string{"reported_at", "count", "indicator_ip"},
	}
	for i := 0; i < rows; i++ {
		s.Rows = append(s.Rows, []string{
			fmt.Sprintf("2025-04-%02d", i%28+1),
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("10.0.0.%d", i),
		})
	}
	return s
}

func TestBuildDigest_RowCapAndOrder(t *testing.T) {
	// 40 input rows: only the first 15 appear, in their existing order,
	// 1-based indexed under the sheet's labeled header.
	digest := BuildDigest([]ingest.Sheet{makeSheet("Decoy_Logs", 40)})

	if !strings.Contains(digest, "--- Decoy_Logs ---") {
		t.Error("missing sheet header")
	}
	if !strings.Contains(digest, "1. {reported_at: 2025-04-01, count: 1, indicator_ip: 10.0.0.0}") {
		t.Errorf("first row not rendered as expected:\n%s", digest)
	}
	if !strings.Contains(digest, "15. {") {
		t.Error("row 15 missing")
	}
	if strings.Contains(digest, "16. {") {
		t.Error("digest exceeded the row cap")
	}
}

func TestBuildDigest_Deterministic(t *testing.T) {
	sheets := []ingest.Sheet{makeSheet("A", 3), makeSheet("B", 3)}

	first := BuildDigest(sheets)
	for i := 0; i < 5; i++ {
		if got := BuildDigest(sheets); got != first {
			t.Fatal("digest not deterministic across runs")
		}
	}
	if strings.Index(first, "--- A ---") > strings.Index(first, "--- B ---") {
		t.Error("sheets not serialized in input order")
	}
}

func TestBuildReportPrompt_EnumeratesCatalog(t *testing.T) {
	// The instruction must name every catalog section with its ordinal:
	// these are exactly the header forms the splitter recognizes on
	// parse-back.
	user, system, err := BuildReportPrompt("Decoy Labs", []ingest.Sheet{makeSheet("Decoy_Logs", 2)})
	if err != nil {
		t.Fatal(err)
	}

	if system == "" {
		t.Error("system prompt empty")
	}
	if !strings.Contains(user, "cybersecurity analyst working for Decoy Labs") {
		t.Error("persona missing from prompt")
	}
	if !strings.Contains(user, "--- Decoy_Logs ---") {
		t.Error("digest not embedded")
	}
	for _, e := range catalog.Sections() {
		header := fmt.Sprintf("%d. %s", e.Ordinal, e.Name)
		if !strings.Contains(user, header) {
			t.Errorf("prompt missing section header %q", header)
		}
	}
}

func TestRegistry_OverrideWins(t *testing.T) {
	reg := Get()
	orig, err := reg.GetTemplate(ReportPromptID)
	if err != nil {
		t.Fatal(err)
	}
	defer reg.Register(orig)

	override := &Template{
		ID:             ReportPromptID,
		SystemPrompt:   "override system",
		UserPromptTmpl: "digest only: {{.Digest}}",
	}
	if err := reg.Register(override); err != nil {
		t.Fatal(err)
	}

	user, system, err := BuildReportPrompt("X", []ingest.Sheet{makeSheet("S", 1)})
	if err != nil {
		t.Fatal(err)
	}
	if system != "override system" {
		t.Errorf("override system prompt not used: %q", system)
	}
	if !strings.HasPrefix(user, "digest only:") {
		t.Errorf("override template not used: %q", user)
	}
}
