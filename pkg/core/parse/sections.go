package parse

import (
	"log"
	"strconv"
	"strings"

	"decoy_report/pkg/core/catalog"
)

// =============================================================================
// SECTION SPLITTER - Partition raw model output against the section catalog
// =============================================================================

// The splitter matches each non-blank line against a small explicit rule
// table of accepted header surface forms, in documented priority order. The
// rules mirror the numbering the prompt instructs the model to emit, plus
// two looser forms tolerating models that drop the ordinal or prepend extra
// words. Catalog order is the tie-break when more than one name could match
// a line.

// matchHeader returns the canonical section name a line announces, or "".
// The suffix form is intentionally permissive and can misfire on prose that
// happens to end with a catalog name; such matches are logged so truncation
// is auditable.
func matchHeader(line string, names []string) string {
	for _, name := range names {
		for n := 1; n <= 9; n++ {
			ordinal := strconv.Itoa(n) + ". "
			if strings.HasPrefix(line, ordinal+name) {
				return name
			}
			if strings.HasPrefix(line, ordinal+"**"+name+"**") {
				return name
			}
		}
		if line == name {
			return name
		}
		if strings.HasSuffix(line, name) {
			log.Printf("[SectionSplitter] suffix match for %q on line %q", name, line)
			return name
		}
	}
	return ""
}

// SplitReport partitions raw report text into one Section per catalog
// entry. Lines before the first detected header are discarded. Each
// section's accumulated content is handed to the Table Extractor, so the
// returned prose carries no table markup. Every catalog entry is present in
// the result: entries whose header was never detected, or that had no
// content under it, receive placeholder prose and no tables.
func SplitReport(text string) *Report {
	names := catalog.Names()
	report := &Report{
		Order:    names,
		Sections: make(map[string]*Section, len(names)),
	}

	var (
		current string
		buffer  []string
	)

	finalize := func() {
		if current == "" || len(buffer) == 0 {
			return
		}
		raw := strings.TrimSpace(strings.Join(buffer, "\n"))
		prose, tables := ExtractTables(raw)
		report.Sections[current] = &Section{
			Name:   current,
			Prose:  prose,
			Tables: tables,
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			// Blank lines are preserved as empty buffer entries once a
			// section has content, so table-region gaps survive.
			if len(buffer) > 0 {
				buffer = append(buffer, "")
			}
			continue
		}

		if name := matchHeader(line, names); name != "" {
			finalize()
			current = name
			buffer = nil
			continue
		}

		if current != "" {
			buffer = append(buffer, line)
		}
	}
	finalize()

	for _, name := range names {
		if _, ok := report.Sections[name]; !ok {
			report.Sections[name] = &Section{
				Name:        name,
				Prose:       catalog.Placeholder(name),
				Placeholder: true,
			}
		}
	}
	return report
}
