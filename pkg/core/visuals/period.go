// Package visuals derives the analysis period from the telemetry and
// renders the report charts. Chart output is an opaque PNG path consumed by
// the document assembler; a source that lacks the fields a chart needs
// simply produces no chart.
package visuals

import (
	"log"
	"time"

	"decoy_report/pkg/core/ingest"
)

// ReportedAtColumn is the timestamp field the period extraction and the
// trend chart read.
const ReportedAtColumn = "reported_at"

// dateLayouts covers the timestamp shapes spreadsheet cells tend to come
// back as.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/2006 15:04",
	"1/2/2006",
	"02/01/2006",
}

// parseDate tries each known layout in order.
func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AnalysisPeriod scans every sheet's reported_at column and returns the
// earliest and latest timestamps observed. When no sheet yields a valid
// date the current month is used as the fallback window.
func AnalysisPeriod(sheets []ingest.Sheet) (start, end time.Time) {
	var dates []time.Time
	for _, sheet := range sheets {
		values := sheet.Column(ReportedAtColumn)
		if values == nil {
			continue
		}
		found := 0
		for _, v := range values {
			if v == "" {
				continue
			}
			if t, ok := parseDate(v); ok {
				dates = append(dates, t)
				found++
			}
		}
		if found > 0 {
			log.Printf("[Visuals] found %d dates in %s.%s", found, sheet.Name, ReportedAtColumn)
		}
	}

	if len(dates) == 0 {
		log.Printf("[Visuals] no valid dates found in %s columns, using current month", ReportedAtColumn)
		now := time.Now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	}

	start, end = dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end
}
