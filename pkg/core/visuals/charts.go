package visuals

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"decoy_report/pkg/core/ingest"
)

// Columns the trend chart requires beyond reported_at.
const (
	CountColumn        = "count"
	IndicatorIPColumn  = "indicator_ip"
	AttackedPortColumn = "Attacked_Port"
)

// CanTrendChart reports whether a sheet carries the fields the weekly
// attack-trend chart reads.
func CanTrendChart(s *ingest.Sheet) bool {
	return s.HasColumn(ReportedAtColumn) && s.HasColumn(CountColumn) && s.HasColumn(IndicatorIPColumn)
}

// CanTrafficChart reports whether a sheet carries the delimited port field
// the protocol chart reads.
func CanTrafficChart(s *ingest.Sheet) bool {
	return s.HasColumn(AttackedPortColumn)
}

// weekBucket holds one week's aggregates.
type weekBucket struct {
	label     string
	uniqueIPs map[string]bool
	totalHits float64
}

// TrendChart renders the weekly attack-trend chart for one sheet: unique
// attacker IP count and summed hit count per 7-day bucket of the observed
// analysis period. Returns an error when the sheet yields nothing
// plottable; the caller omits the chart in that case.
func TrendChart(s *ingest.Sheet, outputPath string) error {
	if !CanTrendChart(s) {
		return fmt.Errorf("sheet %s lacks trend chart columns", s.Name)
	}

	dateIdx := s.ColumnIndex(ReportedAtColumn)
	countIdx := s.ColumnIndex(CountColumn)
	ipIdx := s.ColumnIndex(IndicatorIPColumn)

	type point struct {
		at    time.Time
		ip    string
		count float64
	}
	var points []point
	for _, row := range s.Rows {
		at, ok := parseDate(row[dateIdx])
		if !ok {
			continue
		}
		count, err := strconv.ParseFloat(strings.TrimSpace(row[countIdx]), 64)
		if err != nil {
			count = 0
		}
		points = append(points, point{at: at, ip: row[ipIdx], count: count})
	}
	if len(points) == 0 {
		return fmt.Errorf("sheet %s has no datable rows for trend chart", s.Name)
	}

	start, end := points[0].at, points[0].at
	for _, p := range points[1:] {
		if p.at.Before(start) {
			start = p.at
		}
		if p.at.After(end) {
			end = p.at
		}
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	weeks := int(end.Sub(start).Hours()/(24*7)) + 1
	buckets := make([]weekBucket, weeks)
	for i := range buckets {
		buckets[i] = weekBucket{
			label:     fmt.Sprintf("Week %d", i+1),
			uniqueIPs: make(map[string]bool),
		}
	}
	for _, p := range points {
		idx := int(p.at.Sub(start).Hours() / (24 * 7))
		if idx < 0 || idx >= weeks {
			continue
		}
		if p.ip != "" {
			buckets[idx].uniqueIPs[p.ip] = true
		}
		buckets[idx].totalHits += p.count
	}

	xs := make([]float64, weeks)
	ipCounts := make([]float64, weeks)
	hitCounts := make([]float64, weeks)
	ticks := make([]chart.Tick, weeks)
	for i, b := range buckets {
		xs[i] = float64(i + 1)
		ipCounts[i] = float64(len(b.uniqueIPs))
		hitCounts[i] = b.totalHits
		ticks[i] = chart.Tick{Value: xs[i], Label: b.label}
	}

	graph := chart.Chart{
		Title:  "Attack Trends",
		Width:  1024,
		Height: 600,
		XAxis: chart.XAxis{
			Name:  "Weeks",
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: "Unique IP Count",
		},
		YAxisSecondary: chart.YAxis{
			Name: "Total Hit Count",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Unique IP Count",
				XValues: xs,
				YValues: ipCounts,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("00008b"),
					FillColor:   drawing.ColorFromHex("00008b").WithAlpha(160),
				},
			},
			chart.ContinuousSeries{
				Name:    "Total Hit Count",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: hitCounts,
				Style: chart.Style{
					StrokeColor: drawing.ColorRed,
					DotColor:    drawing.ColorRed,
					DotWidth:    4,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(outputPath, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

// NetworkTrafficChart renders the protocol distribution pie: the
// Attacked_Port field is split on "&&", numeric ports are counted, and the
// top 10 plus an aggregated Other slice are plotted.
func NetworkTrafficChart(s *ingest.Sheet, outputPath string) error {
	if !CanTrafficChart(s) {
		return fmt.Errorf("sheet %s lacks %s column", s.Name, AttackedPortColumn)
	}

	counts := make(map[int]int)
	for _, raw := range s.Column(AttackedPortColumn) {
		if raw == "" || raw == "NA" {
			continue
		}
		for _, part := range strings.Split(raw, "&&") {
			port, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			counts[port]++
		}
	}
	if len(counts) == 0 {
		return fmt.Errorf("sheet %s has no valid port values", s.Name)
	}

	type portCount struct {
		port  int
		count int
	}
	ranked := make([]portCount, 0, len(counts))
	for port, count := range counts {
		ranked = append(ranked, portCount{port, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].port < ranked[j].port
	})

	const topN = 10
	var values []chart.Value
	other := 0
	for i, pc := range ranked {
		if i < topN {
			values = append(values, chart.Value{
				Value: float64(pc.count),
				Label: strconv.Itoa(pc.port),
			})
			continue
		}
		other += pc.count
	}
	if other > 0 {
		values = append(values, chart.Value{Value: float64(other), Label: "Other"})
	}

	pie := chart.PieChart{
		Title:  "Network Traffic by Protocol",
		Width:  800,
		Height: 800,
		Values: values,
	}

	return renderPNG(outputPath, func(f *os.File) error {
		return pie.Render(chart.PNG, f)
	})
}

func renderPNG(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", path, err)
	}
	return nil
}
