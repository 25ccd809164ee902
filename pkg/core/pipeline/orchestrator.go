// Package pipeline wires the full report-generation flow: workbook
// ingestion, chart rendering, prompt construction, the single model call,
// parse-back against the section catalog, and document assembly. Everything
// downstream of ingestion degrades instead of aborting: the run always
// writes a document.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"decoy_report/pkg/core/catalog"
	"decoy_report/pkg/core/config"
	"decoy_report/pkg/core/docgen"
	"decoy_report/pkg/core/ingest"
	"decoy_report/pkg/core/llm"
	"decoy_report/pkg/core/parse"
	"decoy_report/pkg/core/prompt"
	"decoy_report/pkg/core/utils"
	"decoy_report/pkg/core/visuals"
)

// ModelFailureSentinel substitutes for the entire raw report text when the
// model call fails. It matches no section header, so every section falls
// back to its placeholder and the document is still produced.
const ModelFailureSentinel = "[Error: Failed to generate report.]"

// DocumentName is the output file written into the configured output
// directory.
const DocumentName = "generated_report.docx"

// SectionStatus is the per-section degradation signal exposed to callers:
// whether the section fell back to placeholder prose, and what content it
// ended up carrying.
type SectionStatus struct {
	Name        string
	Placeholder bool
	TableCount  int
	ChartPath   string
}

// Result summarizes one completed run.
type Result struct {
	RunID         string
	DocumentPath  string
	AnalysisStart time.Time
	AnalysisEnd   time.Time
	ModelFailed   bool
	Sections      []SectionStatus
}

// Degraded reports whether any section carries placeholder prose.
func (r *Result) Degraded() bool {
	for _, s := range r.Sections {
		if s.Placeholder {
			return true
		}
	}
	return false
}

// Orchestrator runs the pipeline with an injected model provider, so tests
// and callers can swap backends freely.
type Orchestrator struct {
	cfg      config.Config
	provider llm.Provider
	log      *logrus.Logger
}

// NewOrchestrator creates an orchestrator for one or more runs.
func NewOrchestrator(cfg config.Config, provider llm.Provider, log *logrus.Logger) *Orchestrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{cfg: cfg, provider: provider, log: log}
}

// Run executes the full pipeline once. The only fatal paths are an
// unreadable workbook, an uncreatable output directory, and a failed
// document write; a failed model call degrades to placeholder content.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := o.log.WithField("run_id", runID)

	log.Info("loading honeypot data from all sheets")
	sheets, err := ingest.ReadWorkbook(o.cfg.WorkbookPath)
	if err != nil {
		return nil, fmt.Errorf("ingestion failed: %w", err)
	}

	if err := os.MkdirAll(o.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output dir: %w", err)
	}

	log.Info("extracting analysis period from data")
	analysisStart, analysisEnd := visuals.AnalysisPeriod(sheets)

	log.Info("generating charts")
	trendCharts, trafficCharts := o.renderCharts(ctx, sheets, log)

	if o.cfg.PromptDir != "" {
		if err := prompt.LoadFromDirectory(o.cfg.PromptDir); err != nil {
			log.WithError(err).Warn("prompt overrides not loaded, using built-in template")
		}
	}

	log.Info("generating AI analysis")
	rawReport, modelFailed := o.callModel(ctx, sheets, log)

	log.Info("processing report sections")
	report := parse.SplitReport(rawReport)
	for _, name := range report.Degraded() {
		log.WithField("section", name).Warn("no content found, placeholder substituted")
	}

	images := o.bindCharts(report, sheets, trendCharts, trafficCharts)

	log.Info("detecting organization info")
	vendorLogoName := ""
	if o.cfg.VendorLogo != "" {
		vendorLogoName = filepath.Base(o.cfg.VendorLogo)
	}
	orgName, orgLogo := docgen.OrganizationInfo(o.cfg.LogoPath, vendorLogoName)

	meta := docgen.Metadata{
		Vendor:         o.cfg.VendorName,
		VendorLogoPath: o.cfg.VendorLogo,
		OrgName:        orgName,
		OrgLogoPath:    orgLogo,
		AnalysisStart:  analysisStart,
		AnalysisEnd:    analysisEnd,
		IssuedAt:       time.Now(),
	}

	docPath := filepath.Join(o.cfg.OutputDir, DocumentName)
	log.WithField("path", docPath).Info("writing report document")
	if err := docgen.Generate(report, images, meta, docPath); err != nil {
		return nil, fmt.Errorf("document assembly failed: %w", err)
	}

	result := &Result{
		RunID:         runID,
		DocumentPath:  docPath,
		AnalysisStart: analysisStart,
		AnalysisEnd:   analysisEnd,
		ModelFailed:   modelFailed,
	}
	for _, name := range report.Order {
		s := report.Sections[name]
		result.Sections = append(result.Sections, SectionStatus{
			Name:        name,
			Placeholder: s.Placeholder,
			TableCount:  len(s.Tables),
			ChartPath:   images[name],
		})
	}

	log.WithField("document", docPath).Info("report saved")
	return result, nil
}

// renderCharts renders per-sheet charts in parallel. Sources are
// independent and outputs are keyed by sheet name, so no ordering is needed
// beyond all tasks completing before assembly. Chart failures only cost the
// chart.
func (o *Orchestrator) renderCharts(ctx context.Context, sheets []ingest.Sheet, log *logrus.Entry) (trend, traffic map[string]string) {
	trend = make(map[string]string)
	traffic = make(map[string]string)

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)

	for i := range sheets {
		sheet := &sheets[i]
		g.Go(func() error {
			if visuals.CanTrendChart(sheet) {
				path := filepath.Join(o.cfg.OutputDir, sheet.Name+"_trend_chart.png")
				if err := visuals.TrendChart(sheet, path); err != nil {
					log.WithError(err).WithField("sheet", sheet.Name).Warn("trend chart skipped")
				} else {
					mu.Lock()
					trend[sheet.Name] = path
					mu.Unlock()
				}
			}
			if visuals.CanTrafficChart(sheet) {
				path := filepath.Join(o.cfg.OutputDir, sheet.Name+"_network_traffic_chart.png")
				if err := visuals.NetworkTrafficChart(sheet, path); err != nil {
					log.WithError(err).WithField("sheet", sheet.Name).Warn("traffic chart skipped")
				} else {
					mu.Lock()
					traffic[sheet.Name] = path
					mu.Unlock()
				}
			}
			return nil
		})
	}
	g.Wait()
	return trend, traffic
}

// callModel builds the prompt and performs the single synchronous model
// call under the configured timeout. Any failure substitutes the sentinel
// text; the run never aborts because the model call failed.
func (o *Orchestrator) callModel(ctx context.Context, sheets []ingest.Sheet, log *logrus.Entry) (string, bool) {
	userPrompt, systemPrompt, err := prompt.BuildReportPrompt(o.cfg.VendorName, sheets)
	if err != nil {
		log.WithError(err).Warn("prompt construction failed")
		return ModelFailureSentinel, true
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
	defer cancel()

	raw, err := o.provider.GenerateResponse(callCtx, userPrompt, systemPrompt, map[string]interface{}{
		"model": o.cfg.Model,
	})
	if err != nil {
		log.WithError(err).Warn("model call failed, report will carry placeholder content")
		return ModelFailureSentinel, true
	}

	raw = utils.CleanModelOutput(raw)
	if !utils.LooksLikeMarkdown(raw) {
		log.Warn("model response failed markdown sanity check")
	}
	return raw, false
}

// bindCharts assigns the first available chart of each kind to the catalog
// sections bound to that kind. Sheets are scanned in workbook order so the
// choice is deterministic.
func (o *Orchestrator) bindCharts(report *parse.Report, sheets []ingest.Sheet, trend, traffic map[string]string) map[string]string {
	first := func(paths map[string]string) string {
		for _, sheet := range sheets {
			if p, ok := paths[sheet.Name]; ok {
				return p
			}
		}
		return ""
	}
	trendPath := first(trend)
	trafficPath := first(traffic)

	images := make(map[string]string)
	for _, name := range report.Order {
		entry, ok := catalog.Lookup(name)
		if !ok {
			continue
		}
		switch entry.Chart {
		case catalog.ChartTrend:
			images[name] = trendPath
		case catalog.ChartProtocol:
			images[name] = trafficPath
		}
	}
	return images
}
