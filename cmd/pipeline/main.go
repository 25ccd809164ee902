package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"decoy_report/pkg/core/config"
	"decoy_report/pkg/core/llm"
	"decoy_report/pkg/core/pipeline"
)

func newProvider(cfg config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "openrouter", "":
		return &llm.OpenRouterProvider{Model: cfg.Model}, nil
	case "gemini":
		return &llm.GeminiProvider{Model: cfg.Model}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want openrouter or gemini)", cfg.Provider)
	}
}

func main() {
	configPath := flag.String("config", "report.yaml", "optional YAML run configuration")
	workbook := flag.String("workbook", "", "override workbook path")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// Credentials come from the environment; .env is a convenience.
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, assuming environment variables are set")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if *workbook != "" {
		cfg.WorkbookPath = *workbook
	}

	provider, err := newProvider(cfg)
	if err != nil {
		log.WithError(err).Fatal("provider selection failed")
	}

	orch := pipeline.NewOrchestrator(cfg, provider, log)
	result, err := orch.Run(context.Background())
	if err != nil {
		log.WithError(err).Fatal("pipeline run failed")
	}

	if result.ModelFailed {
		log.Warn("model call failed, document carries placeholder content only")
	}
	for _, s := range result.Sections {
		if s.Placeholder {
			log.WithField("section", s.Name).Warn("section degraded to placeholder")
		}
	}
	// A degraded run is still a successful run by design.
	log.WithField("document", result.DocumentPath).Info("report generation complete")
}
