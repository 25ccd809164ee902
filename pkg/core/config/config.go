// Package config assembles the run configuration from defaults, an
// optional YAML file, and environment variables (highest precedence).
// Credentials stay in the environment; providers read their own API keys at
// call time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is everything one report-generation run needs besides
// credentials.
type Config struct {
	WorkbookPath   string        `yaml:"workbook_path"`
	OutputDir      string        `yaml:"output_dir"`
	LogoPath       string        `yaml:"logo_path"`   // file or folder with the customer logo
	VendorName     string        `yaml:"vendor_name"` // persona + branding on the document
	VendorLogo     string        `yaml:"vendor_logo"` // vendor's own logo file
	Provider       string        `yaml:"provider"`    // "openrouter" or "gemini"
	Model          string        `yaml:"model"`       // provider-specific model name
	PromptDir      string        `yaml:"prompt_dir"`  // optional template override directory
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	RequestTimeout time.Duration `yaml:"-"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		WorkbookPath:   "data/Honeypot_Dummy_Data.xlsx",
		OutputDir:      "output",
		LogoPath:       "logos",
		VendorName:     "Decoy Labs",
		Provider:       "openrouter",
		Model:          "openai/gpt-4o-mini",
		TimeoutSeconds: 120,
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if it exists), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Optional file; defaults and env carry the run.
		default:
			return cfg, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 120
	}
	cfg.RequestTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set("REPORT_WORKBOOK", &cfg.WorkbookPath)
	set("REPORT_OUTPUT_DIR", &cfg.OutputDir)
	set("REPORT_LOGO_PATH", &cfg.LogoPath)
	set("REPORT_VENDOR_NAME", &cfg.VendorName)
	set("REPORT_VENDOR_LOGO", &cfg.VendorLogo)
	set("LLM_PROVIDER", &cfg.Provider)
	set("LLM_MODEL", &cfg.Model)
	set("REPORT_PROMPT_DIR", &cfg.PromptDir)

	if v := os.Getenv("LLM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
}
