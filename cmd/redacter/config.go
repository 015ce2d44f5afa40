package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives a batch run. Paths are relative to the working directory
// unless absolute.
type Config struct {
	// InputDir holds the PDF documents to process.
	InputDir string `yaml:"input_dir"`
	// OutputDir receives one job directory per run.
	OutputDir string `yaml:"output_dir"`
	// CacheDir stores service responses so reruns skip the service.
	CacheDir string `yaml:"cache_dir"`
	// Patterns optionally points at a detection catalog override file.
	Patterns string `yaml:"patterns"`

	Service ServiceConfig `yaml:"service"`

	// PageWidth and PageHeight are the page dimensions, in points, that
	// redaction boxes are planned against. The service reports normalized
	// geometry, so the true page size must be supplied here.
	PageWidth  float64 `yaml:"page_width"`
	PageHeight float64 `yaml:"page_height"`
}

// ServiceConfig configures the document-understanding service client.
// The API key is read from the environment, not the config file.
type ServiceConfig struct {
	Endpoint  string `yaml:"endpoint"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// DefaultConfig returns the settings used when no config file is given:
// US-letter pages and conventional directory names.
func DefaultConfig() Config {
	return Config{
		InputDir:   "input",
		OutputDir:  "output",
		CacheDir:   "cache",
		PageWidth:  612,
		PageHeight: 792,
		Service: ServiceConfig{
			APIKeyEnv: "DOCAI_API_KEY",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// is an error here, unlike pattern overrides: the caller asked for it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.PageWidth <= 0 || cfg.PageHeight <= 0 {
		return cfg, fmt.Errorf("page dimensions must be positive, got %.2fx%.2f", cfg.PageWidth, cfg.PageHeight)
	}
	return cfg, nil
}
