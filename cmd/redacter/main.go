// Command redacter batch-processes PDF documents: each document is sent
// to the document-understanding service (or served from the response
// cache), scanned for personally identifiable information, and a
// per-page redaction plan is written into a per-run job directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	redacter "github.com/redacter-man/pii-redacter"
	"github.com/redacter-man/pii-redacter/detect"
	"github.com/redacter-man/pii-redacter/docai"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults apply when omitted)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Local development convenience; absence of a .env file is normal.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			logger.Error("config", "error", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	jobID := uuid.NewString()
	jobDir := filepath.Join(cfg.OutputDir, jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return fmt.Errorf("creating job directory: %w", err)
	}
	logger = logger.With("job", jobID)

	engine, err := buildEngine(cfg.Patterns)
	if err != nil {
		return err
	}

	client := docai.NewClient(&http.Client{Timeout: 2 * time.Minute}, docai.Config{
		Endpoint: cfg.Service.Endpoint,
		APIKey:   os.Getenv(cfg.Service.APIKeyEnv),
	})
	cache := docai.NewCache(cfg.CacheDir)

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}

	var processed, failed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(cfg.InputDir, entry.Name())
		if err := processDocument(cfg, logger, client, cache, engine, path, jobDir); err != nil {
			// One bad document must not sink the batch.
			logger.Error("document failed", "document", entry.Name(), "error", err)
			failed++
			continue
		}
		processed++
	}

	logger.Info("batch complete", "processed", processed, "failed", failed, "output", jobDir)
	if processed == 0 && failed == 0 {
		logger.Warn("no PDF documents found", "input", cfg.InputDir)
	}
	return nil
}

func buildEngine(patternsPath string) (*detect.Engine, error) {
	if patternsPath == "" {
		return detect.NewEngine(), nil
	}
	fileCfg, err := detect.LoadConfig(patternsPath)
	if err != nil {
		return nil, fmt.Errorf("loading patterns: %w", err)
	}
	catalog, err := detect.DefaultCatalog().Apply(fileCfg)
	if err != nil {
		return nil, fmt.Errorf("applying patterns: %w", err)
	}
	return detect.NewEngineWithCatalog(catalog)
}

func processDocument(cfg Config, logger *slog.Logger, client *docai.Client, cache *docai.Cache, engine *detect.Engine, path, jobDir string) error {
	log := logger.With("document", filepath.Base(path))

	doc, hit, err := cache.Load(path)
	if err != nil {
		return err
	}
	if hit {
		log.Info("using cached service response")
	} else {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		doc, err = client.Process(ctx, content, "application/pdf")
		cancel()
		if err != nil {
			return err
		}
		if err := cache.Save(path, doc); err != nil {
			log.Warn("caching response failed", "error", err)
		}
	}

	sizes := make([]docai.PageSize, len(doc.Pages))
	for i := range sizes {
		sizes[i] = docai.PageSize{Width: cfg.PageWidth, Height: cfg.PageHeight}
	}

	planName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".plan.json"
	marker := newPlanWriter(filepath.Join(jobDir, planName))

	res, warnings, err := redacter.From(docai.NewSource(doc, sizes)).
		WithEngine(engine).
		Redact(marker)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn("processing warning", "stage", w.Stage, "page", w.Page, "detail", w.Message)
	}
	if redacter.NeedsOCR(res.Document) {
		log.Warn("document has no text on its first page; consider an OCR-enabled run")
	}

	log.Info("planned redactions",
		"pages", res.Document.PageCount(),
		"matches", len(res.Matches),
		"tokens", len(res.Marked),
		"plan", planName)
	return nil
}
