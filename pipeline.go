package redacter

import (
	"errors"
	"fmt"

	"github.com/redacter-man/pii-redacter/detect"
	"github.com/redacter-man/pii-redacter/index"
	"github.com/redacter-man/pii-redacter/model"
	"github.com/redacter-man/pii-redacter/plan"
	"github.com/redacter-man/pii-redacter/resolve"
)

// ErrEmptyDocument is returned when a source yields no pages.
var ErrEmptyDocument = errors.New("document has no pages")

// Run is a configured pipeline over one token source. Configure it with
// the With* methods, then invoke a terminal operation.
type Run struct {
	src         index.TokenSource
	engine      *detect.Engine
	catalogPath string
}

// WithEngine replaces the default detection engine. Use this to share a
// pre-built engine across documents instead of recompiling patterns each
// run.
func (r *Run) WithEngine(e *detect.Engine) *Run {
	r.engine = e
	return r
}

// WithCatalogConfig loads pattern overrides and disabled types from a
// YAML file before building the engine. Ignored when WithEngine was also
// called. A missing file leaves the default catalog untouched.
func (r *Run) WithCatalogConfig(path string) *Run {
	r.catalogPath = path
	return r
}

// Result is everything a pipeline run produces: the indexed document,
// the raw pattern matches against its full text, the tokens those
// matches resolved onto, and the per-page redaction boxes.
type Result struct {
	Document *model.Document
	Matches  []model.PIIMatch
	Marked   []resolve.MarkedToken
	Batch    map[int][]model.BBox
}

func (r *Run) buildEngine() (*detect.Engine, error) {
	if r.engine != nil {
		return r.engine, nil
	}
	if r.catalogPath == "" {
		return detect.NewEngine(), nil
	}
	cfg, err := detect.LoadConfig(r.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog config: %w", err)
	}
	catalog, err := detect.DefaultCatalog().Apply(cfg)
	if err != nil {
		return nil, fmt.Errorf("applying catalog config: %w", err)
	}
	return detect.NewEngineWithCatalog(catalog)
}

// Result runs the full pipeline short of touching the document: index the
// tokens, detect PII in the unified text, resolve matches onto tokens,
// and plan per-page redaction boxes. Warnings are returned even when err
// is non-nil; they describe what was already processed.
func (r *Run) Result() (*Result, []Warning, error) {
	doc, warnings, err := index.NewBuilder().Build(r.src)
	if err != nil {
		return nil, warnings, err
	}
	if doc.PageCount() == 0 {
		return nil, warnings, ErrEmptyDocument
	}

	engine, err := r.buildEngine()
	if err != nil {
		return nil, warnings, err
	}

	matches := engine.Detect(doc.FullText)
	marked := resolve.NewResolver().Resolve(doc, matches)

	batch, planWarnings := plan.NewPlanner().Plan(doc, marked)
	warnings = append(warnings, planWarnings...)

	return &Result{
		Document: doc,
		Matches:  matches,
		Marked:   marked,
		Batch:    batch,
	}, warnings, nil
}

// Redact runs the pipeline and applies the planned boxes to marker. The
// partially built Result is returned alongside an apply error so callers
// can report how far the run got.
func (r *Run) Redact(marker plan.RegionMarker) (*Result, []Warning, error) {
	res, warnings, err := r.Result()
	if err != nil {
		return nil, warnings, err
	}
	if err := plan.Apply(res.Batch, marker); err != nil {
		return res, warnings, err
	}
	return res, warnings, nil
}
