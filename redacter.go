// Package redacter finds personally identifiable information in token-level
// document extractions and plans the page regions to black out.
//
// Basic usage:
//
//	res, warnings, err := redacter.From(src).Result()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", redacter.FormatWarnings(warnings))
//	}
//
// To apply the plan to a redaction target:
//
//	res, _, err := redacter.From(src).
//	    WithCatalogConfig("patterns.yaml").
//	    Redact(marker)
//
// A source is anything that yields raw tokens: the native text layer, the
// document-understanding service (docai package), or local OCR (ocr
// package). The lower-level index, detect, resolve, and plan packages are
// also available for advanced use.
package redacter

import (
	"github.com/redacter-man/pii-redacter/index"
	"github.com/redacter-man/pii-redacter/model"
)

// Warning is a non-fatal problem recorded while processing a document.
type Warning = model.Warning

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// From wraps a token source for fluent configuration. Call a terminal
// operation like Result or Redact to run the pipeline.
//
// Example:
//
//	res, warnings, err := redacter.From(src).Result()
func From(src index.TokenSource) *Run {
	return &Run{src: src}
}

// NeedsOCR reports whether a document looks like a scanned image: it has
// pages but its first page carries no extractable tokens. Such documents
// should be re-run through an OCR-backed source.
func NeedsOCR(doc *model.Document) bool {
	if doc == nil || len(doc.Pages) == 0 {
		return false
	}
	return len(doc.Pages[0].Tokens) == 0
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult wraps a terminal operation, panics on error, and discards
// warnings. Intended for scripts and tests.
//
// Example:
//
//	res := redacter.MustResult(redacter.From(src).Result())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
