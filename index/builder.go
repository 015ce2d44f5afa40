package index

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/redacter-man/pii-redacter/model"
)

const stage = "index"

// Builder converts per-page raw tokens into a unified [model.Document]
// with one canonical full-text string and globally-indexed tokens.
type Builder struct{}

// NewBuilder creates a document index builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build indexes the tokens produced by src. Recoverable anomalies (segment
// clamping, dropped tokens, missing geometry) are returned as warnings;
// only a failing source is an error.
func (b *Builder) Build(src TokenSource) (*model.Document, []model.Warning, error) {
	pages, sourceText, err := src.Extract()
	if err != nil {
		return nil, nil, fmt.Errorf("extracting tokens: %w", err)
	}

	if sourceText != "" {
		return b.buildAnchored(src.Backend(), pages, sourceText)
	}
	return b.buildSequential(src.Backend(), pages)
}

// buildSequential handles backends without text anchors: the builder owns
// the indices. Tokens are concatenated with exactly one space separator,
// including across page boundaries, so indices stay continuous for the
// whole document. The separator policy is an accepted approximation of the
// document's true whitespace.
func (b *Builder) buildSequential(backend model.Backend, pages []RawPage) (*model.Document, []model.Warning, error) {
	var warnings []model.Warning
	var fullText strings.Builder
	cursor := 0

	doc := model.NewDocument("")
	for pageIdx, rp := range pages {
		page := model.NewPage(rp.Width, rp.Height, backend)
		for _, rt := range rp.Tokens {
			text := norm.NFC.String(rt.Text)
			if strings.TrimSpace(text) == "" {
				continue
			}

			start := cursor
			end := start + len(text)
			fullText.WriteString(text)
			fullText.WriteByte(' ')
			cursor = end + 1

			page.Tokens = append(page.Tokens, &model.Token{
				Text:       text,
				BBox:       b.resolveBBox(rt, rp, pageIdx, &warnings),
				Segments:   []model.TextSegment{{Start: start, End: end}},
				Confidence: rt.Confidence,
			})
		}
		doc.AddPage(page)
	}

	doc.FullText = fullText.String()
	return doc, warnings, nil
}

// buildAnchored handles service backends that report their own full text
// and per-token anchors into it. The service's indices are trusted but
// re-validated: out-of-range segments are clamped to the text, and
// segments that remain degenerate are dropped along with tokens left
// textless.
func (b *Builder) buildAnchored(backend model.Backend, pages []RawPage, sourceText string) (*model.Document, []model.Warning, error) {
	var warnings []model.Warning

	doc := model.NewDocument(sourceText)
	for pageIdx, rp := range pages {
		page := model.NewPage(rp.Width, rp.Height, backend)
		for _, rt := range rp.Tokens {
			segments := b.validateSegments(rt.Segments, len(sourceText), pageIdx, &warnings)
			if len(segments) == 0 {
				warnings = append(warnings, model.Warning{
					Stage:   stage,
					Page:    pageIdx,
					Message: fmt.Sprintf("token %q dropped: no usable text segments", rt.Text),
				})
				continue
			}

			var text strings.Builder
			for _, seg := range segments {
				text.WriteString(sourceText[seg.Start:seg.End])
			}
			if strings.TrimSpace(text.String()) == "" {
				continue
			}

			page.Tokens = append(page.Tokens, &model.Token{
				Text:       text.String(),
				BBox:       b.resolveBBox(rt, rp, pageIdx, &warnings),
				Segments:   segments,
				Confidence: rt.Confidence,
			})
		}
		doc.AddPage(page)
	}

	return doc, warnings, nil
}

// validateSegments clamps out-of-range anchor indices to the source text
// and drops segments that remain degenerate. Service sharding artifacts
// make these cases routine enough that they must never abort a document.
func (b *Builder) validateSegments(segments []model.TextSegment, textLen, pageIdx int, warnings *[]model.Warning) []model.TextSegment {
	var out []model.TextSegment
	for _, seg := range segments {
		clamped := seg
		if clamped.Start < 0 {
			clamped.Start = 0
		}
		if clamped.End > textLen {
			clamped.End = textLen
		}
		if clamped != seg {
			*warnings = append(*warnings, model.Warning{
				Stage:   stage,
				Page:    pageIdx,
				Message: fmt.Sprintf("segment [%d, %d) out of bounds for text length %d; clamped to [%d, %d)", seg.Start, seg.End, textLen, clamped.Start, clamped.End),
			})
		}
		if clamped.Start >= clamped.End {
			*warnings = append(*warnings, model.Warning{
				Stage:   stage,
				Page:    pageIdx,
				Message: fmt.Sprintf("segment [%d, %d) degenerate; dropped", seg.Start, seg.End),
			})
			continue
		}
		out = append(out, clamped)
	}
	return out
}

// resolveBBox produces a bounding box in host page units. Absolute rects
// pass through; normalized polygons are scaled by the host page dimensions,
// taking the top-left and bottom-right corners from the first and third
// vertices. Rotated or skewed polygons are not corrected; axis alignment
// is a documented assumption of the upstream service.
func (b *Builder) resolveBBox(rt RawToken, rp RawPage, pageIdx int, warnings *[]model.Warning) model.BBox {
	switch {
	case rt.Rect != nil:
		return model.NewBBox(round2(rt.Rect.X0), round2(rt.Rect.Y0), round2(rt.Rect.X1), round2(rt.Rect.Y1))
	case len(rt.Polygon) >= 3:
		return model.NewBBox(
			round2(rt.Polygon[0].X*rp.Width),
			round2(rt.Polygon[0].Y*rp.Height),
			round2(rt.Polygon[2].X*rp.Width),
			round2(rt.Polygon[2].Y*rp.Height),
		)
	default:
		*warnings = append(*warnings, model.Warning{
			Stage:   stage,
			Page:    pageIdx,
			Message: fmt.Sprintf("token %q has no usable geometry", rt.Text),
		})
		return model.BBox{}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
