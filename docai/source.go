package docai

import (
	"fmt"

	"github.com/redacter-man/pii-redacter/index"
	"github.com/redacter-man/pii-redacter/model"
)

// PageSize carries the host document's page dimensions, in the
// coordinate units the redaction target expects. The service reports
// geometry as normalized vertices, so the true page size must come from
// the document itself.
type PageSize struct {
	Width  float64
	Height float64
}

// Source adapts a service response into token input for index building.
// It trusts the service's character indices into Document.Text and
// converts normalized polygons into page coordinates via the host page
// sizes.
type Source struct {
	doc   *Document
	sizes []PageSize
}

// NewSource wraps a processed document. sizes must have one entry per
// page in the host document, in page order.
func NewSource(doc *Document, sizes []PageSize) *Source {
	return &Source{doc: doc, sizes: sizes}
}

// Backend reports that tokens originate from the document-understanding
// service.
func (s *Source) Backend() model.Backend {
	return model.BackendService
}

// Extract maps each service page and token into raw form. The service
// text is returned verbatim so downstream indexing anchors tokens into
// it rather than rebuilding it.
func (s *Source) Extract() ([]index.RawPage, string, error) {
	if s.doc == nil {
		return nil, "", fmt.Errorf("no document to extract")
	}
	if len(s.doc.Pages) != len(s.sizes) {
		return nil, "", fmt.Errorf("page count mismatch: service returned %d pages, host document has %d",
			len(s.doc.Pages), len(s.sizes))
	}

	pages := make([]index.RawPage, 0, len(s.doc.Pages))
	for i, page := range s.doc.Pages {
		size := s.sizes[i]
		raw := index.RawPage{
			Width:  size.Width,
			Height: size.Height,
			Tokens: make([]index.RawToken, 0, len(page.Tokens)),
		}
		for _, tok := range page.Tokens {
			raw.Tokens = append(raw.Tokens, rawToken(tok))
		}
		pages = append(pages, raw)
	}
	return pages, s.doc.Text, nil
}

// rawToken converts one service token. Text is left empty: the indexer
// slices it from the full text using the segments, which keeps the text
// and its indices consistent by construction.
func rawToken(tok Token) index.RawToken {
	raw := index.RawToken{
		Confidence: tok.Layout.Confidence,
	}
	for _, seg := range tok.Layout.TextAnchor.TextSegments {
		raw.Segments = append(raw.Segments, model.TextSegment{
			Start: seg.StartIndex,
			End:   seg.EndIndex,
		})
	}
	for _, v := range tok.Layout.BoundingPoly.NormalizedVertices {
		raw.Polygon = append(raw.Polygon, index.Vertex{X: v.X, Y: v.Y})
	}
	return raw
}
