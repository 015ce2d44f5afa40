package index

import "github.com/redacter-man/pii-redacter/model"

// Vertex is one corner of a normalized bounding polygon, with coordinates
// as fractions of the page dimensions (0..1).
type Vertex struct {
	X float64
	Y float64
}

// RawToken is one extracted word as reported by a backend, before
// indexing. Exactly one of Rect or Polygon should be set: Rect for
// backends that report absolute page-unit rectangles, Polygon for
// backends that report normalized polygon vertices.
//
// Segments carries the backend's own anchor indices into its source text;
// it is nil for backends whose indices the builder assigns.
type RawToken struct {
	Text       string
	Rect       *model.BBox
	Polygon    []Vertex
	Segments   []model.TextSegment
	Confidence float64
}

// RawPage is one page of raw tokens plus the host page dimensions in page
// units. Dimensions come from the host document, not from the extraction
// response, so normalized polygons convert into the host coordinate
// system.
type RawPage struct {
	Width  float64
	Height float64
	Tokens []RawToken
}

// TokenSource is the capability interface every extraction backend
// adapter implements. The builder depends only on this interface, never
// on a backend's native types.
type TokenSource interface {
	// Backend reports which extraction flavor produced the tokens.
	Backend() model.Backend

	// Extract returns the per-page raw tokens and, for service backends,
	// the service's own full text that token anchors index into.
	// sourceText is empty for backends whose indices the builder assigns.
	Extract() (pages []RawPage, sourceText string, err error)
}

// StaticSource is a TokenSource over already-materialized raw pages. It
// adapts extraction engines that are driven outside this package, and is
// convenient in tests.
type StaticSource struct {
	Kind  model.Backend
	Pages []RawPage
	Text  string
}

func (s *StaticSource) Backend() model.Backend { return s.Kind }

func (s *StaticSource) Extract() ([]RawPage, string, error) {
	return s.Pages, s.Text, nil
}
