package docai

// Document is the service's processed result: the recognized full text
// and per-page tokens anchored into it.
type Document struct {
	Text  string `json:"text"`
	Pages []Page `json:"pages"`
}

// Page holds the tokens the service recognized on one page.
type Page struct {
	PageNumber int     `json:"pageNumber"`
	Tokens     []Token `json:"tokens"`
}

// Token is one recognized word with its layout information.
type Token struct {
	Layout Layout `json:"layout"`
}

// Layout anchors a token into the document text and onto the page image.
type Layout struct {
	TextAnchor   TextAnchor   `json:"textAnchor"`
	BoundingPoly BoundingPoly `json:"boundingPoly"`
	Confidence   float64      `json:"confidence,omitempty"`
}

// TextAnchor is the set of index ranges a token occupies in Document.Text.
// Service-side sharding may split one token across several segments, and
// occasionally reports indices past the end of the text; the index builder
// clamps those rather than trusting them blindly.
type TextAnchor struct {
	TextSegments []TextSegment `json:"textSegments"`
}

// TextSegment is a half-open [StartIndex, EndIndex) range in the service's
// own text.
type TextSegment struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// BoundingPoly is the polygon enclosing a token, with vertices normalized
// to fractions of the page image (0..1). The service renders pages at its
// own resolution, so only the normalized form is meaningful to us.
type BoundingPoly struct {
	NormalizedVertices []Vertex `json:"normalizedVertices"`
}

// Vertex is one polygon corner in normalized coordinates.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
