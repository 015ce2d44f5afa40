package model

// Backend identifies the extraction backend that produced a page.
type Backend int

const (
	BackendUnknown Backend = iota
	BackendNative          // text layer extraction, one segment per token
	BackendService         // document-understanding service, 1..N segments per token
	BackendOCR             // local OCR, one segment per token
)

func (b Backend) String() string {
	switch b {
	case BackendNative:
		return "native"
	case BackendService:
		return "service"
	case BackendOCR:
		return "ocr"
	default:
		return "unknown"
	}
}

// TextSegment is a contiguous half-open index range [Start, End) into the
// owning document's full text. A token owns one segment in the common case;
// service backends may shard a token across several.
type TextSegment struct {
	Start int
	End   int
}

// OverlapsSpan checks if the segment overlaps the half-open span
// [start, end). Touching endpoints do not overlap.
func (s TextSegment) OverlapsSpan(start, end int) bool {
	return s.Start < end && s.End > start
}

// Token is the smallest redactable unit of visual text: a word with its
// bounding box on a page and the segments it occupies in the document's
// full text.
//
// DetectedAs is write-once: the resolver sets it at most one time, to the
// type of the first match (in ascending start order) that overlaps any of
// the token's segments. It is never reassigned afterward.
type Token struct {
	Text       string
	BBox       BBox
	Segments   []TextSegment
	DetectedAs PIIType
	PageIndex  int
	Confidence float64 // OCR confidence in [0,1]; 0 when the backend reports none
}

// Detected returns true once the token has been attributed to a PII type.
func (t *Token) Detected() bool {
	return t.DetectedAs != PIINone
}

// OverlapsSpan checks if any of the token's segments overlaps the
// half-open span [start, end).
func (t *Token) OverlapsSpan(start, end int) bool {
	for _, seg := range t.Segments {
		if seg.OverlapsSpan(start, end) {
			return true
		}
	}
	return false
}

// Page represents a single page: its dimensions, originating backend, and
// an ordered sequence of tokens.
type Page struct {
	Index  int     // 0-indexed page number
	Width  float64 // page width in page units
	Height float64 // page height in page units
	Source Backend
	Tokens []*Token
}

// NewPage creates an empty page with the given dimensions.
func NewPage(width, height float64, source Backend) *Page {
	return &Page{
		Width:  width,
		Height: height,
		Source: source,
		Tokens: make([]*Token, 0),
	}
}

// TokensInSpan returns the tokens whose segments overlap [start, end).
func (p *Page) TokensInSpan(start, end int) []*Token {
	var out []*Token
	for _, t := range p.Tokens {
		if t.OverlapsSpan(start, end) {
			out = append(out, t)
		}
	}
	return out
}

// Document holds the canonical full text of one input document and its
// pages. Every token segment is a valid index range into FullText, and
// segment ranges are monotonically non-decreasing when tokens are visited
// in document order (pages in order, tokens in order). The document is
// immutable after indexing except for Token.DetectedAs.
type Document struct {
	Pages    []*Page
	FullText string
}

// NewDocument creates a document with the given full text and no pages.
func NewDocument(fullText string) *Document {
	return &Document{
		Pages:    make([]*Page, 0),
		FullText: fullText,
	}
}

// AddPage appends a page and assigns its index.
func (d *Document) AddPage(page *Page) {
	page.Index = len(d.Pages)
	for _, t := range page.Tokens {
		t.PageIndex = page.Index
	}
	d.Pages = append(d.Pages, page)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// TokenCount returns the total number of tokens across all pages.
func (d *Document) TokenCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Tokens)
	}
	return n
}

// SegmentText reconstructs a token's text from the document's full text by
// concatenating its segment slices. For tokens with unclamped segments this
// equals Token.Text.
func (d *Document) SegmentText(t *Token) string {
	var out string
	for _, seg := range t.Segments {
		out += d.FullText[seg.Start:seg.End]
	}
	return out
}
