// Package resolve maps detected PII spans back to the visual tokens they
// cover.
//
// The mapping walks tokens in document order and, for each token, the
// matches in ascending start order, marking the token with the first match
// that overlaps any of its segments. First-match-wins keeps the output
// deterministic and each token unique: once a token is implicated in any
// PII span, redacting it once is sufficient, and attributing one visual
// region to several PII types would complicate the output without making
// the redaction any safer.
//
// Because the only mutation is each token's own DetectedAs field and the
// match list is read-only, resolution is idempotent: running it again over
// the same document and matches returns the same marked set with the same
// types.
package resolve

import "github.com/redacter-man/pii-redacter/model"

// MarkedToken pairs a marked token with the page it appears on.
type MarkedToken struct {
	PageIndex int
	Token     *model.Token
}

// Resolver determines which tokens overlap detected PII spans.
type Resolver struct{}

// NewResolver creates an overlap resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve marks every token that overlaps a match and returns the marked
// tokens in document order. Matches must be sorted by ascending start
// index, as produced by the detection engine. A token already marked from
// a previous run is never remarked or re-emitted with a different type.
func (r *Resolver) Resolve(doc *model.Document, matches []model.PIIMatch) []MarkedToken {
	var marked []MarkedToken
	for pageIdx, page := range doc.Pages {
		for _, token := range page.Tokens {
			for _, m := range matches {
				if !token.OverlapsSpan(m.Start, m.End) {
					continue
				}
				if !token.Detected() {
					token.DetectedAs = m.Type
					marked = append(marked, MarkedToken{PageIndex: pageIdx, Token: token})
				}
				break // first overlapping match decides; never reclassify
			}
		}
	}
	return marked
}
