// Package detect locates PII inside a document's full text.
//
// Detection is a single left-to-right scan: the ordered pattern catalog is
// compiled into one combined regular expression with one named alternative
// per PII type. A single pass guarantees matches are discovered in document
// order with no double-counting of overlapping alternatives at the same
// start position. When more than one type could match at the same position,
// catalog order decides; the order in [DefaultCatalog] is therefore a
// priority list, not an incidental arrangement, and reordering it changes
// classification.
//
// Two categories carry a non-sensitive label in their raw match
// ("credit score: 800", "credit report: excellent"). For those, the engine
// refines the match after the scan, narrowing the start index forward past
// the label and any following whitespace so only the value is redacted.
// Refinement never widens a span and never moves its end.
package detect
