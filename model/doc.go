// Package model provides the intermediate representation (IR) for indexed
// document content and detected PII.
//
// This package defines the data structures shared by every stage of the
// redaction pipeline. All extraction backends ultimately produce these
// types, and all detection and planning operations consume them.
//
// # Document Structure
//
// The [Document] type holds the canonical full text of one input document
// together with its pages:
//
//	doc := model.NewDocument(fullText)
//	doc.AddPage(page)
//
// Each [Page] contains its dimensions, the backend that produced it, and an
// ordered list of [Token] values. Every token carries one or more
// [TextSegment] index ranges into Document.FullText; segments are half-open
// intervals, so Document.FullText[seg.Start:seg.End] is exactly the text the
// segment covers.
//
// # PII
//
// [PIIType] is the closed set of categories the detector can report.
// [PIIMatch] is one detected occurrence: a character range in the full text
// plus its category. Tokens record the first category that claimed them in
// Token.DetectedAs; the field is write-once by convention and enforced by
// the resolver, not by this package.
//
// # Geometry
//
// [BBox] is an axis-aligned rectangle in page units with a top-left origin.
// Backends that report other conventions are normalized before their boxes
// reach this package.
package model
