// Package docai integrates an external document-understanding service as
// an extraction backend for image-based documents.
//
// The service returns its own full text plus per-token anchors into that
// text; tokens may be sharded across multiple segments, and geometry
// arrives as normalized polygon vertices that must be scaled by the host
// page dimensions. The [Source] adapter carries all of that through to
// the index builder unchanged, so the builder can re-validate the
// service's indices in one place.
//
// The client takes its HTTP client and configuration at construction;
// there is no package-level service state. Responses can be cached on
// disk keyed by source filename, so reprocessing a document does not
// repeat the service call and always reproduces the same raw tokens.
package docai
