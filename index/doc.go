// Package index builds a unified, indexable document representation from
// heterogeneous per-token extraction output.
//
// Extraction backends differ in two ways that matter here. Native text
// layers hand us one word at a time with reliable boxes and no text
// indices, so the builder assigns indices itself while reconstructing the
// full text. Document-understanding services return their own full text
// plus per-token anchors into it, where one token may be sharded across
// several discontiguous segments; the builder trusts those anchors but
// re-validates them, clamping out-of-range indices and dropping segments
// that remain degenerate.
//
// Either way the result is the same shape: a [model.Document] whose
// FullText can be scanned once by the pattern engine, and whose tokens
// carry segment ranges into that text so matches can be mapped back to
// visual regions.
//
// The builder is pure: the same raw input always produces byte-identical
// full text and identical indices.
package index
