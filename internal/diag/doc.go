// Package diag defines the diagnostic model shared by every pipeline layer.
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced by
//     analyzers: Record for one concrete finding, Descriptor for the static
//     metadata a finding references.
//   - Name the two analysis granularities (Kind) the dispatch pipeline
//     schedules independently.
//   - Offer the Bag collector that callers use to gather a bounded,
//     deterministically ordered result set across several analyzers.
//
// # Scope
//
// Package diag performs no IO, formatting, or scheduling. Rendering lives in
// internal/diagfmt; deciding when records are produced and published lives in
// internal/driver and internal/update.
//
// Records are immutable after creation: an analysis run produces a fresh
// batch, and the next run for the same document/kind supersedes it wholesale.
package diag
