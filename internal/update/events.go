package update

import (
	"flare/internal/diag"
	"flare/internal/source"
)

// Created signals that Records is the complete, current result set for ID.
// Consumers replace any prior result for the same identity wholesale; the
// event is a snapshot, never a delta. An empty Records slice means "the
// document currently has zero diagnostics" and is distinct from Removed.
type Created struct {
	ID        Identity
	Workspace string
	// Snapshot is a monotonically increasing sequence stamped at publish
	// time. Consumers may use it to order convergence; causal ordering
	// across concurrent completions is not guaranteed.
	Snapshot int64
	Project  source.ProjectID
	Doc      source.DocumentID
	Records  []diag.Record
}

// Removed signals that any prior result for ID is no longer valid and must
// be cleared. Removing an identity that was never created is a harmless
// no-op for consumers.
type Removed struct {
	ID        Identity
	Workspace string
	Project   source.ProjectID
	Doc       source.DocumentID
}

// Subscriber consumes the update event stream. Both methods are one-way
// notifications; implementations must be safe for concurrent calls from
// multiple in-flight document analyses.
type Subscriber interface {
	DiagnosticsCreated(ev Created)
	DiagnosticsRemoved(ev Removed)
}
