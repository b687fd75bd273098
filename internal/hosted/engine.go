// Package hosted bridges an externally-hosted analysis engine into the
// uniform analyzer contract the capability registry expects.
package hosted

import (
	"context"

	"flare/internal/diag"
	"flare/internal/source"
)

// Finding is one raw result from an external engine. The engine assigns
// diagnostic codes dynamically; the code space is effectively unbounded.
type Finding struct {
	Code     string
	Severity diag.Severity
	Message  string
	Start    uint32
	End      uint32
}

// Engine is the narrow contract an external toolchain supplies: analyze one
// document at one granularity, honoring cancellation.
type Engine interface {
	Name() string
	CheckSyntax(ctx context.Context, doc *source.Document) ([]Finding, error)
	CheckSemantics(ctx context.Context, doc *source.Document) ([]Finding, error)
}
