// Package analyzer defines the uniform analyze contract and the capability
// registry that resolves which analyzers apply to a document.
package analyzer

import (
	"context"
	"fmt"

	"flare/internal/diag"
	"flare/internal/source"
)

// DefaultPriority is the host's default ordering value for capabilities.
// Lower values are scheduled more eagerly.
const DefaultPriority = 50

// Analyzer is the uniform contract every diagnostics provider satisfies,
// whether built in or externally hosted. Implementations must not mutate the
// document and must honor cancellation promptly.
type Analyzer interface {
	// Name identifies the analyzer in logs.
	Name() string
	// Descriptors returns the bounded, enumerable set of diagnostic
	// categories this analyzer may report, fixed at construction.
	Descriptors() []diag.Descriptor
	// AnalyzeSyntax runs the structure-only pass.
	AnalyzeSyntax(ctx context.Context, doc *source.Document) ([]diag.Record, error)
	// AnalyzeSemantics runs the full-fidelity pass.
	AnalyzeSemantics(ctx context.Context, doc *source.Document) ([]diag.Record, error)
}

// Capability is one resolved analyzer together with its scheduling priority.
type Capability struct {
	Analyzer Analyzer
	Priority int
}

// Invoke runs one analysis kind on one document. A panicking analyzer is
// recovered and reported as an error; callers treat any error as "zero
// diagnostics produced for this run" so a faulting analyzer never blocks
// bulk analysis of unrelated documents.
func Invoke(ctx context.Context, a Analyzer, kind diag.Kind, doc *source.Document) (recs []diag.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs = nil
			err = fmt.Errorf("analyzer %s panicked during %s analysis: %v", a.Name(), kind, r)
		}
	}()
	switch kind {
	case diag.Syntax:
		return a.AnalyzeSyntax(ctx, doc)
	case diag.Semantic:
		return a.AnalyzeSemantics(ctx, doc)
	default:
		return nil, fmt.Errorf("analyzer %s: unknown analysis kind %d", a.Name(), kind)
	}
}
