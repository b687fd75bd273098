package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"flare/internal/diag"
	"flare/internal/source"
)

// AnalyzeAll runs every eligible kind for every tracked document, analyzing
// independent documents concurrently. Per-document runs share no mutable
// state beyond the publisher, so the only contention is the short publish
// section.
func (o *Orchestrator) AnalyzeAll(ctx context.Context) error {
	o.mu.Lock()
	docs := make([]source.DocumentID, 0, len(o.open))
	for id := range o.open {
		docs = append(docs, id)
	}
	o.mu.Unlock()
	if len(docs) == 0 {
		return nil
	}

	jobs := o.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(docs)))
	for _, id := range docs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			o.analyzeDocument(gctx, id, diag.Kinds[:])
			return nil
		})
	}
	return g.Wait()
}
