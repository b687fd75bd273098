package driver

import (
	"context"

	"flare/internal/analyzer"
	"flare/internal/diag"
	"flare/internal/source"
	"flare/internal/update"
)

// analyzeDocument runs the requested kinds in order for one document,
// skipping kinds the options make ineligible.
func (o *Orchestrator) analyzeDocument(ctx context.Context, id source.DocumentID, kinds []diag.Kind) {
	doc := o.ws.Get(id)
	if doc == nil {
		return
	}
	opts := o.Options()
	for _, kind := range kinds {
		if !opts.eligible(doc, kind) {
			continue
		}
		o.runKind(ctx, doc, kind)
	}
}

// runKind performs one analysis run: resolve capabilities, invoke them with a
// cancellation signal, and publish the complete result set under the run's
// identity. A newer trigger for the same (kind, document) cancels this run;
// a cancelled run publishes nothing, leaving the prior published state
// authoritative.
func (o *Orchestrator) runKind(ctx context.Context, doc *source.Document, kind diag.Kind) {
	caps := o.reg.Resolve(doc)
	if len(caps) == 0 {
		// No capability for this language: publish nothing, do no work.
		return
	}

	key := runKey{kind: kind, doc: doc.ID}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	current := &run{cancel: cancel}
	o.mu.Lock()
	if prev := o.runs[key]; prev != nil {
		prev.cancel()
	}
	o.runs[key] = current
	o.mu.Unlock()

	bag := diag.NewBag(o.maxDiags)
	for _, cap := range caps {
		recs, err := analyzer.Invoke(runCtx, cap.Analyzer, kind, doc)
		if runCtx.Err() != nil {
			o.logf("run superseded: doc=%d kind=%s", doc.ID, kind)
			o.finish(key, current)
			return
		}
		if err != nil {
			// AnalyzerFault: zero diagnostics from this analyzer, the run
			// itself continues.
			o.logf("analyzer fault: doc=%d kind=%s err=%v", doc.ID, kind, err)
			continue
		}
		for i := range recs {
			recs[i].Kind = kind
			recs[i].Doc = doc.ID
			recs[i].Project = doc.Project
			if recs[i].Span.Doc == source.NoDocumentID {
				recs[i].Span.Doc = doc.ID
			}
		}
		bag.AddAll(recs)
	}
	bag.Sort()
	bag.Dedup()

	o.mu.Lock()
	defer o.mu.Unlock()
	if runCtx.Err() != nil {
		o.finishLocked(key, current)
		return
	}
	if _, open := o.open[doc.ID]; !open {
		// Closed while we were analyzing; the close already published the
		// removal and it must stay the latest word.
		o.finishLocked(key, current)
		return
	}
	if !o.opts.eligible(doc, kind) {
		// The kind became ineligible mid-run; the reconcile already published
		// the removal for this identity.
		o.finishLocked(key, current)
		return
	}
	o.pub.Created(update.NewIdentity(o.ws.Name(), kind, doc.ID), doc.Project, bag.Items())
	o.finishLocked(key, current)
}

func (o *Orchestrator) finish(key runKey, current *run) {
	o.mu.Lock()
	o.finishLocked(key, current)
	o.mu.Unlock()
}

// finishLocked drops the run-table entry unless a newer run already replaced
// it.
func (o *Orchestrator) finishLocked(key runKey, current *run) {
	if o.runs[key] == current {
		delete(o.runs, key)
	}
}
