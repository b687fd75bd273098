// Package driver hosts the incremental analysis orchestrator: the state
// machine that turns document lifecycle and option signals into analyzer
// runs and update-protocol events.
package driver

import (
	"context"
	"fmt"
	"sync"

	"flare/internal/analyzer"
	"flare/internal/diag"
	"flare/internal/source"
	"flare/internal/update"
)

// DefaultMaxDiagnostics caps one run's result set.
const DefaultMaxDiagnostics = 100

// Config wires an Orchestrator.
type Config struct {
	Workspace *source.Workspace
	Registry  *analyzer.Registry
	Publisher *update.Publisher
	Options   Options
	// MaxDiagnostics caps one run's result set; zero means
	// DefaultMaxDiagnostics.
	MaxDiagnostics int
	// Jobs limits bulk-analysis parallelism; zero means GOMAXPROCS.
	Jobs int
	// Logf receives trace output. Nil disables logging.
	Logf func(format string, args ...any)
}

// Orchestrator tracks open documents and drives the update protocol. All
// signal methods are safe for concurrent use; analyzer invocations for
// different documents run without shared mutable state, while identity
// bookkeeping and event publication are short synchronous sections under one
// lock so that a removal always reflects the most recent intent.
type Orchestrator struct {
	ws       *source.Workspace
	reg      *analyzer.Registry
	pub      *update.Publisher
	maxDiags int
	jobs     int
	logf     func(string, ...any)

	mu   sync.Mutex
	opts Options
	open map[source.DocumentID]struct{}
	runs map[runKey]*run
}

type runKey struct {
	kind diag.Kind
	doc  source.DocumentID
}

type run struct {
	cancel context.CancelFunc
}

// New validates the config and builds an orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Workspace == nil {
		return nil, fmt.Errorf("driver: missing workspace")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("driver: missing registry")
	}
	if cfg.Publisher == nil {
		return nil, fmt.Errorf("driver: missing publisher")
	}
	maxDiags := cfg.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Orchestrator{
		ws:       cfg.Workspace,
		reg:      cfg.Registry,
		pub:      cfg.Publisher,
		maxDiags: maxDiags,
		jobs:     cfg.Jobs,
		logf:     logf,
		opts:     cfg.Options,
		open:     make(map[source.DocumentID]struct{}),
		runs:     make(map[runKey]*run),
	}, nil
}

// Options returns the current analysis switches.
func (o *Orchestrator) Options() Options {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opts
}

// DocumentOpened starts tracking the document and runs every eligible kind,
// syntax first.
func (o *Orchestrator) DocumentOpened(ctx context.Context, id source.DocumentID) {
	doc := o.ws.Get(id)
	if doc == nil {
		o.logf("opened: unknown document %d", id)
		return
	}
	o.mu.Lock()
	o.open[id] = struct{}{}
	o.mu.Unlock()
	o.analyzeDocument(ctx, id, diag.Kinds[:])
}

// DocumentEdited re-runs analysis for an open document. An ordinary edit
// triggers only the cheap syntax pass; the semantic identity keeps its last
// published batch until a semantic trigger (open, relevant option change, or
// ReasonSemanticsInvalidated) arrives.
func (o *Orchestrator) DocumentEdited(ctx context.Context, id source.DocumentID, reason Reason) {
	if !o.tracked(id) {
		return
	}
	kinds := []diag.Kind{diag.Syntax}
	if reason == ReasonSemanticsInvalidated {
		kinds = diag.Kinds[:]
	}
	o.logf("edited: doc=%d reason=%s", id, reason)
	o.analyzeDocument(ctx, id, kinds)
}

// DocumentReset clears both identities but keeps tracking the document; the
// next trigger reanalyzes it from scratch.
func (o *Orchestrator) DocumentReset(id source.DocumentID) {
	o.clear(id, false)
}

// DocumentClosed clears both identities and stops tracking the document. No
// diagnostics survive for a document that is not open.
func (o *Orchestrator) DocumentClosed(id source.DocumentID) {
	o.clear(id, true)
}

// ProjectRemoved closes every tracked document of the project.
func (o *Orchestrator) ProjectRemoved(project source.ProjectID) {
	for _, id := range o.ws.DocumentsOf(project) {
		if o.tracked(id) {
			o.DocumentClosed(id)
		}
	}
}

// OptionChanged applies a global option flip. Only the three analysis
// switches trigger work: every open document is reanalyzed for kinds that
// became or stayed eligible, and kinds that are no longer eligible get their
// identities cleared. Unrelated options are ignored.
func (o *Orchestrator) OptionChanged(ctx context.Context, opt Option, old, new bool) {
	if !relevant(opt) || old == new {
		return
	}
	o.mu.Lock()
	o.opts.set(opt, new)
	docs := make([]source.DocumentID, 0, len(o.open))
	for id := range o.open {
		docs = append(docs, id)
	}
	o.mu.Unlock()
	o.logf("option changed: %s %t -> %t, reanalyzing %d documents", opt, old, new, len(docs))
	for _, id := range docs {
		o.reconcileDocument(ctx, id)
	}
}

// tracked reports whether the document is currently open as far as the
// orchestrator knows.
func (o *Orchestrator) tracked(id source.DocumentID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.open[id]
	return ok
}

// clear cancels in-flight runs and publishes removals for both kinds,
// regardless of current eligibility or whether anything was ever published.
func (o *Orchestrator) clear(id source.DocumentID, forget bool) {
	doc := o.ws.Get(id)
	var project source.ProjectID
	if doc != nil {
		project = doc.Project
	}
	o.mu.Lock()
	for _, kind := range diag.Kinds {
		key := runKey{kind: kind, doc: id}
		if r := o.runs[key]; r != nil {
			r.cancel()
			delete(o.runs, key)
		}
	}
	if forget {
		delete(o.open, id)
	}
	for _, kind := range diag.Kinds {
		o.pub.Removed(update.NewIdentity(o.ws.Name(), kind, id), project)
	}
	o.mu.Unlock()
	o.logf("cleared: doc=%d forget=%t", id, forget)
}

// reconcileDocument brings one document in line with the current options:
// run what is eligible, clear what is not. An in-flight run for a kind that
// became ineligible is cancelled before its removal goes out, so the removal
// stays the latest word for that identity.
func (o *Orchestrator) reconcileDocument(ctx context.Context, id source.DocumentID) {
	doc := o.ws.Get(id)
	if doc == nil {
		return
	}
	opts := o.Options()
	for _, kind := range diag.Kinds {
		if opts.eligible(doc, kind) {
			o.runKind(ctx, doc, kind)
			continue
		}
		o.mu.Lock()
		key := runKey{kind: kind, doc: id}
		if r := o.runs[key]; r != nil {
			r.cancel()
			delete(o.runs, key)
		}
		o.pub.Removed(update.NewIdentity(o.ws.Name(), kind, id), doc.Project)
		o.mu.Unlock()
	}
}
