package update

import (
	"sync"
	"sync/atomic"

	"flare/internal/diag"
	"flare/internal/source"
)

// Publisher fans update events out to subscribers. The subscriber list is
// append-only and guarded for safe concurrent publish; it is the only
// mutable shared state in the protocol layer.
type Publisher struct {
	mu       sync.RWMutex
	subs     []Subscriber
	snapshot atomic.Int64
}

// NewPublisher creates a publisher with no subscribers.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Subscribe registers a consumer. Subscribers cannot be removed; a consumer
// that goes away should ignore further events.
func (p *Publisher) Subscribe(s Subscriber) {
	if s == nil {
		return
	}
	p.mu.Lock()
	p.subs = append(p.subs, s)
	p.mu.Unlock()
}

// Created publishes the complete current result set for the identity.
func (p *Publisher) Created(id Identity, project source.ProjectID, records []diag.Record) {
	ev := Created{
		ID:        id,
		Workspace: id.Workspace,
		Snapshot:  p.snapshot.Add(1),
		Project:   project,
		Doc:       id.Doc,
		Records:   records,
	}
	for _, s := range p.subscribers() {
		s.DiagnosticsCreated(ev)
	}
}

// Removed publishes a clear for the identity.
func (p *Publisher) Removed(id Identity, project source.ProjectID) {
	ev := Removed{
		ID:        id,
		Workspace: id.Workspace,
		Project:   project,
		Doc:       id.Doc,
	}
	for _, s := range p.subscribers() {
		s.DiagnosticsRemoved(ev)
	}
}

func (p *Publisher) subscribers() []Subscriber {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.subs
}
