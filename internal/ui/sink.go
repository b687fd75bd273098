package ui

import (
	"flare/internal/source"
	"flare/internal/update"
)

// Sink adapts the update event stream into ui Events on a channel. Sends
// never block the publisher: the channel should be buffered, and overflow is
// dropped (the view is cosmetic, the event stream is not).
type Sink struct {
	Workspace *source.Workspace
	Ch        chan<- Event
}

func (s Sink) DiagnosticsCreated(ev update.Created) {
	s.send(Event{
		Path:  s.path(ev.Doc),
		Kind:  ev.ID.Kind,
		Count: len(ev.Records),
	})
}

func (s Sink) DiagnosticsRemoved(ev update.Removed) {
	s.send(Event{
		Path:    s.path(ev.Doc),
		Kind:    ev.ID.Kind,
		Cleared: true,
	})
}

func (s Sink) path(id source.DocumentID) string {
	if doc := s.Workspace.Get(id); doc != nil {
		return doc.Path
	}
	return ""
}

func (s Sink) send(ev Event) {
	select {
	case s.Ch <- ev:
	default:
	}
}
