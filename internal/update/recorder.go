package update

import "sync"

// EventKind distinguishes recorded events.
type EventKind uint8

const (
	EventCreated EventKind = iota + 1
	EventRemoved
)

// Event is one recorded update, created or removed.
type Event struct {
	Kind    EventKind
	Created Created // valid when Kind == EventCreated
	Removed Removed // valid when Kind == EventRemoved
}

// Recorder is a Subscriber that keeps every event in arrival order. Used by
// tests and by consumers that need to drain the stream after a bulk run.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) DiagnosticsCreated(ev Created) {
	r.mu.Lock()
	r.events = append(r.events, Event{Kind: EventCreated, Created: ev})
	r.mu.Unlock()
}

func (r *Recorder) DiagnosticsRemoved(ev Removed) {
	r.mu.Lock()
	r.events = append(r.events, Event{Kind: EventRemoved, Removed: ev})
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event for the identity and whether one exists.
func (r *Recorder) Last(id Identity) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		ev := r.events[i]
		switch ev.Kind {
		case EventCreated:
			if ev.Created.ID == id {
				return ev, true
			}
		case EventRemoved:
			if ev.Removed.ID == id {
				return ev, true
			}
		}
	}
	return Event{}, false
}

// Active reports whether the identity currently has a live batch: a Created
// not followed by a Removed.
func (r *Recorder) Active(id Identity) bool {
	ev, ok := r.Last(id)
	return ok && ev.Kind == EventCreated
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
