package update

import (
	"sync"
	"testing"

	"flare/internal/diag"
	"flare/internal/source"
)

func TestPublisherFansOutToAllSubscribers(t *testing.T) {
	pub := NewPublisher()
	a := NewRecorder()
	b := NewRecorder()
	pub.Subscribe(a)
	pub.Subscribe(b)

	id := NewIdentity("s", diag.Syntax, 1)
	pub.Created(id, 2, []diag.Record{{Descriptor: "X", Doc: 1}})
	pub.Removed(id, 2)

	for name, rec := range map[string]*Recorder{"a": a, "b": b} {
		events := rec.Events()
		if len(events) != 2 {
			t.Fatalf("subscriber %s: expected 2 events, got %d", name, len(events))
		}
		if events[0].Kind != EventCreated || events[1].Kind != EventRemoved {
			t.Fatalf("subscriber %s: wrong event order: %+v", name, events)
		}
	}
}

func TestSnapshotSequenceIncreases(t *testing.T) {
	pub := NewPublisher()
	rec := NewRecorder()
	pub.Subscribe(rec)

	id := NewIdentity("s", diag.Syntax, 1)
	for i := 0; i < 5; i++ {
		pub.Created(id, 0, nil)
	}
	events := rec.Events()
	for i := 1; i < len(events); i++ {
		if events[i].Created.Snapshot <= events[i-1].Created.Snapshot {
			t.Fatalf("snapshot did not increase at event %d: %d then %d",
				i, events[i-1].Created.Snapshot, events[i].Created.Snapshot)
		}
	}
}

func TestRemovedWithoutCreatedIsHarmless(t *testing.T) {
	pub := NewPublisher()
	rec := NewRecorder()
	pub.Subscribe(rec)

	id := NewIdentity("s", diag.Semantic, 42)
	pub.Removed(id, 0)

	if rec.Active(id) {
		t.Fatalf("identity must not be active after a bare removal")
	}
	if len(rec.Events()) != 1 {
		t.Fatalf("removal must still be delivered")
	}
}

func TestRepublishIdenticalBatchIsIdempotentForConsumers(t *testing.T) {
	pub := NewPublisher()
	rec := NewRecorder()
	pub.Subscribe(rec)

	id := NewIdentity("s", diag.Syntax, 1)
	batch := []diag.Record{{Descriptor: "X", Doc: 1, Message: "m"}}
	pub.Created(id, 0, batch)
	pub.Created(id, 0, batch)

	// The latest batch for the identity is what a consumer shows; receiving
	// it twice changes nothing observable.
	ev, ok := rec.Last(id)
	if !ok || ev.Kind != EventCreated {
		t.Fatalf("expected a created event for %v", id)
	}
	if len(ev.Created.Records) != 1 || ev.Created.Records[0].Descriptor != "X" {
		t.Fatalf("unexpected latest batch: %+v", ev.Created.Records)
	}
	if !rec.Active(id) {
		t.Fatalf("identity must stay active after republish")
	}
}

func TestConcurrentPublishIsSafe(t *testing.T) {
	pub := NewPublisher()
	rec := NewRecorder()
	pub.Subscribe(rec)

	const workers = 8
	const perWorker = 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			id := NewIdentity("s", diag.Syntax, source.DocumentID(w+1))
			for i := 0; i < perWorker; i++ {
				pub.Created(id, 0, nil)
			}
		}(w)
	}
	wg.Wait()

	if got := len(rec.Events()); got != workers*perWorker {
		t.Fatalf("expected %d events, got %d", workers*perWorker, got)
	}
}
