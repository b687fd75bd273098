package hosted

import (
	"context"
	"fmt"
	"sync"

	"flare/internal/analyzer"
	"flare/internal/diag"
	"flare/internal/source"
)

const (
	// DefaultReservation is the default number of descriptor slots reserved
	// per adapter.
	DefaultReservation = 4096
	// Priority is more eager than analyzer.DefaultPriority: externally
	// hosted languages have no competing native analyzer and must not be
	// starved behind default-priority capabilities.
	Priority = analyzer.DefaultPriority - 40
)

// Options configures an Adapter.
type Options struct {
	// Reservation is how many descriptor slots to pre-register. Zero means
	// DefaultReservation.
	Reservation int
	// Prefix is the slot ID prefix, e.g. "EXT" yields "EXT0000"... Zero
	// value means "EXT".
	Prefix string
}

// Adapter wraps an Engine so it satisfies analyzer.Analyzer.
//
// The host requires every analyzer to declare a fixed, finite descriptor set
// at construction, but the engine's real codes are unknown until analysis
// time. The adapter therefore pre-registers a contiguous range of placeholder
// descriptors and assigns engine codes to slots on first sight. Slot
// assignment is stable for the adapter's lifetime; records carry their own
// message and severity inline, so the placeholders are declared capacity, not
// presentation text.
//
// A finding whose code arrives after every slot is taken is dropped and
// counted. The rest of the batch is unaffected.
type Adapter struct {
	engine Engine
	slots  []diag.Descriptor

	mu      sync.Mutex
	codes   map[string]int // engine code -> slot index
	next    int
	dropped uint64
}

// NewAdapter wraps engine with a reserved descriptor range.
func NewAdapter(engine Engine, opts Options) *Adapter {
	n := opts.Reservation
	if n <= 0 {
		n = DefaultReservation
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "EXT"
	}
	slots := make([]diag.Descriptor, n)
	for i := range slots {
		slots[i] = diag.Descriptor{
			ID:       fmt.Sprintf("%s%04d", prefix, i),
			Severity: diag.SevWarning,
		}
	}
	return &Adapter{
		engine: engine,
		slots:  slots,
		codes:  make(map[string]int),
	}
}

// Name identifies the adapter by its engine.
func (a *Adapter) Name() string {
	return "hosted:" + a.engine.Name()
}

// Descriptors returns the full reserved range, exactly Reservation entries.
func (a *Adapter) Descriptors() []diag.Descriptor {
	out := make([]diag.Descriptor, len(a.slots))
	copy(out, a.slots)
	return out
}

// Priority returns the adapter's scheduling priority for registration.
func (a *Adapter) Priority() int {
	return Priority
}

// Dropped returns how many findings were discarded because the reservation
// was exhausted.
func (a *Adapter) Dropped() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

// SlotFor returns the reserved slot ID assigned to an engine code, if any.
func (a *Adapter) SlotFor(code string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx, ok := a.codes[code]
	if !ok {
		return "", false
	}
	return a.slots[idx].ID, true
}

func (a *Adapter) AnalyzeSyntax(ctx context.Context, doc *source.Document) ([]diag.Record, error) {
	findings, err := a.engine.CheckSyntax(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: syntax check: %w", a.Name(), err)
	}
	return a.convert(doc, findings), nil
}

func (a *Adapter) AnalyzeSemantics(ctx context.Context, doc *source.Document) ([]diag.Record, error) {
	findings, err := a.engine.CheckSemantics(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: semantic check: %w", a.Name(), err)
	}
	return a.convert(doc, findings), nil
}

func (a *Adapter) convert(doc *source.Document, findings []Finding) []diag.Record {
	if len(findings) == 0 {
		return nil
	}
	out := make([]diag.Record, 0, len(findings))
	for _, f := range findings {
		slot, ok := a.assign(f.Code)
		if !ok {
			continue
		}
		out = append(out, diag.Record{
			Descriptor: slot,
			Severity:   f.Severity,
			Message:    fmt.Sprintf("%s: %s", f.Code, f.Message),
			Span:       source.Span{Doc: doc.ID, Start: f.Start, End: f.End},
			Doc:        doc.ID,
			Project:    doc.Project,
		})
	}
	return out
}

// assign maps an engine code onto a reserved slot, allocating the next free
// slot on first sight. The mapping never changes once made.
func (a *Adapter) assign(code string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if idx, ok := a.codes[code]; ok {
		return a.slots[idx].ID, true
	}
	if a.next >= len(a.slots) {
		a.dropped++
		return "", false
	}
	idx := a.next
	a.next++
	a.codes[code] = idx
	return a.slots[idx].ID, true
}
