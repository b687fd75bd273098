package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag collects records for one analysis run, capped at a maximum size.
type Bag struct {
	items []Record
	max   uint16
}

// NewBag creates a bag that accepts at most max records.
func NewBag(max int) *Bag {
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		capped = ^uint16(0)
	}
	return &Bag{
		items: make([]Record, 0, min(max, 64)),
		max:   capped,
	}
}

// Add appends a record unless the cap is reached. Returns false when the
// record was not added.
func (b *Bag) Add(r Record) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, r)
	return true
}

// AddAll appends records until the cap is reached and returns how many were
// accepted.
func (b *Bag) AddAll(recs []Record) int {
	n := 0
	for _, r := range recs {
		if !b.Add(r) {
			break
		}
		n++
	}
	return n
}

func (b *Bag) Cap() uint16 {
	return b.max
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether the bag holds at least one error-level record.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// Items returns a read-only view of the collected records. Callers must not
// modify the returned slice.
func (b *Bag) Items() []Record {
	return b.items
}

// Sort orders records by document, start, end, severity (descending) and
// descriptor for a stable, deterministic result set.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		ri, rj := b.items[i], b.items[j]
		if ri.Doc != rj.Doc {
			return ri.Doc < rj.Doc
		}
		if ri.Span.Start != rj.Span.Start {
			return ri.Span.Start < rj.Span.Start
		}
		if ri.Span.End != rj.Span.End {
			return ri.Span.End < rj.Span.End
		}
		if ri.Severity != rj.Severity {
			return ri.Severity > rj.Severity
		}
		return ri.Descriptor < rj.Descriptor
	})
}

// Dedup drops records that repeat descriptor, span and message.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := b.items[:0]
	for _, r := range b.items {
		key := fmt.Sprintf("%s:%s:%s", r.Descriptor, r.Span.String(), r.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	b.items = out
}
