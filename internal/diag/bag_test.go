package diag

import (
	"testing"

	"flare/internal/source"
)

func rec(desc string, doc source.DocumentID, start, end uint32, sev Severity) Record {
	return Record{
		Descriptor: desc,
		Severity:   sev,
		Message:    "m",
		Span:       source.Span{Doc: doc, Start: start, End: end},
		Doc:        doc,
	}
}

func TestBagRespectsCap(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(rec("A", 1, 0, 1, SevInfo)) || !bag.Add(rec("B", 1, 1, 2, SevInfo)) {
		t.Fatalf("first two adds should succeed")
	}
	if bag.Add(rec("C", 1, 2, 3, SevInfo)) {
		t.Fatalf("add beyond cap should fail")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(rec("Z", 2, 0, 1, SevInfo))
	bag.Add(rec("B", 1, 5, 6, SevWarning))
	bag.Add(rec("A", 1, 5, 6, SevError))
	bag.Add(rec("C", 1, 0, 1, SevInfo))
	bag.Sort()

	items := bag.Items()
	want := []string{"C", "A", "B", "Z"}
	for i, desc := range want {
		if items[i].Descriptor != desc {
			t.Fatalf("position %d: got %s, want %s (items: %+v)", i, items[i].Descriptor, desc, items)
		}
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(rec("A", 1, 0, 1, SevWarning))
	bag.Add(rec("A", 1, 0, 1, SevWarning))
	bag.Add(rec("A", 1, 2, 3, SevWarning))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 records after dedup, got %d", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := NewBag(10)
	bag.Add(rec("A", 1, 0, 1, SevWarning))
	if bag.HasErrors() {
		t.Fatalf("warnings are not errors")
	}
	bag.Add(rec("B", 1, 1, 2, SevError))
	if !bag.HasErrors() {
		t.Fatalf("expected HasErrors after adding an error")
	}
}
