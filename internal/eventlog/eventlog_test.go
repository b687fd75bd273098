package eventlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"flare/internal/diag"
	"flare/internal/update"
)

func TestJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	id := update.NewIdentity("sess", diag.Syntax, 7)
	w.DiagnosticsCreated(update.Created{
		ID:        id,
		Workspace: "sess",
		Snapshot:  3,
		Project:   2,
		Doc:       7,
		Records: []diag.Record{
			{Descriptor: "TXT0001", Severity: diag.SevWarning, Message: "tab"},
		},
	})
	w.DiagnosticsRemoved(update.Removed{ID: id, Workspace: "sess", Project: 2, Doc: 7})
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	created := entries[0]
	if created.Kind != uint8(update.EventCreated) || created.Workspace != "sess" {
		t.Fatalf("unexpected created entry: %+v", created)
	}
	if created.Doc != 7 || created.Project != 2 || created.Snapshot != 3 {
		t.Fatalf("created entry lost identity fields: %+v", created)
	}
	if len(created.Records) != 1 || created.Records[0].Descriptor != "TXT0001" {
		t.Fatalf("created entry lost records: %+v", created.Records)
	}

	removed := entries[1]
	if removed.Kind != uint8(update.EventRemoved) || len(removed.Records) != 0 {
		t.Fatalf("unexpected removed entry: %+v", removed)
	}
}

func TestReadAllRejectsUnknownSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(Entry{Schema: schemaVersion + 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	if _, err := ReadAll(path); err == nil {
		t.Fatalf("expected a schema mismatch error")
	}
}

func TestWriteAfterCloseIsSilentlyDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	id := update.NewIdentity("sess", diag.Syntax, 1)
	w.DiagnosticsRemoved(update.Removed{ID: id, Workspace: "sess", Doc: 1})

	entries, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("closed journal must not grow, got %d entries", len(entries))
	}
}
