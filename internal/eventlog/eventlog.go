// Package eventlog journals every update event to an append-only msgpack
// stream. The journal records this session's event flow for debugging and
// tooling; it is not restored state.
package eventlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"flare/internal/diag"
	"flare/internal/update"
)

// Current schema version - increment when Entry format changes.
const schemaVersion uint16 = 1

// Entry is one journaled event.
type Entry struct {
	Schema    uint16
	Kind      uint8 // update.EventKind
	Workspace string
	Analysis  uint8 // diag.Kind
	Doc       uint32
	Project   uint32
	Snapshot  int64
	Records   []Record
}

// Record is the journaled form of diag.Record.
type Record struct {
	Descriptor string
	Severity   uint8
	Message    string
	Start      uint32
	End        uint32
}

// Writer is an update.Subscriber that appends every event to a file.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *msgpack.Encoder
}

// Create opens (truncating) a journal at path.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}
	return &Writer{f: f, enc: msgpack.NewEncoder(f)}, nil
}

func (w *Writer) DiagnosticsCreated(ev update.Created) {
	entry := Entry{
		Schema:    schemaVersion,
		Kind:      uint8(update.EventCreated),
		Workspace: ev.Workspace,
		Analysis:  uint8(ev.ID.Kind),
		Doc:       uint32(ev.Doc),
		Project:   uint32(ev.Project),
		Snapshot:  ev.Snapshot,
		Records:   convertRecords(ev.Records),
	}
	w.append(entry)
}

func (w *Writer) DiagnosticsRemoved(ev update.Removed) {
	entry := Entry{
		Schema:    schemaVersion,
		Kind:      uint8(update.EventRemoved),
		Workspace: ev.Workspace,
		Analysis:  uint8(ev.ID.Kind),
		Doc:       uint32(ev.Doc),
		Project:   uint32(ev.Project),
	}
	w.append(entry)
}

func (w *Writer) append(entry Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return
	}
	// A failed append disables the journal rather than the pipeline.
	if err := w.enc.Encode(entry); err != nil {
		w.enc = nil
	}
}

// Close flushes and closes the journal file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enc = nil
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func convertRecords(recs []diag.Record) []Record {
	if len(recs) == 0 {
		return nil
	}
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = Record{
			Descriptor: r.Descriptor,
			Severity:   uint8(r.Severity),
			Message:    r.Message,
			Start:      r.Span.Start,
			End:        r.Span.End,
		}
	}
	return out
}

// ReadAll decodes every entry from a journal file. Entries with an unknown
// schema version are rejected.
func ReadAll(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()
	dec := msgpack.NewDecoder(f)
	var out []Entry
	for {
		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("failed to decode event log entry: %w", err)
		}
		if entry.Schema != schemaVersion {
			return nil, fmt.Errorf("event log schema %d not supported (want %d)", entry.Schema, schemaVersion)
		}
		out = append(out, entry)
	}
}
