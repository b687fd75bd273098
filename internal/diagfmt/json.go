package diagfmt

import (
	"encoding/json"
	"io"

	"flare/internal/diag"
	"flare/internal/source"
)

type jsonRecord struct {
	Descriptor string `json:"descriptor"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Path       string `json:"path"`
	Start      uint32 `json:"start"`
	End        uint32 `json:"end"`
	Line       uint32 `json:"line,omitempty"`
	Col        uint32 `json:"col,omitempty"`
}

// JSON writes records as a JSON array.
func JSON(w io.Writer, records []diag.Record, ws *source.Workspace, opts JSONOpts) error {
	out := make([]jsonRecord, 0, len(records))
	for i, r := range records {
		if opts.Max > 0 && i >= opts.Max {
			break
		}
		jr := jsonRecord{
			Descriptor: r.Descriptor,
			Severity:   r.Severity.String(),
			Message:    r.Message,
			Start:      r.Span.Start,
			End:        r.Span.End,
		}
		if doc := ws.Get(r.Doc); doc != nil {
			jr.Path = doc.Path
			if opts.IncludePositions {
				pos := doc.LineCol(r.Span.Start)
				jr.Line = pos.Line
				jr.Col = pos.Col
			}
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
