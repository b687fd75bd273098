// Package diagfmt renders diagnostic records for the CLI.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"flare/internal/diag"
	"flare/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	pathColor = color.New(color.Bold)
)

// Pretty writes one record per line:
//
//	<path>:<line>:<col>: <SEV> <DESCRIPTOR>: <message>
//
// ShowKind inserts the producing analysis kind in brackets before the
// severity. Records are printed in the order given; callers sort via
// diag.Bag first.
func Pretty(w io.Writer, records []diag.Record, ws *source.Workspace, opts PrettyOpts) {
	for _, r := range records {
		path, pos := locate(ws, r, opts.PathMode)
		sev := r.Severity.String()
		if opts.Color {
			sev = severityColor(r.Severity).Sprint(sev)
			path = pathColor.Sprint(path)
		}
		if opts.ShowKind {
			fmt.Fprintf(w, "%s:%d:%d: [%s] %s %s: %s\n", path, pos.Line, pos.Col, r.Kind, sev, r.Descriptor, r.Message)
			continue
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, pos.Line, pos.Col, sev, r.Descriptor, r.Message)
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func locate(ws *source.Workspace, r diag.Record, mode PathMode) (string, source.LineCol) {
	doc := ws.Get(r.Doc)
	if doc == nil {
		return fmt.Sprintf("doc%d", r.Doc), source.LineCol{Line: 1, Col: r.Span.Start + 1}
	}
	return displayPath(doc.Path, mode), doc.LineCol(r.Span.Start)
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if rel, err := filepath.Rel(".", path); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	default:
		// Auto: relative when that is shorter.
		if rel, err := filepath.Rel(".", path); err == nil && len(rel) < len(path) {
			return rel
		}
	}
	return path
}
