// Package textlint is the built-in plain-text analyzer. It gives the
// dispatch pipeline a concrete native capability: the syntax pass checks
// per-line lexical hygiene, the semantic pass checks whole-document
// structure.
package textlint

import (
	"bytes"
	"context"
	"fmt"

	"flare/internal/diag"
	"flare/internal/source"
)

// Descriptor IDs. The set is fixed at construction, as the host requires.
const (
	CodeTabIndent  = "TXT0001"
	CodeLongLine   = "TXT0002"
	CodeTrailingWS = "TXT0003"
	CodeTodoMarker = "TXT0004"
	CodeUnbalanced = "TXT0101"
	CodeUnclosed   = "TXT0102"
	CodeDupHeading = "TXT0103"
)

// MaxLineLength is the syntax-pass line length limit in bytes.
const MaxLineLength = 100

var descriptors = []diag.Descriptor{
	{ID: CodeTabIndent, Severity: diag.SevWarning, Title: "tab indentation", Description: "line is indented with tab characters"},
	{ID: CodeLongLine, Severity: diag.SevWarning, Title: "long line", Description: "line exceeds the maximum length"},
	{ID: CodeTrailingWS, Severity: diag.SevInfo, Title: "trailing whitespace", Description: "line ends with whitespace"},
	{ID: CodeTodoMarker, Severity: diag.SevInfo, Title: "todo marker", Description: "line contains a TODO or FIXME marker"},
	{ID: CodeUnbalanced, Severity: diag.SevError, Title: "unbalanced delimiter", Description: "closing delimiter without a matching opener"},
	{ID: CodeUnclosed, Severity: diag.SevError, Title: "unclosed delimiter", Description: "delimiter still open at end of document"},
	{ID: CodeDupHeading, Severity: diag.SevWarning, Title: "duplicate heading", Description: "heading text repeats an earlier heading"},
}

// Analyzer implements analyzer.Analyzer for plain text and markdown-ish
// documents.
type Analyzer struct{}

// New returns the built-in text analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

func (*Analyzer) Name() string {
	return "textlint"
}

// Descriptors returns the analyzer's fixed category set.
func (*Analyzer) Descriptors() []diag.Descriptor {
	out := make([]diag.Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// AnalyzeSyntax checks each line independently.
func (*Analyzer) AnalyzeSyntax(ctx context.Context, doc *source.Document) ([]diag.Record, error) {
	var recs []diag.Record
	for _, ln := range lines(doc.Content) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := doc.Content[ln.start:ln.end]
		if len(text) > 0 && text[0] == '\t' {
			recs = append(recs, record(doc, CodeTabIndent, diag.SevWarning, ln.start, ln.start+1,
				"line indented with a tab"))
		}
		if ln.end-ln.start > MaxLineLength {
			recs = append(recs, record(doc, CodeLongLine, diag.SevWarning, ln.start+MaxLineLength, ln.end,
				fmt.Sprintf("line is %d bytes, limit is %d", ln.end-ln.start, MaxLineLength)))
		}
		if trimmed := bytes.TrimRight(text, " \t"); len(trimmed) < len(text) {
			recs = append(recs, record(doc, CodeTrailingWS, diag.SevInfo, ln.start+uint32(len(trimmed)), ln.end,
				"trailing whitespace"))
		}
		if idx := todoIndex(text); idx >= 0 {
			recs = append(recs, record(doc, CodeTodoMarker, diag.SevInfo, ln.start+uint32(idx), ln.end,
				"unresolved TODO/FIXME marker"))
		}
	}
	return recs, nil
}

// AnalyzeSemantics checks cross-line structure: delimiter balance and
// duplicate headings.
func (*Analyzer) AnalyzeSemantics(ctx context.Context, doc *source.Document) ([]diag.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs := checkDelimiters(doc)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs = append(recs, checkHeadings(doc)...)
	return recs, nil
}

type lineRange struct {
	start uint32
	end   uint32 // exclusive, without the newline
}

func lines(content []byte) []lineRange {
	var out []lineRange
	start := uint32(0)
	for i, b := range content {
		if b == '\n' {
			out = append(out, lineRange{start: start, end: uint32(i)})
			start = uint32(i) + 1
		}
	}
	if int(start) < len(content) {
		out = append(out, lineRange{start: start, end: uint32(len(content))})
	}
	return out
}

func todoIndex(line []byte) int {
	if i := bytes.Index(line, []byte("TODO")); i >= 0 {
		return i
	}
	return bytes.Index(line, []byte("FIXME"))
}

func checkDelimiters(doc *source.Document) []diag.Record {
	type opener struct {
		ch  byte
		pos uint32
	}
	var stack []opener
	var recs []diag.Record
	for i, b := range doc.Content {
		switch b {
		case '(', '[', '{':
			stack = append(stack, opener{ch: b, pos: uint32(i)})
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1].ch != openerFor(b) {
				recs = append(recs, record(doc, CodeUnbalanced, diag.SevError, uint32(i), uint32(i)+1,
					fmt.Sprintf("unmatched %q", string(b))))
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}
	for _, op := range stack {
		recs = append(recs, record(doc, CodeUnclosed, diag.SevError, op.pos, op.pos+1,
			fmt.Sprintf("%q is never closed", string(op.ch))))
	}
	return recs
}

func openerFor(closer byte) byte {
	switch closer {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	}
	return 0
}

func checkHeadings(doc *source.Document) []diag.Record {
	seen := make(map[string]bool)
	var recs []diag.Record
	for _, ln := range lines(doc.Content) {
		text := doc.Content[ln.start:ln.end]
		if len(text) == 0 || text[0] != '#' {
			continue
		}
		title := string(bytes.TrimSpace(bytes.TrimLeft(text, "#")))
		if title == "" {
			continue
		}
		if seen[title] {
			recs = append(recs, record(doc, CodeDupHeading, diag.SevWarning, ln.start, ln.end,
				fmt.Sprintf("heading %q repeats an earlier heading", title)))
			continue
		}
		seen[title] = true
	}
	return recs
}

func record(doc *source.Document, code string, sev diag.Severity, start, end uint32, msg string) diag.Record {
	return diag.Record{
		Descriptor: code,
		Severity:   sev,
		Message:    msg,
		Span:       source.Span{Doc: doc.ID, Start: start, End: end},
		Doc:        doc.ID,
		Project:    doc.Project,
	}
}
