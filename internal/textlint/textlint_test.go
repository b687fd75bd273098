package textlint

import (
	"context"
	"strings"
	"testing"

	"flare/internal/diag"
	"flare/internal/source"
)

func doc(content string) *source.Document {
	return &source.Document{ID: 1, Project: 1, Path: "t.txt", Language: "text", Content: []byte(content)}
}

func codesOf(recs []diag.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Descriptor
	}
	return out
}

func TestSyntaxChecks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"clean", "hello\nworld\n", nil},
		{"tab indent", "\tindented\n", []string{CodeTabIndent}},
		{"long line", strings.Repeat("x", MaxLineLength+1) + "\n", []string{CodeLongLine}},
		{"trailing space", "text  \n", []string{CodeTrailingWS}},
		{"todo marker", "TODO fix this\n", []string{CodeTodoMarker}},
		{"fixme marker", "see FIXME below\n", []string{CodeTodoMarker}},
		{"no final newline", "last", nil},
		{"empty", "", nil},
	}
	a := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := a.AnalyzeSyntax(context.Background(), doc(tt.content))
			if err != nil {
				t.Fatalf("AnalyzeSyntax: %v", err)
			}
			got := codesOf(recs)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSyntaxSpans(t *testing.T) {
	a := New()
	recs, err := a.AnalyzeSyntax(context.Background(), doc("ok\nbad  \n"))
	if err != nil {
		t.Fatalf("AnalyzeSyntax: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.Span.Start != 6 || r.Span.End != 8 {
		t.Fatalf("trailing whitespace span should cover the blanks, got [%d,%d)", r.Span.Start, r.Span.End)
	}
	if r.Doc != 1 || r.Project != 1 {
		t.Fatalf("record not stamped with document identity: %+v", r)
	}
}

func TestSemanticDelimiters(t *testing.T) {
	a := New()

	recs, err := a.AnalyzeSemantics(context.Background(), doc("(ok [nested] {fine})"))
	if err != nil {
		t.Fatalf("AnalyzeSemantics: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("balanced document should be clean, got %v", codesOf(recs))
	}

	recs, err = a.AnalyzeSemantics(context.Background(), doc("a) (b"))
	if err != nil {
		t.Fatalf("AnalyzeSemantics: %v", err)
	}
	got := codesOf(recs)
	if len(got) != 2 || got[0] != CodeUnbalanced || got[1] != CodeUnclosed {
		t.Fatalf("expected unbalanced then unclosed, got %v", got)
	}

	// Mismatched closer reports against the closer, opener stays open.
	recs, err = a.AnalyzeSemantics(context.Background(), doc("(]"))
	if err != nil {
		t.Fatalf("AnalyzeSemantics: %v", err)
	}
	got = codesOf(recs)
	if len(got) != 2 || got[0] != CodeUnbalanced || got[1] != CodeUnclosed {
		t.Fatalf("expected unbalanced then unclosed for mismatch, got %v", got)
	}
}

func TestSemanticDuplicateHeadings(t *testing.T) {
	a := New()
	recs, err := a.AnalyzeSemantics(context.Background(), doc("# Intro\ntext\n## Intro\n# Other\n"))
	if err != nil {
		t.Fatalf("AnalyzeSemantics: %v", err)
	}
	got := codesOf(recs)
	if len(got) != 1 || got[0] != CodeDupHeading {
		t.Fatalf("expected one duplicate heading, got %v", got)
	}
}

func TestCancellationStopsAnalysis(t *testing.T) {
	a := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.AnalyzeSyntax(ctx, doc("TODO\n")); err == nil {
		t.Fatalf("cancelled syntax pass must report the context error")
	}
	if _, err := a.AnalyzeSemantics(ctx, doc("(")); err == nil {
		t.Fatalf("cancelled semantic pass must report the context error")
	}
}

func TestDescriptorsAreFixedAndCopied(t *testing.T) {
	a := New()
	first := a.Descriptors()
	first[0].ID = "mutated"
	second := a.Descriptors()
	if second[0].ID == "mutated" {
		t.Fatalf("Descriptors must return a copy")
	}
	if len(second) != 7 {
		t.Fatalf("expected 7 descriptors, got %d", len(second))
	}
}
