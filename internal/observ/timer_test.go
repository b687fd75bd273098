package observ

import (
	"strings"
	"testing"
)

func TestReportKeepsPhaseOrderAndNotes(t *testing.T) {
	tm := NewTimer()
	stopLoad := tm.Begin(PhaseLoad)
	stopLoad("3 documents")
	stopAnalyze := tm.Begin(PhaseAnalyze)
	stopAnalyze("")
	stopReport := tm.Begin(PhaseReport)
	stopReport("")

	rep := tm.Report()
	if len(rep.Phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(rep.Phases))
	}
	order := []Phase{PhaseLoad, PhaseAnalyze, PhaseReport}
	for i, want := range order {
		if rep.Phases[i].Phase != want {
			t.Fatalf("phase %d: got %s, want %s", i, rep.Phases[i].Phase, want)
		}
		if rep.Phases[i].DurationMS < 0 {
			t.Fatalf("phase %s has negative duration", want)
		}
	}
	if rep.Phases[0].Note != "3 documents" {
		t.Fatalf("note lost: %+v", rep.Phases[0])
	}
}

func TestEmptyTimerReportsNothing(t *testing.T) {
	rep := NewTimer().Report()
	if len(rep.Phases) != 0 || rep.TotalMS != 0 {
		t.Fatalf("empty timer must produce an empty report, got %+v", rep)
	}
}

func TestSummaryListsEveryPhaseAndTotal(t *testing.T) {
	tm := NewTimer()
	stop := tm.Begin(PhaseLoad)
	stop("2 documents")

	s := tm.Summary()
	for _, want := range []string{"timings:", "load", "(2 documents)", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}
