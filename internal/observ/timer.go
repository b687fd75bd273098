// Package observ times the check pipeline's coarse stages for --timings
// output.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase names one stage of a check run.
type Phase string

const (
	// PhaseLoad covers manifest discovery, file collection and workspace
	// population.
	PhaseLoad Phase = "load"
	// PhaseAnalyze covers document dispatch through the orchestrator.
	PhaseAnalyze Phase = "analyze"
	// PhaseReport covers rendering of the published diagnostics.
	PhaseReport Phase = "report"
)

type span struct {
	phase Phase
	start time.Time
	dur   time.Duration
	note  string
}

// Timer accumulates phase timings. Phases are timed sequentially by the
// check command; Timer is not safe for concurrent use.
type Timer struct {
	spans []span
}

// NewTimer creates an empty timer.
func NewTimer() *Timer { return &Timer{} }

// Begin starts timing a phase and returns the function that stops it. The
// note passed to the stop function is attached to the finished phase.
func (t *Timer) Begin(phase Phase) func(note string) {
	i := len(t.spans)
	t.spans = append(t.spans, span{phase: phase, start: time.Now()})
	return func(note string) {
		s := &t.spans[i]
		s.dur = time.Since(s.start)
		s.note = note
	}
}

// PhaseTiming is the serializable form of one finished phase.
type PhaseTiming struct {
	Phase      Phase   `json:"phase"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates every phase with a total.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseTiming `json:"phases"`
}

// Report builds the aggregated view in milliseconds.
func (t *Timer) Report() Report {
	if len(t.spans) == 0 {
		return Report{}
	}
	rep := Report{Phases: make([]PhaseTiming, len(t.spans))}
	var total time.Duration
	for i, s := range t.spans {
		total += s.dur
		rep.Phases[i] = PhaseTiming{
			Phase:      s.phase,
			DurationMS: millis(s.dur),
			Note:       s.note,
		}
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders the report for stderr.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "  %-10s %8.2f ms", p.Phase, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(&b, "  (%s)", p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-10s %8.2f ms\n", "total", rep.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
