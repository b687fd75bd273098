package diag

import "flare/internal/source"

// Record is one concrete finding. It is produced fresh on every analysis run
// and never mutated afterwards.
//
// Severity and Message are carried inline rather than looked up through the
// descriptor: externally-hosted analyzers report through placeholder
// descriptor slots whose static text is empty.
type Record struct {
	Descriptor string
	// Kind is the analysis pass that produced the record; the run stamps it
	// at publish time.
	Kind     Kind
	Severity Severity
	Message  string
	Span     source.Span
	Doc      source.DocumentID
	Project  source.ProjectID
}

// New constructs a record for the given document.
func New(descriptor string, sev Severity, span source.Span, msg string) Record {
	return Record{
		Descriptor: descriptor,
		Severity:   sev,
		Message:    msg,
		Span:       span,
		Doc:        span.Doc,
	}
}
