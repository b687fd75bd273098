package driver

import (
	"flare/internal/diag"
	"flare/internal/source"
)

// Options are the global analysis switches. Syntax analysis is cheap and on
// by default; semantic analysis is expensive and gated.
type Options struct {
	// Syntax enables the structure-only pass for every open document.
	Syntax bool
	// Semantic enables the full pass for every open document.
	Semantic bool
	// ScriptSemantic enables the full pass for script documents even when
	// Semantic is off.
	ScriptSemantic bool
}

// DefaultOptions matches the host defaults: syntax on, semantics on,
// script-only semantics off.
func DefaultOptions() Options {
	return Options{Syntax: true, Semantic: true, ScriptSemantic: false}
}

// eligible reports whether the document qualifies for the given analysis
// kind under these options. Ineligibility is a silent skip, never an error.
func (o Options) eligible(doc *source.Document, kind diag.Kind) bool {
	switch kind {
	case diag.Syntax:
		return o.Syntax
	case diag.Semantic:
		if o.Semantic {
			return true
		}
		return doc.Kind == source.KindScript && o.ScriptSemantic
	}
	return false
}

// Option names one global analysis switch for OptionChanged signals.
type Option uint8

const (
	// OptSyntaxEnabled is the syntax-analysis switch.
	OptSyntaxEnabled Option = iota + 1
	// OptSemanticEnabled is the semantic-analysis switch.
	OptSemanticEnabled
	// OptScriptSemanticEnabled is the script-only semantic switch.
	OptScriptSemanticEnabled
)

func (opt Option) String() string {
	switch opt {
	case OptSyntaxEnabled:
		return "syntax-enabled"
	case OptSemanticEnabled:
		return "semantic-enabled"
	case OptScriptSemanticEnabled:
		return "script-semantic-enabled"
	}
	return "unknown"
}

// relevant reports whether a change to opt affects analysis eligibility.
// Changes to anything else must not cause recomputation.
func relevant(opt Option) bool {
	switch opt {
	case OptSyntaxEnabled, OptSemanticEnabled, OptScriptSemanticEnabled:
		return true
	}
	return false
}

func (o *Options) set(opt Option, value bool) {
	switch opt {
	case OptSyntaxEnabled:
		o.Syntax = value
	case OptSemanticEnabled:
		o.Semantic = value
	case OptScriptSemanticEnabled:
		o.ScriptSemantic = value
	}
}

// Reason describes why a reanalysis of an open document was requested.
type Reason uint8

const (
	// ReasonContentEdit is an ordinary text change.
	ReasonContentEdit Reason = iota + 1
	// ReasonDependencyChange is a change in something the document refers to.
	ReasonDependencyChange
	// ReasonSemanticsInvalidated requests a full semantic re-run in addition
	// to the syntax pass.
	ReasonSemanticsInvalidated
)

func (r Reason) String() string {
	switch r {
	case ReasonContentEdit:
		return "content-edit"
	case ReasonDependencyChange:
		return "dependency-change"
	case ReasonSemanticsInvalidated:
		return "semantics-invalidated"
	}
	return "unknown"
}
