package diag

import "fmt"

// Kind is the granularity of an analysis pass. Syntax depends only on the
// document's own structure; Semantic needs full binding information and is
// strictly more expensive.
type Kind uint8

const (
	// Syntax is the cheap, structure-only pass.
	Syntax Kind = iota
	// Semantic is the full-fidelity pass.
	Semantic
)

// Kinds lists every analysis kind in scheduling order.
var Kinds = [...]Kind{Syntax, Semantic}

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	}
	return "unknown"
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "syntax":
		return Syntax, nil
	case "semantic":
		return Semantic, nil
	default:
		return Syntax, fmt.Errorf("invalid analysis kind: %q (expected: syntax|semantic)", s)
	}
}
