package update

import (
	"testing"

	"flare/internal/diag"
)

func TestIdentityEquality(t *testing.T) {
	base := NewIdentity("session-a", diag.Syntax, 7)
	tests := []struct {
		name  string
		other Identity
		equal bool
	}{
		{"same components", NewIdentity("session-a", diag.Syntax, 7), true},
		{"different workspace", NewIdentity("session-b", diag.Syntax, 7), false},
		{"different kind", NewIdentity("session-a", diag.Semantic, 7), false},
		{"different document", NewIdentity("session-a", diag.Syntax, 8), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base == tt.other; got != tt.equal {
				t.Fatalf("%v == %v: got %t, want %t", base, tt.other, got, tt.equal)
			}
		})
	}
}

func TestIdentityAsMapKey(t *testing.T) {
	m := map[Identity]int{}
	m[NewIdentity("s", diag.Syntax, 1)] = 1
	m[NewIdentity("s", diag.Semantic, 1)] = 2
	m[NewIdentity("s", diag.Syntax, 1)] = 3
	if len(m) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d", len(m))
	}
	if m[NewIdentity("s", diag.Syntax, 1)] != 3 {
		t.Fatalf("equal identities must collide in a map")
	}
}
