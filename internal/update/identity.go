// Package update defines the diagnostic identity and the one-way update
// protocol the pipeline publishes to consumers.
package update

import (
	"fmt"

	"flare/internal/diag"
	"flare/internal/source"
)

// Identity tags one batch of diagnostics so that a later batch can supersede
// it and a removal can clear it without ambiguity.
//
// The composite key is (workspace discriminator, analysis kind, document).
// Two identities are equal iff all three components match; identities from
// different workspaces never compare equal even for the same kind and
// document numbering, so a freshly reopened workspace can never be polluted
// by a previous session's batches. Identity is comparable and safe to use as
// a map key.
type Identity struct {
	Workspace string
	Kind      diag.Kind
	Doc       source.DocumentID
}

// NewIdentity builds the identity for one document and kind within a
// workspace session.
func NewIdentity(workspace string, kind diag.Kind, doc source.DocumentID) Identity {
	return Identity{Workspace: workspace, Kind: kind, Doc: doc}
}

func (id Identity) String() string {
	return fmt.Sprintf("%s/%s/doc%d", id.Workspace, id.Kind, id.Doc)
}
