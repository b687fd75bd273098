package diag

// Descriptor is the static metadata a diagnostic category declares ahead of
// time. Every analyzer publishes a bounded, enumerable set of descriptors at
// construction; the host requires this even when the real category space is
// open-ended (see internal/hosted for the reservation trick).
type Descriptor struct {
	// ID is the stable category identifier, e.g. "TXT0002".
	ID string
	// Severity is the default severity; individual records may override it.
	Severity Severity
	// Title is a short human-readable name of the category. Reserved
	// placeholder descriptors leave it empty.
	Title string
	// Description explains the category in one or two sentences.
	Description string
}

// Placeholder reports whether the descriptor is a reserved slot without
// static presentation text.
func (d Descriptor) Placeholder() bool {
	return d.Title == ""
}
