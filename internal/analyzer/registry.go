package analyzer

import (
	"fmt"
	"sort"

	"flare/internal/source"
)

// Registry maps a language to its diagnostics capabilities. It is built at
// startup and read-only afterwards, so Resolve may be called concurrently by
// any number of in-flight document analyses.
//
// A language supplies either a native analyzer or externally-hosted
// analyzers, never both; registration enforces the exclusivity.
type Registry struct {
	native   map[string]Capability
	external map[string][]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		native:   make(map[string]Capability),
		external: make(map[string][]Capability),
	}
}

// RegisterNative binds the language's built-in analyzer at the default
// priority.
func (r *Registry) RegisterNative(language string, a Analyzer) error {
	if a == nil {
		return fmt.Errorf("register native for %q: nil analyzer", language)
	}
	if _, ok := r.native[language]; ok {
		return fmt.Errorf("register native for %q: already registered", language)
	}
	if len(r.external[language]) > 0 {
		return fmt.Errorf("register native for %q: language already has an external analyzer", language)
	}
	r.native[language] = Capability{Analyzer: a, Priority: DefaultPriority}
	return nil
}

// RegisterExternal binds an externally-hosted analyzer for a language that
// has no native one. Lower priority values are resolved first.
func (r *Registry) RegisterExternal(language string, a Analyzer, priority int) error {
	if a == nil {
		return fmt.Errorf("register external for %q: nil analyzer", language)
	}
	if _, ok := r.native[language]; ok {
		return fmt.Errorf("register external for %q: language already has a native analyzer", language)
	}
	r.external[language] = append(r.external[language], Capability{Analyzer: a, Priority: priority})
	return nil
}

// Resolve returns the ordered capabilities applicable to the document's
// language: the native analyzer if present, otherwise the external analyzers
// by ascending priority, otherwise nothing. Resolution is side-effect-free
// and cheap enough to run on every analysis trigger.
func (r *Registry) Resolve(doc *source.Document) []Capability {
	if doc == nil {
		return nil
	}
	if cap, ok := r.native[doc.Language]; ok {
		return []Capability{cap}
	}
	ext := r.external[doc.Language]
	if len(ext) == 0 {
		return nil
	}
	out := make([]Capability, len(ext))
	copy(out, ext)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Languages returns every language with at least one capability, sorted.
func (r *Registry) Languages() []string {
	seen := make(map[string]struct{}, len(r.native)+len(r.external))
	for lang := range r.native {
		seen[lang] = struct{}{}
	}
	for lang := range r.external {
		seen[lang] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
