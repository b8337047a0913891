package theme

import (
	"slices"
	"strings"
)

// Registry is an immutable set of themes with a designated default.
// Merge returns a new Registry; the receiver is never modified, so a Registry
// can be shared between concurrent builds.
type Registry struct {
	themes    map[string]Theme
	defaultID string
}

// Resolve returns the theme registered under id, or the default theme when
// id is empty or unknown. It never fails.
func (r Registry) Resolve(id string) Theme {
	if t, ok := r.Lookup(id); ok {
		return t
	}
	if t, ok := r.themes[r.defaultID]; ok {
		return t
	}
	return modern
}

// Lookup reports whether id is registered. Ids are matched case-insensitively.
func (r Registry) Lookup(id string) (Theme, bool) {
	t, ok := r.themes[strings.ToLower(strings.TrimSpace(id))]
	return t, ok
}

// DefaultID returns the id answered for unknown templates.
func (r Registry) DefaultID() string {
	if r.defaultID == "" {
		return DefaultID
	}
	return r.defaultID
}

// IDs returns the registered ids in sorted order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r.themes))
	for id := range r.themes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Merge layers themes over r. Entries in themes replace built-ins with the
// same id.
func (r Registry) Merge(themes []Theme) Registry {
	merged := make(map[string]Theme, len(r.themes)+len(themes))
	for id, t := range r.themes {
		merged[id] = t
	}
	for _, t := range themes {
		merged[strings.ToLower(t.ID)] = t
	}
	return Registry{themes: merged, defaultID: r.DefaultID()}
}
