package highlight

import (
	"sort"
	"strings"
)

// Registry resolves code-fence language tags to rulesets. Lookups are
// case-insensitive and follow aliases. A tag with no binding means the
// block is styled plain; that is a supported outcome, not an error.
//
// A registry is built once at startup and read afterwards, so lookups
// need no locking on the document pipeline.
type Registry struct {
	byTag map[string]*Ruleset
}

// NewRegistry returns a registry preloaded with the built-in rulesets.
func NewRegistry() *Registry {
	r := &Registry{byTag: make(map[string]*Ruleset)}
	for _, rs := range builtins() {
		r.Register(rs)
	}
	return r
}

// Register binds a ruleset under its name and aliases, replacing any
// previous binding for those tags.
func (r *Registry) Register(rs *Ruleset) {
	r.byTag[normalizeTag(rs.Name)] = rs
	for _, alias := range rs.Aliases {
		r.byTag[normalizeTag(alias)] = rs
	}
}

// Alias binds an extra tag to an already registered language, for
// config-supplied tag mappings. It reports whether target resolved.
func (r *Registry) Alias(tag, target string) bool {
	rs, ok := r.byTag[normalizeTag(target)]
	if !ok {
		return false
	}
	r.byTag[normalizeTag(tag)] = rs
	return true
}

// Lookup resolves tag to a ruleset. ok is false for unknown tags;
// callers style those blocks plain.
func (r *Registry) Lookup(tag string) (*Ruleset, bool) {
	rs, ok := r.byTag[normalizeTag(tag)]
	return rs, ok
}

// Names returns the canonical registered language names, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]bool, len(r.byTag))
	var names []string
	for _, rs := range r.byTag {
		if !seen[rs.Name] {
			seen[rs.Name] = true
			names = append(names, rs.Name)
		}
	}
	sort.Strings(names)
	return names
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
