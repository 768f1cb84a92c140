// Package language holds the fixed table of languages the skill can
// translate into and the synthesis voice bound to each one.
package language

import (
	"errors"
	"sort"
	"strings"
)

// Spec binds a language name to its translation code and synthesis voice.
type Spec struct {
	Name  string
	Code  string
	Voice string
}

// Registry is a read-only lookup of supported languages, fixed at startup.
// Adding a language is a configuration change at the construction site, not
// a change to any calling component.
type Registry struct {
	specs map[string]Spec
}

// New builds a Registry from the given specs. Names are stored lowercased.
func New(specs []Spec) (*Registry, error) {
	if len(specs) == 0 {
		return nil, errors.New("language: at least one spec is required")
	}
	m := make(map[string]Spec, len(specs))
	for _, s := range specs {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" || s.Code == "" || s.Voice == "" {
			return nil, errors.New("language: spec requires name, code and voice")
		}
		if _, dup := m[name]; dup {
			return nil, errors.New("language: duplicate spec for " + name)
		}
		s.Name = name
		m[name] = s
	}
	return &Registry{specs: m}, nil
}

// Default returns the registry the skill ships with.
func Default() *Registry {
	r, err := New([]Spec{
		{Name: "spanish", Code: "es", Voice: "Conchita"},
		{Name: "japanese", Code: "ja", Voice: "Mizuki"},
		{Name: "italian", Code: "it", Voice: "Carla"},
		{Name: "french", Code: "fr", Voice: "Celine"},
		{Name: "german", Code: "de", Voice: "Marlene"},
	})
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve looks up a language by name, case-insensitively.
func (r *Registry) Resolve(name string) (Spec, bool) {
	s, ok := r.specs[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names returns the supported language names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
