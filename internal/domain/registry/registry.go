// Package registry holds the closed, ordered set of teams the prediction
// models were trained on.
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for registry errors.
var (
	ErrEmpty     = errors.New("team registry is empty")
	ErrDuplicate = errors.New("duplicate team in registry")
	ErrBlankName = errors.New("blank team name in registry")
)

// Registry is an immutable team list. The position of a team is its
// categorical code and must match the category order used at training time.
type Registry struct {
	names []string
	codes map[string]int
}

// New builds a registry preserving the given order.
func New(names []string) (*Registry, error) {
	if len(names) == 0 {
		return nil, ErrEmpty
	}
	r := &Registry{
		names: make([]string, 0, len(names)),
		codes: make(map[string]int, len(names)),
	}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("row %d: %w", i+1, ErrBlankName)
		}
		if _, ok := r.codes[name]; ok {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicate)
		}
		r.codes[name] = len(r.names)
		r.names = append(r.names, name)
	}
	return r, nil
}

// Contains reports whether name is a registered team.
func (r *Registry) Contains(name string) bool {
	_, ok := r.codes[name]
	return ok
}

// Code returns the categorical code of name.
func (r *Registry) Code(name string) (int, bool) {
	c, ok := r.codes[name]
	return c, ok
}

// Names returns the teams in category order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered teams.
func (r *Registry) Len() int { return len(r.names) }
