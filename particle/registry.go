package particle

import (
	"fmt"
)

// Handle identifies a Species inside a Registry. Reaction sets refer to the
// species they act on through Handles rather than pointers, so the
// Simulation stays the only owner of particle data.
type Handle int

// Registry owns the particle species of a run.
type Registry struct {
	species []*Species
	names   []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Register adds a Species under the given name and returns its Handle.
func (r *Registry) Register(name string, s *Species) Handle {
	for _, n := range r.names {
		if n == name {
			panic(fmt.Sprintf("Species '%s' registered twice.", name))
		}
	}
	r.species = append(r.species, s)
	r.names = append(r.names, name)
	return Handle(len(r.species) - 1)
}

// Get returns the Species associated with h.
func (r *Registry) Get(h Handle) *Species { return r.species[h] }

// Name returns the name h was registered under.
func (r *Registry) Name(h Handle) string { return r.names[h] }

// Valid returns true if h refers to a registered Species.
func (r *Registry) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(r.species)
}

// Len returns the number of registered species.
func (r *Registry) Len() int { return len(r.species) }
