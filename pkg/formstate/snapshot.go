package formstate

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/rules"
)

// Snapshot is a self-contained copy of the form state at one instant.
// Mutating a snapshot never affects the machine and vice versa.
type Snapshot struct {
	Values     rules.Values      `json:"values"`
	Errors     map[string]string `json:"errors"`
	Touched    map[string]bool   `json:"touched"`
	FieldOrder []string          `json:"fieldOrder"`
	Valid      bool              `json:"valid"`
	Validating bool              `json:"validating"`
}

// Snapshot returns a deep copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Values:     m.values.Clone(),
		Errors:     maps.Clone(m.errors),
		Touched:    maps.Clone(m.touched),
		FieldOrder: slices.Clone(m.order),
		Valid:      len(m.errors) == 0,
		Validating: m.inflight > 0,
	}
}
