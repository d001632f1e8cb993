package formstate

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/rules"
)

// Machine holds one form's canonical state. All methods are safe for
// concurrent use; values passed in and handed out are deep-copied at the
// boundary.
type Machine struct {
	mu       sync.RWMutex
	order    []string
	known    map[string]struct{}
	defaults rules.Values

	values   rules.Values
	errors   map[string]string
	touched  map[string]bool
	attempts map[string]uint64
	inflight int
	closed   bool
}

// New builds a machine for the named fields in declaration order. defaults
// provides initial values by field name; names without a default start nil.
// Default entries for unknown names are ignored.
func New(names []string, defaults rules.Values) *Machine {
	cloned := defaults.Clone()

	m := &Machine{
		order:    slices.Clone(names),
		known:    make(map[string]struct{}, len(names)),
		defaults: make(rules.Values, len(names)),
		values:   make(rules.Values, len(names)),
		errors:   make(map[string]string),
		touched:  make(map[string]bool),
		attempts: make(map[string]uint64, len(names)),
	}
	for _, name := range names {
		m.known[name] = struct{}{}
		m.defaults[name] = cloned[name]
		m.values[name] = rules.CloneValue(cloned[name])
	}
	return m
}

// FieldOrder returns the field names in declaration order.
func (m *Machine) FieldOrder() []string {
	return slices.Clone(m.order)
}

// SetValue stores a new value for the field.
func (m *Machine) SetValue(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, ok := m.known[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	m.values[name] = rules.CloneValue(value)
	return nil
}

// SetValues applies a batch of values atomically. If any name is unknown the
// whole batch is rejected and nothing changes.
func (m *Machine) SetValues(batch rules.Values) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for name := range batch {
		if _, ok := m.known[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	for name, value := range batch {
		m.values[name] = rules.CloneValue(value)
	}
	return nil
}

// Value returns a copy of the field's current value.
func (m *Machine) Value(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.known[name]; !ok {
		return nil, false
	}
	return rules.CloneValue(m.values[name]), true
}

// Values returns a deep copy of all current values.
func (m *Machine) Values() rules.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values.Clone()
}

// Touch marks the field as touched.
func (m *Machine) Touch(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, ok := m.known[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	m.touched[name] = true
	return nil
}

// Touched reports whether the field has been touched.
func (m *Machine) Touched(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.touched[name]
}

// Error returns the field's current error message, if any.
func (m *Machine) Error(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msg, ok := m.errors[name]
	return msg, ok
}

// Errors returns a copy of the current error map. Only failing fields have
// entries.
func (m *Machine) Errors() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.errors)
}

// Valid reports whether no field currently has an error.
func (m *Machine) Valid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.errors) == 0
}

// Validating reports whether any validation pass is in flight.
func (m *Machine) Validating() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inflight > 0
}

// BeginFieldValidation opens a validation attempt for one field and returns
// its sequence number. Every Begin must be paired with exactly one
// CompleteFieldValidation or AbandonValidation.
func (m *Machine) BeginFieldValidation(name string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}
	if _, ok := m.known[name]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	m.attempts[name]++
	m.inflight++
	return m.attempts[name], nil
}

// CompleteFieldValidation merges one attempt's outcome. The result is applied
// only when attempt is still the field's newest; anything older is discarded
// so a fresher result is never overwritten. An empty message clears the
// field's error. A failing result marks the field touched when its current
// value is non-empty, which keeps half-typed input quiet until it holds
// something worth flagging.
//
// The return reports whether the result was applied.
func (m *Machine) CompleteFieldValidation(name string, attempt uint64, message string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inflight > 0 {
		m.inflight--
	}
	if m.closed {
		return false
	}
	if _, ok := m.known[name]; !ok {
		return false
	}
	if m.attempts[name] != attempt {
		return false
	}

	m.applyLocked(name, message)
	return true
}

// BeginFormValidation opens a form-wide pass. It returns a deep snapshot of
// the current values for the validator to read and the attempt counters
// captured at this instant. Pair with CompleteFormValidation or
// AbandonValidation.
func (m *Machine) BeginFormValidation() (rules.Values, map[string]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, nil, ErrClosed
	}
	m.inflight++
	return m.values.Clone(), maps.Clone(m.attempts), nil
}

// CompleteFormValidation merges a form-wide result. Per field, the outcome is
// applied only if no newer attempt started since captured was taken: fields
// the pass decided get their error set or cleared and their counter bumped,
// fields with fresher results keep them. The return reports whether any
// field changed.
func (m *Machine) CompleteFormValidation(failures map[string]string, captured map[string]uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inflight > 0 {
		m.inflight--
	}
	if m.closed {
		return false
	}

	changed := false
	for _, name := range m.order {
		if m.attempts[name] != captured[name] {
			continue
		}
		message := failures[name]
		if m.errors[name] != message {
			changed = true
		}
		m.applyLocked(name, message)
		// Applying counts as the field's newest attempt; stragglers that
		// began before this pass must not overwrite it.
		m.attempts[name]++
	}
	return changed
}

// AbandonValidation closes a validation attempt that produced no result, for
// example because its context was canceled.
func (m *Machine) AbandonValidation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inflight > 0 {
		m.inflight--
	}
}

// applyLocked sets or clears one field's error and updates touched. Callers
// hold m.mu.
func (m *Machine) applyLocked(name, message string) {
	if message == "" {
		delete(m.errors, name)
		return
	}
	m.errors[name] = message
	if !rules.IsEmpty(m.values[name]) {
		m.touched[name] = true
	}
}

// Reset restores defaults, clears errors and touched flags, and invalidates
// every in-flight validation attempt so late results are discarded.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for _, name := range m.order {
		m.values[name] = rules.CloneValue(m.defaults[name])
	}
	clear(m.errors)
	clear(m.touched)
	for name := range m.attempts {
		m.attempts[name]++
	}
	return nil
}

// Close makes the machine permanently inert. Mutators fail with ErrClosed,
// late validation merges are dropped, reads keep serving the final state.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Closed reports whether Close has been called.
func (m *Machine) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}
