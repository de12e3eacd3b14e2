// Package form holds editable field values with per-field errors and touched
// flags, plus the validation rules the console's forms use.
//
// State never validates on its own. Callers run a Schema (or anything else)
// and feed the messages back through SetError or ApplyErrors. Editing a field
// clears its error; Reset restores the values the form was created with.
package form

import "sync"

// State is the value, error and touched bookkeeping for one form.
type State[V any] struct {
	mu      sync.RWMutex
	initial map[string]V
	values  map[string]V
	errors  map[string]string
	touched map[string]bool
}

// New snapshots initial and returns a clean form.
func New[V any](initial map[string]V) *State[V] {
	return &State[V]{
		initial: cloneMap(initial),
		values:  cloneMap(initial),
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
}

// Update sets field and clears its error.
func (s *State[V]) Update(field string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = v
	delete(s.errors, field)
}

// Touch marks field as visited.
func (s *State[V]) Touch(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched[field] = true
}

// SetError records msg for field.
func (s *State[V]) SetError(field, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[field] = msg
}

// ApplyErrors replaces every error with errs.
func (s *State[V]) ApplyErrors(errs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		s.errors[k] = v
	}
}

// Error returns the message for field, "" when none.
func (s *State[V]) Error(field string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[field]
}

// Touched reports whether field has been visited.
func (s *State[V]) Touched(field string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touched[field]
}

// HasErrors reports whether any field has a non-empty message.
func (s *State[V]) HasErrors() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, msg := range s.errors {
		if msg != "" {
			return true
		}
	}
	return false
}

// Reset restores the initial values and drops errors and touched flags.
func (s *State[V]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = cloneMap(s.initial)
	s.errors = make(map[string]string)
	s.touched = make(map[string]bool)
}

// Values returns a copy of the current values.
func (s *State[V]) Values() map[string]V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.values)
}

// Value returns the value of field.
func (s *State[V]) Value(field string) V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[field]
}

// Errors returns a copy of the non-empty messages.
func (s *State[V]) Errors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
