package form

import tea "github.com/charmbracelet/bubbletea"

// Validator computes the errors for a set of values. An empty (or nil)
// result means the values are valid.
type Validator[V any] func(V) Errors

// SubmitHandler dispatches valid values to whoever owns the record.
type SubmitHandler[V any] func(V) tea.Cmd

// State holds the transient values of a mounted form together with their
// validation errors and the submitting flag. Errors are recomputed eagerly on
// every change.
type State[V any] struct {
	values     V
	errors     Errors
	touched    map[string]bool
	attempted  bool
	submitting bool
	validate   Validator[V]
}

// NewState initializes a form from its mapped values.
func NewState[V any](initial V, validate Validator[V]) State[V] {
	s := State[V]{
		values:   initial,
		touched:  make(map[string]bool),
		validate: validate,
	}
	s.revalidate()
	return s
}

func (s *State[V]) Values() V { return s.values }
func (s *State[V]) Errors() Errors { return s.errors }
func (s *State[V]) Submitting() bool { return s.submitting }
func (s *State[V]) Attempted() bool { return s.attempted }

// Update mutates the values in place and recomputes the errors.
func (s *State[V]) Update(fn func(*V)) {
	fn(&s.values)
	s.revalidate()
}

// Touch marks a field as visited so its error becomes visible.
func (s *State[V]) Touch(field string) {
	if s.touched == nil {
		s.touched = make(map[string]bool)
	}
	s.touched[field] = true
}

// VisibleErrors returns the errors of touched fields, or every error after
// a submit attempt.
func (s *State[V]) VisibleErrors() Errors {
	if s.attempted {
		return s.errors
	}
	visible := Errors{}
	for k, msg := range s.errors {
		if s.touched[k] {
			visible[k] = msg
		}
	}
	return visible
}

// Submit validates the current values and, when they pass, hands them to
// handle. The submitting flag is raised for the dispatch and cleared as soon
// as handle returns, without waiting for the returned command to settle.
func (s *State[V]) Submit(handle SubmitHandler[V]) (tea.Cmd, error) {
	s.attempted = true
	s.revalidate()
	if len(s.errors) > 0 {
		return nil, &ValidationError{Errors: s.errors}
	}

	s.submitting = true
	cmd := handle(s.values)
	s.submitting = false
	return cmd, nil
}

func (s *State[V]) revalidate() {
	if s.validate == nil {
		s.errors = Errors{}
		return
	}
	errs := s.validate(s.values)
	if errs == nil {
		errs = Errors{}
	}
	s.errors = errs
}
