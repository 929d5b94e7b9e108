package form

import (
	"sort"
	"strings"
)

// Errors maps a field key to a human-readable message.
type Errors map[string]string

// Has reports whether field has a message
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Keys returns the failing fields in a stable order.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError is returned by State.Submit when the values do not pass
// validation. Nothing is dispatched in that case.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, k := range e.Errors.Keys() {
		parts = append(parts, k+": "+e.Errors[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}
