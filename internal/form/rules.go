package form

import (
	"net/mail"
	"strings"
)

// Required records message under field when value is empty. Whitespace
// counts as a value.
func (e Errors) Required(field, value, message string) {
	if value == "" {
		e[field] = message
	}
}

// RequiredCount records message under field when a collection is empty.
func (e Errors) RequiredCount(field string, n int, message string) {
	if n == 0 {
		e[field] = message
	}
}

// Email records message under field when value is set but is not a bare
// address. An empty value passes.
func (e Errors) Email(field, value, message string) {
	if value == "" {
		return
	}
	if !validEmail(value) {
		e[field] = message
	}
}

// Unique records message under field when RepeatedValueAllowed rejects the
// candidate.
func (e Errors) Unique(field string, reg Registry, original, candidate string, mode Mode, message string) {
	if !RepeatedValueAllowed(reg, original, candidate, mode) {
		e[field] = message
	}
}

// RepeatedValueAllowed decides whether candidate may be saved given the
// values already registered. An empty candidate always passes. When editing
// or viewing an existing record, keeping the record's original value passes
// even though it is in the registry. Otherwise the candidate passes only if
// nobody registered it yet. Creating has no original value to fall back on.
func RepeatedValueAllowed(reg Registry, original, candidate string, mode Mode) bool {
	if candidate == "" {
		return true
	}
	if mode != ModeCreate && candidate == original {
		return true
	}
	return !reg.Contains(candidate)
}

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return strings.Contains(value[at+1:], ".")
}
