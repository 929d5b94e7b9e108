package form

// Registry is an immutable snapshot of values already in use, such as the
// CPFs of every registered customer.
type Registry struct {
	values map[string]struct{}
}

// NewRegistry builds a snapshot. Empty strings are ignored.
func NewRegistry(values ...string) Registry {
	r := Registry{values: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if v != "" {
			r.values[v] = struct{}{}
		}
	}
	return r
}

// Contains reports whether v is registered
func (r Registry) Contains(v string) bool {
	_, ok := r.values[v]
	return ok
}

func (r Registry) Len() int {
	return len(r.values)
}
