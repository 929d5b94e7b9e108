package form

// Kind selects how an input is sized and what it accepts.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindTextarea
	KindNumber
)

// Field describes one labeled input bound to values[Key].
type Field struct {
	Label       string
	Placeholder string
	Kind        Kind
	Key         string
}

// NewField builds a field descriptor.
func NewField(label, placeholder string, kind Kind, key string) Field {
	return Field{Label: label, Placeholder: placeholder, Kind: kind, Key: key}
}

func (f Field) width() int {
	switch f.Kind {
	case KindDate:
		return 14
	case KindNumber:
		return 12
	case KindTextarea:
		return 66
	}
	return 30
}

func (f Field) charLimit() int {
	switch f.Kind {
	case KindDate:
		return 10
	case KindNumber:
		return 16
	case KindTextarea:
		return 500
	}
	return 120
}
