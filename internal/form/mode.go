package form

import "fmt"

// Mode selects which submit action and which view variant a form uses.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeDetail Mode = "detail"
)

// ParseMode converts a string into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCreate, ModeEdit, ModeDetail:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown form mode: %q", s)
}

// Editable reports whether inputs accept typing in this mode.
func (m Mode) Editable() bool {
	return m == ModeCreate || m == ModeEdit
}
