package customer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

// Callbacks are supplied by the container that owns customer records.
type Callbacks struct {
	OnCreateItem           func(Values) tea.Cmd
	OnEditItem             func(Values) tea.Cmd
	OnChangeFormToEditMode func() tea.Cmd
	OnRemoveItem           func() tea.Cmd
}

// Submit sends v to OnEditItem in edit mode and to OnCreateItem otherwise.
func Submit(v Values, mode form.Mode, cb Callbacks) tea.Cmd {
	handler := cb.OnCreateItem
	if mode == form.ModeEdit {
		handler = cb.OnEditItem
	}
	if handler == nil {
		return nil
	}
	return handler(v)
}
