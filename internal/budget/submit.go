package budget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

// Callbacks are supplied by the container that owns budget records.
type Callbacks struct {
	OnCreateItem             func(Values) tea.Cmd
	OnEditItem               func(Values) tea.Cmd
	OnConfirmBudgetPayment   func(Values) tea.Cmd
	OnToggleFullScreenDialog func() tea.Cmd
	OnChangeFormToEditMode   func() tea.Cmd
	OnRemoveItem             func() tea.Cmd
}

// Submit dispatches v to the callback matching mode. In detail mode the
// budget is sent for payment confirmation as APPROVED and the enclosing
// dialog is closed afterwards; the two commands run in that order.
func Submit(v Values, mode form.Mode, cb Callbacks) tea.Cmd {
	switch mode {
	case form.ModeCreate:
		if cb.OnCreateItem != nil {
			return cb.OnCreateItem(v)
		}
	case form.ModeEdit:
		if cb.OnEditItem != nil {
			return cb.OnEditItem(v)
		}
	case form.ModeDetail:
		approved := v
		approved.Status = StatusApproved

		var confirm, closeDialog tea.Cmd
		if cb.OnConfirmBudgetPayment != nil {
			confirm = cb.OnConfirmBudgetPayment(approved)
		}
		if cb.OnToggleFullScreenDialog != nil {
			closeDialog = cb.OnToggleFullScreenDialog()
		}
		return tea.Sequence(confirm, closeDialog)
	}
	return nil
}
