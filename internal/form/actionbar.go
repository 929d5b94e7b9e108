package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is what a key press on the action bar asks for.
type Action int

const (
	ActionNone Action = iota
	ActionSubmit
	ActionEdit
	ActionRemove
)

// ActionBar is the submit/edit/remove button row shared by every form.
type ActionBar struct {
	Mode         Mode
	Entity       string
	CanBeRemoved bool
	Disabled     bool
}

// Resolve maps a key press to an action allowed in the current mode.
// Submitting is only possible while creating or editing and not while a
// submission is in flight; edit and remove only while viewing.
func (a ActionBar) Resolve(msg tea.KeyMsg) Action {
	switch a.Mode {
	case ModeCreate, ModeEdit:
		if key.Matches(msg, Keys.Submit) && !a.Disabled {
			return ActionSubmit
		}
	case ModeDetail:
		if key.Matches(msg, Keys.Edit) {
			return ActionEdit
		}
		if a.CanBeRemoved && key.Matches(msg, Keys.Remove) {
			return ActionRemove
		}
	}
	return ActionNone
}

func (a ActionBar) View() string {
	var buttons []string
	switch a.Mode {
	case ModeCreate:
		buttons = append(buttons, a.submitButton("Cadastrar"))
	case ModeEdit:
		buttons = append(buttons, a.submitButton("Salvar Alterações"))
	case ModeDetail:
		buttons = append(buttons, ButtonStyle.Render("[e] "+a.label("Editar")))
		if a.CanBeRemoved {
			buttons = append(buttons, DangerButtonStyle.Render("[x] "+a.label("Remover")))
		}
	}
	buttons = append(buttons, HelpStyle.Render("[esc] Voltar"))
	return strings.Join(buttons, "  ")
}

func (a ActionBar) submitButton(verb string) string {
	text := "[enter] " + a.label(verb)
	if a.Disabled {
		return DisabledButtonStyle.Render(text)
	}
	return ButtonStyle.Render(text)
}

func (a ActionBar) label(verb string) string {
	if a.Entity == "" {
		return verb
	}
	return verb + " " + a.Entity
}
