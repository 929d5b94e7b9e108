package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Inputs is an ordered group of text inputs with one focused at a time.
type Inputs struct {
	fields   []Field
	models   []textinput.Model
	index    map[string]int
	focus    int
	readOnly bool
}

// NewInputs creates one input per field, seeded with value(field.Key).
func NewInputs(fields []Field, value func(key string) string) Inputs {
	in := Inputs{
		fields: fields,
		models: make([]textinput.Model, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.Width = f.width()
		ti.CharLimit = f.charLimit()
		if value != nil {
			ti.SetValue(value(f.Key))
		}
		in.models[i] = ti
		in.index[f.Key] = i
	}
	in.updateFocus()
	return in
}

// SetReadOnly blurs every input and ignores typing.
func (in *Inputs) SetReadOnly(readOnly bool) {
	in.readOnly = readOnly
	in.updateFocus()
}

// Focused returns the key of the focused field
func (in Inputs) Focused() string {
	if len(in.fields) == 0 {
		return ""
	}
	return in.fields[in.focus].Key
}

// Value returns the current text of the field
func (in Inputs) Value(key string) string {
	if i, ok := in.index[key]; ok {
		return in.models[i].Value()
	}
	return ""
}

// SetValue overwrites a field without going through a key press.
func (in *Inputs) SetValue(key, value string) {
	if i, ok := in.index[key]; ok {
		in.models[i].SetValue(value)
	}
}

// Update moves focus on tab/shift+tab and forwards everything else to the
// focused input. It returns the key of the field whose text changed, if any,
// and the key of the field that lost focus, if any.
func (in *Inputs) Update(msg tea.Msg) (changed, left string, cmd tea.Cmd) {
	if in.readOnly || len(in.models) == 0 {
		return "", "", nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, Keys.Next):
			left = in.Focused()
			in.focus = (in.focus + 1) % len(in.models)
			in.updateFocus()
			return "", left, nil
		case key.Matches(keyMsg, Keys.Prev):
			left = in.Focused()
			in.focus = (in.focus - 1 + len(in.models)) % len(in.models)
			in.updateFocus()
			return "", left, nil
		}
	}

	before := in.models[in.focus].Value()
	in.models[in.focus], cmd = in.models[in.focus].Update(msg)
	if in.models[in.focus].Value() != before {
		changed = in.fields[in.focus].Key
	}
	return changed, "", cmd
}

func (in *Inputs) updateFocus() {
	for i := range in.models {
		if i == in.focus && !in.readOnly {
			in.models[i].Focus()
		} else {
			in.models[i].Blur()
		}
	}
}

// Row renders one or two fields side by side, each with its label, its
// input and, below, its error message from errs.
func (in Inputs) Row(errs Errors, keys ...string) string {
	cells := make([]string, 0, len(keys))
	for _, k := range keys {
		i, ok := in.index[k]
		if !ok {
			continue
		}
		cells = append(cells, in.cell(i, errs))
	}
	parts := make([]string, 0, 2*len(cells))
	for i, c := range cells {
		if i > 0 {
			parts = append(parts, "    ")
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (in Inputs) cell(i int, errs Errors) string {
	f := in.fields[i]
	var b strings.Builder
	if f.Label != "" {
		b.WriteString(LabelStyle.Render(f.Label) + "\n")
	}
	b.WriteString("> " + in.models[i].View() + "\n")
	if msg, ok := errs[f.Key]; ok {
		b.WriteString(ErrorStyle.Render(msg))
	}
	return lipgloss.NewStyle().Width(f.width() + 4).Render(b.String())
}
