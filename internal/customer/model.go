package customer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

// Props is everything the container hands to the customer form.
type Props struct {
	Item      Customer
	Mode      form.Mode
	CPFs      form.Registry
	RGs       form.Registry
	Debits    []Debit
	Callbacks Callbacks
}

// Model is the customer form.
type Model struct {
	props  Props
	state  form.State[Values]
	inputs form.Inputs
}

// New mounts a customer form for props.Item.
func New(props Props) Model {
	ctx := Context{Item: props.Item, Mode: props.Mode, CPFs: props.CPFs, RGs: props.RGs}
	m := Model{
		props: props,
		state: form.NewState(MapValues(props.Item), func(v Values) form.Errors {
			return Validate(v, ctx)
		}),
	}
	values := m.state.Values()
	m.inputs = form.NewInputs(fields(), values.Field)
	m.inputs.SetReadOnly(!props.Mode.Editable())
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Mode() form.Mode { return m.props.Mode }
func (m Model) Values() Values { return m.state.Values() }
func (m Model) Errors() form.Errors { return m.state.Errors() }
func (m Model) Submitting() bool { return m.state.Submitting() }
func (m Model) Layout() Layout { return ResolveLayout(m.props.Mode) }

// WithDebits replaces the debit records shown in detail mode. The container
// loads them after the form is mounted.
func (m Model) WithDebits(debits []Debit) Model {
	m.props.Debits = debits
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, form.Keys.Close) {
			return m, form.Close
		}

		switch m.actionBar().Resolve(keyMsg) {
		case form.ActionSubmit:
			return m, m.submit()
		case form.ActionEdit:
			return m, call(m.props.Callbacks.OnChangeFormToEditMode)
		case form.ActionRemove:
			return m, call(m.props.Callbacks.OnRemoveItem)
		}
	}

	changed, left, cmd := m.inputs.Update(msg)
	if left != "" {
		m.state.Touch(left)
	}
	if changed != "" {
		value := m.inputs.Value(changed)
		m.state.Update(func(v *Values) { v.SetField(changed, value) })
	}
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	mode := m.props.Mode
	callbacks := m.props.Callbacks
	cmd, err := m.state.Submit(func(v Values) tea.Cmd {
		return Submit(v, mode, callbacks)
	})
	if err != nil {
		return nil
	}
	return cmd
}

func (m Model) actionBar() form.ActionBar {
	return form.ActionBar{
		Mode:         m.props.Mode,
		Entity:       "Cliente",
		CanBeRemoved: true,
		Disabled:     m.state.Submitting(),
	}
}

func (m Model) View() string {
	layout := m.Layout()
	errs := m.state.VisibleErrors()

	out := make([]string, 0, len(sections)+2)
	for _, s := range sections {
		rows := make([]string, 0, len(s.rows))
		for _, row := range s.rows {
			keys := make([]string, len(row))
			for i, f := range row {
				keys[i] = f.Key
			}
			rows = append(rows, m.inputs.Row(errs, keys...))
		}
		out = append(out, form.Section(s.title, rows...))
	}
	if layout.ShowDebits {
		out = append(out, form.Section("Débitos", debitsView(m.props.Debits)))
	}
	if layout.ShowActionBar {
		out = append(out, m.actionBar().View())
	}
	return form.Wrapper(m.title(), out...)
}

func (m Model) title() string {
	switch m.props.Mode {
	case form.ModeCreate:
		return "Novo Cliente"
	case form.ModeEdit:
		return strings.TrimSpace("Editar Cliente " + m.props.Item.Name)
	}
	return strings.TrimSpace("Cliente " + m.props.Item.Name)
}

func debitsView(debits []Debit) string {
	if len(debits) == 0 {
		return form.HelpStyle.Render("Nenhum débito em aberto")
	}

	rows := make([]table.Row, 0, len(debits))
	for _, d := range debits {
		rows = append(rows, table.Row{d.Code, d.Validity, form.FormatMoney(d.Total)})
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Orçamento", Width: 14},
			{Title: "Validade", Width: 12},
			{Title: "Valor", Width: 16},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	return t.View()
}

func call(fn func() tea.Cmd) tea.Cmd {
	if fn == nil {
		return nil
	}
	return fn()
}
