package erp

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mikelcalvo/backoffice-cli/internal/budget"
	"github.com/mikelcalvo/backoffice-cli/internal/customer"
	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

// openForm mounts the customer or budget form for the record with id, or
// for a blank record when id is nil.
func (m Model) openForm(from View, id *string, mode form.Mode) (tea.Model, tea.Cmd) {
	m.formMode = mode
	m.message = ""

	crumb := "Novo"
	if id != nil {
		m.selectRecord(from, *id)
		crumb = *id
	}

	if from == ViewBudgets {
		if id == nil {
			m.selectedBudget = budget.Budget{}
		}
		m.view = ViewBudgetForm
		m.breadcrumbs = []string{"Início", "Orçamentos", crumb}
		m.mountBudgetForm()
		if id != nil {
			// list rows carry no products or payment
			return m, tea.Batch(m.budgetForm.Init(), m.loadBudget(*id))
		}
		return m, m.budgetForm.Init()
	}

	if id == nil {
		m.selectedCustomer = customer.Customer{}
	}
	cpfs, rgs := Registries(m.customers)
	m.client.Logger.Debug("customer form", "mode", mode, "cpfs", cpfs.Len(), "rgs", rgs.Len())
	m.view = ViewCustomerForm
	m.breadcrumbs = []string{"Início", "Clientes", crumb}
	m.customerForm = customer.New(customer.Props{
		Item:      m.selectedCustomer,
		Mode:      mode,
		CPFs:      cpfs,
		RGs:       rgs,
		Callbacks: m.customerCallbacks(),
	})
	if mode == form.ModeDetail {
		return m, tea.Batch(m.customerForm.Init(), m.loadDebits(m.selectedCustomer))
	}
	return m, m.customerForm.Init()
}

func (m *Model) mountBudgetForm() {
	m.budgetForm = budget.New(budget.Props{
		Item:      m.selectedBudget,
		Mode:      m.formMode,
		Stock:     m.stock,
		Customers: CustomerNames(m.customers),
		Callbacks: m.budgetCallbacks(),
	})
	m.budgetForm, _ = m.budgetForm.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
}

// updateForm hands keys to the mounted form.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ViewBudgetForm {
		m.budgetForm, cmd = m.budgetForm.Update(msg)
	} else {
		m.customerForm, cmd = m.customerForm.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		from := m.listView()
		m.view = from
		m.breadcrumbs = m.breadcrumbs[:min(len(m.breadcrumbs), 2)]
		m.loading = true
		return m, m.deleteSelected(from)
	case "n", "N", "esc":
		m.view = m.prevView
		return m, nil
	}
	return m, nil
}

func (m Model) deleteSelected(from View) tea.Cmd {
	client := m.client
	if from == ViewBudgets {
		item := m.selectedBudget
		return m.run(func(ctx context.Context) tea.Msg {
			if item.ID == nil {
				return errorMsg{fmt.Errorf("budget %s: %w", item.Code, ErrMissingID)}
			}
			if err := client.DeleteBudget(ctx, *item.ID); err != nil {
				return errorMsg{err}
			}
			return actionDoneMsg{fmt.Sprintf("Orçamento removido: %s", item.Code)}
		})
	}

	item := m.selectedCustomer
	return m.run(func(ctx context.Context) tea.Msg {
		if item.ID == nil {
			return errorMsg{fmt.Errorf("customer %s: %w", item.Name, ErrMissingID)}
		}
		if err := client.DeleteCustomer(ctx, *item.ID); err != nil {
			return errorMsg{err}
		}
		return actionDoneMsg{fmt.Sprintf("Cliente removido: %s", item.Name)}
	})
}

func changeMode(mode form.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return formModeMsg{mode} }
	}
}

func requestDelete() tea.Cmd {
	return func() tea.Msg { return confirmDeleteMsg{} }
}

// submitted turns the outcome of a save into the shell's notification.
func submitted(err error, format string, args ...interface{}) tea.Msg {
	if err != nil {
		return formSubmittedMsg{success: false, message: err.Error()}
	}
	return formSubmittedMsg{success: true, message: fmt.Sprintf(format, args...)}
}

func (m Model) customerCallbacks() customer.Callbacks {
	client := m.client
	return customer.Callbacks{
		OnCreateItem: func(v customer.Values) tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				saved, err := client.CreateCustomer(ctx, v.Record())
				return submitted(err, "Cliente cadastrado: %s", saved.Name)
			})
		},
		OnEditItem: func(v customer.Values) tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				saved, err := client.UpdateCustomer(ctx, v.Record())
				return submitted(err, "Cliente atualizado: %s", saved.Name)
			})
		},
		OnChangeFormToEditMode: changeMode(form.ModeEdit),
		OnRemoveItem:           requestDelete,
	}
}

func (m Model) budgetCallbacks() budget.Callbacks {
	client := m.client
	return budget.Callbacks{
		OnCreateItem: func(v budget.Values) tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				saved, err := client.CreateBudget(ctx, v)
				return submitted(err, "Orçamento cadastrado: %s", saved.Code)
			})
		},
		OnEditItem: func(v budget.Values) tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				saved, err := client.UpdateBudget(ctx, v)
				return submitted(err, "Orçamento atualizado: %s", saved.Code)
			})
		},
		OnConfirmBudgetPayment: func(v budget.Values) tea.Cmd {
			return m.run(func(ctx context.Context) tea.Msg {
				saved, err := client.ConfirmBudgetPayment(ctx, v)
				return submitted(err, "Venda confirmada: %s", saved.Code)
			})
		},
		OnToggleFullScreenDialog: func() tea.Cmd { return form.Close },
		OnChangeFormToEditMode:   changeMode(form.ModeEdit),
		OnRemoveItem:             requestDelete,
	}
}
