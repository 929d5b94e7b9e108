package erp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mikelcalvo/backoffice-cli/internal/budget"
	"github.com/mikelcalvo/backoffice-cli/internal/customer"
	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

// Version info
const (
	Version = "1.0.0"
	Author  = "Mikel Calvo"
	Year    = "2026"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	vpnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	internetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF9500")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	creditStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 2)

	notificationSuccess = lipgloss.NewStyle().
				Background(lipgloss.Color("#04B575")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// View represents different screens
type View int

const (
	ViewMain View = iota
	ViewCustomers
	ViewBudgets
	ViewCustomerForm
	ViewBudgetForm
	ViewConfirmDelete
)

// MenuItem for the main menu
type MenuItem struct {
	title       string
	description string
	view        View
}

func (i MenuItem) Title() string       { return i.title }
func (i MenuItem) Description() string { return i.description }
func (i MenuItem) FilterValue() string { return i.title }

// ListItem for record lists. id is empty for records never saved.
type ListItem struct {
	id      string
	name    string
	details string
}

func (i ListItem) Title() string       { return i.name }
func (i ListItem) Description() string { return i.details }
func (i ListItem) FilterValue() string { return i.name }

// Model is the main TUI model. It owns the records, the registries built
// from them and which form is mounted in which mode.
type Model struct {
	client      *Client
	view        View
	prevView    View
	width       int
	height      int
	mainMenu    list.Model
	currentList list.Model
	message     string
	messageType string
	loading     bool
	spinner     spinner.Model
	breadcrumbs []string

	notification     string
	showNotification bool

	customers []customer.Customer
	budgets   []budget.Budget
	stock     []budget.StockItem

	customerForm     customer.Model
	budgetForm       budget.Model
	selectedCustomer customer.Customer
	selectedBudget   budget.Budget
	formMode         form.Mode
	deleteName       string
	start            *Start
}

// Start opens the TUI straight on a customer or budget form instead of the
// main menu. ID may be empty only in create mode.
type Start struct {
	Budget bool
	ID     string
	Mode   form.Mode
}

// ParseStart validates the start-up form options. An empty customerID and
// budgetID means the main menu.
func ParseStart(customerID, budgetID, mode string) (*Start, error) {
	if customerID != "" && budgetID != "" {
		return nil, fmt.Errorf("choose either a customer or a budget")
	}
	parsed, err := form.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if customerID == "" && budgetID == "" {
		if parsed == form.ModeCreate {
			return nil, fmt.Errorf("create mode needs --customer or --budget")
		}
		return nil, nil
	}
	start := &Start{Budget: budgetID != "", ID: customerID + budgetID, Mode: parsed}
	if start.ID == "new" {
		start.ID = ""
	}
	if start.ID == "" && parsed != form.ModeCreate {
		return nil, fmt.Errorf("%s mode needs a record id", parsed)
	}
	return start, nil
}

// Messages
type connectedMsg struct {
	mode string
	url  string
}

type errorMsg struct {
	err error
}

type customersLoadedMsg struct {
	items []customer.Customer
}

type budgetsLoadedMsg struct {
	items     []budget.Budget
	stock     []budget.StockItem
	customers []customer.Customer
}

type budgetLoadedMsg struct {
	item budget.Budget
}

type debitsLoadedMsg struct {
	customerID string
	debits     []customer.Debit
}

type actionDoneMsg struct {
	message string
}

type formSubmittedMsg struct {
	success bool
	message string
}

// formModeMsg remounts the current form in another mode.
type formModeMsg struct {
	mode form.Mode
}

// confirmDeleteMsg asks the user before removing the record in the form.
type confirmDeleteMsg struct{}

type clearNotificationMsg struct{}

// NewTUI creates a new TUI model
func NewTUI(client *Client) Model {
	menuItems := []list.Item{
		MenuItem{"Clientes", "Cadastro, consulta e débitos de clientes", ViewCustomers},
		MenuItem{"Orçamentos", "Orçamentos, produtos e confirmação de venda", ViewBudgets},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	mainMenu := list.New(menuItems, delegate, 0, 0)
	mainMenu.Title = client.Config.Brand
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	mainMenu.Styles.Title = titleStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return Model{
		client:      client,
		view:        ViewMain,
		mainMenu:    mainMenu,
		loading:     true,
		spinner:     s,
		breadcrumbs: []string{"Início"},
	}
}

// WithStart makes the TUI open the form described by start once its list
// has loaded.
func (m Model) WithStart(start *Start) Model {
	if start == nil {
		return m
	}
	m.start = start
	if start.Budget {
		m.view = ViewBudgets
		m.breadcrumbs = []string{"Início", "Orçamentos"}
	} else {
		m.view = ViewCustomers
		m.breadcrumbs = []string{"Início", "Clientes"}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.detectConnection(), m.spinner.Tick}
	switch m.view {
	case ViewCustomers:
		cmds = append(cmds, m.loadCustomers())
	case ViewBudgets:
		cmds = append(cmds, m.loadBudgets())
	}
	return tea.Batch(cmds...)
}

// openStart mounts the start-up form once the list it belongs to is loaded.
func (m Model) openStart() (tea.Model, tea.Cmd) {
	start := m.start
	m.start = nil
	if start.ID == "" {
		return m.openForm(m.view, nil, start.Mode)
	}
	id := start.ID
	return m.openForm(m.view, &id, start.Mode)
}

// run executes fn with a request-scoped context on a command goroutine.
func (m Model) run(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := client.WithTimeout(context.Background())
		defer cancel()
		return fn(ctx)
	}
}

func (m Model) detectConnection() tea.Cmd {
	client := m.client
	return m.run(func(ctx context.Context) tea.Msg {
		client.DetectConnection(ctx)
		return connectedMsg{mode: client.Mode, url: client.ActiveURL}
	})
}

func (m Model) loadCustomers() tea.Cmd {
	client := m.client
	return m.run(func(ctx context.Context) tea.Msg {
		items, err := client.ListCustomers(ctx)
		if err != nil {
			return errorMsg{err}
		}
		return customersLoadedMsg{items}
	})
}

// loadBudgets also fetches the stock and the customers, which the budget
// form needs for products and name suggestions.
func (m Model) loadBudgets() tea.Cmd {
	client := m.client
	return m.run(func(ctx context.Context) tea.Msg {
		items, err := client.ListBudgets(ctx)
		if err != nil {
			return errorMsg{err}
		}
		stock, err := client.ListStock(ctx)
		if err != nil {
			return errorMsg{err}
		}
		customers, err := client.ListCustomers(ctx)
		if err != nil {
			return errorMsg{err}
		}
		return budgetsLoadedMsg{items: items, stock: stock, customers: customers}
	})
}

func (m Model) loadBudget(id string) tea.Cmd {
	client := m.client
	return m.run(func(ctx context.Context) tea.Msg {
		item, err := client.GetBudget(ctx, id)
		if err != nil {
			return errorMsg{err}
		}
		return budgetLoadedMsg{item}
	})
}

func (m Model) loadDebits(item customer.Customer) tea.Cmd {
	client := m.client
	id := idOf(item.ID)
	return m.run(func(ctx context.Context) tea.Msg {
		debits, err := client.CustomerDebits(ctx, item.Name)
		if err != nil {
			return errorMsg{err}
		}
		return debitsLoadedMsg{customerID: id, debits: debits}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.message = ""
		m.messageType = ""

		switch m.view {
		case ViewCustomerForm, ViewBudgetForm:
			return m.updateForm(msg)
		case ViewConfirmDelete:
			return m.updateConfirmDelete(msg)
		}

		if m.currentList.FilterState() == list.Filtering && m.view != ViewMain {
			break
		}

		switch msg.String() {
		case "q":
			if m.view == ViewMain {
				return m, tea.Quit
			}
			m.view = ViewMain
			m.breadcrumbs = []string{"Início"}
			return m, nil
		case "esc":
			if m.view != ViewMain {
				m.view = ViewMain
				m.breadcrumbs = []string{"Início"}
				return m, nil
			}
		case "enter":
			return m.handleEnter()
		case "n":
			if m.view == ViewCustomers || m.view == ViewBudgets {
				return m.openForm(m.view, nil, form.ModeCreate)
			}
		case "d":
			if item, ok := m.currentList.SelectedItem().(ListItem); ok && (m.view == ViewCustomers || m.view == ViewBudgets) {
				m.selectRecord(m.view, item.id)
				m.prevView = m.view
				m.view = ViewConfirmDelete
				m.deleteName = item.name
				return m, nil
			}
		case "r":
			if m.view == ViewCustomers || m.view == ViewBudgets {
				return m.refreshCurrentView()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		h := msg.Height - 8
		w := msg.Width - 4

		m.mainMenu.SetSize(w, h)
		if m.currentList.Items() != nil {
			m.currentList.SetSize(w, h)
		}
		if m.view == ViewBudgetForm {
			m.budgetForm, _ = m.budgetForm.Update(msg)
		}

	case connectedMsg:
		m.loading = false
		m.client.Mode = msg.mode
		m.client.ActiveURL = msg.url
		return m, nil

	case errorMsg:
		m.loading = false
		m.message = msg.err.Error()
		m.messageType = "error"
		m.client.Logger.Error("tui", "view", m.view, "error", msg.err)
		return m, nil

	case customersLoadedMsg:
		m.loading = false
		m.customers = msg.items
		items := make([]list.Item, 0, len(msg.items))
		for _, c := range msg.items {
			details := c.CPF
			if c.City != "" {
				details = strings.TrimSpace(details + " • " + c.City)
			}
			items = append(items, ListItem{id: idOf(c.ID), name: c.Name, details: details})
		}
		m.setList("Clientes", items)
		if m.start != nil && !m.start.Budget {
			return m.openStart()
		}
		return m, nil

	case budgetsLoadedMsg:
		m.loading = false
		m.budgets = msg.items
		m.stock = msg.stock
		m.customers = msg.customers
		items := make([]list.Item, 0, len(msg.items))
		for _, b := range msg.items {
			v := budget.MapValues(b)
			details := fmt.Sprintf("%s • %s • %s", v.Customer, form.FormatMoney(v.Total), v.Status)
			if v.IsInDebit {
				details += " • em débito"
			}
			items = append(items, ListItem{id: idOf(v.ID), name: v.Code, details: details})
		}
		m.setList("Orçamentos", items)
		if m.start != nil && m.start.Budget {
			return m.openStart()
		}
		return m, nil

	case budgetLoadedMsg:
		if m.view == ViewBudgetForm && msg.item.ID != nil && idOf(m.selectedBudget.ID) == *msg.item.ID {
			m.selectedBudget = msg.item
			m.mountBudgetForm()
		}
		return m, nil

	case debitsLoadedMsg:
		if m.view == ViewCustomerForm && m.formMode == form.ModeDetail && idOf(m.selectedCustomer.ID) == msg.customerID {
			m.customerForm = m.customerForm.WithDebits(msg.debits)
		}
		return m, nil

	case formModeMsg:
		return m.openForm(m.listView(), m.selectedID(), msg.mode)

	case confirmDeleteMsg:
		m.prevView = m.view
		m.view = ViewConfirmDelete
		if m.prevView == ViewCustomerForm {
			m.deleteName = m.selectedCustomer.Name
		} else {
			m.deleteName = m.selectedBudget.Code
		}
		return m, nil

	case form.CloseMsg:
		if m.view == ViewCustomerForm || m.view == ViewBudgetForm {
			m.view = m.listView()
			m.breadcrumbs = m.breadcrumbs[:min(len(m.breadcrumbs), 2)]
		}
		return m, nil

	case actionDoneMsg:
		m.message = msg.message
		m.messageType = "success"
		return m.refreshCurrentView()

	case formSubmittedMsg:
		m.loading = false
		if msg.success {
			m.notification = msg.message
			m.showNotification = true
			if m.view == ViewCustomerForm || m.view == ViewBudgetForm {
				m.view = m.listView()
				m.breadcrumbs = m.breadcrumbs[:min(len(m.breadcrumbs), 2)]
			}
			refreshModel, refreshCmd := m.refreshCurrentView()
			m = refreshModel.(Model)
			return m, tea.Batch(
				refreshCmd,
				tea.Tick(3*time.Second, func(time.Time) tea.Msg {
					return clearNotificationMsg{}
				}),
			)
		}
		m.message = msg.message
		m.messageType = "error"
		return m, nil

	case clearNotificationMsg:
		m.showNotification = false
		m.notification = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewMain:
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case ViewCustomers, ViewBudgets:
		m.currentList, cmd = m.currentList.Update(msg)
	case ViewCustomerForm:
		m.customerForm, cmd = m.customerForm.Update(msg)
	case ViewBudgetForm:
		m.budgetForm, cmd = m.budgetForm.Update(msg)
	}

	return m, cmd
}

func (m *Model) setList(title string, items []list.Item) {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle

	m.currentList = list.New(items, delegate, m.width-4, m.height-8)
	m.currentList.Title = title
	m.currentList.Styles.Title = titleStyle
	m.currentList.SetShowStatusBar(true)
	m.currentList.SetFilteringEnabled(true)
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewMain:
		if item, ok := m.mainMenu.SelectedItem().(MenuItem); ok {
			m.view = item.view
			m.breadcrumbs = []string{"Início", item.title}
			return m.refreshCurrentView()
		}
	case ViewCustomers, ViewBudgets:
		if item, ok := m.currentList.SelectedItem().(ListItem); ok {
			id := item.id
			return m.openForm(m.view, &id, form.ModeDetail)
		}
	}
	return m, nil
}

func (m Model) refreshCurrentView() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewCustomers:
		m.loading = true
		return m, m.loadCustomers()
	case ViewBudgets:
		m.loading = true
		return m, m.loadBudgets()
	}
	return m, nil
}

// listView is the list a form returns to.
func (m Model) listView() View {
	switch m.view {
	case ViewBudgetForm, ViewBudgets:
		return ViewBudgets
	case ViewConfirmDelete:
		if m.prevView == ViewBudgetForm || m.prevView == ViewBudgets {
			return ViewBudgets
		}
	}
	return ViewCustomers
}

func (m Model) selectedID() *string {
	if m.listView() == ViewBudgets {
		return m.selectedBudget.ID
	}
	return m.selectedCustomer.ID
}

// selectRecord remembers the record with id from the given list.
func (m *Model) selectRecord(from View, id string) {
	if from == ViewBudgets {
		// unlisted ids still get fetched by loadBudget
		m.selectedBudget = budget.Budget{ID: &id}
		for _, b := range m.budgets {
			if b.ID != nil && *b.ID == id {
				m.selectedBudget = b
			}
		}
		return
	}
	m.selectedCustomer = customer.Customer{ID: &id}
	for _, c := range m.customers {
		if c.ID != nil && *c.ID == id {
			m.selectedCustomer = c
		}
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.view {
	case ViewMain:
		content = m.mainMenu.View()
	case ViewCustomers, ViewBudgets:
		if m.loading {
			content = fmt.Sprintf("\n  %s Carregando...", m.spinner.View())
		} else {
			content = m.currentList.View()
		}
	case ViewCustomerForm:
		content = m.customerForm.View()
	case ViewBudgetForm:
		content = m.budgetForm.View()
	case ViewConfirmDelete:
		content = m.renderConfirmDelete()
	}

	var b strings.Builder

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderBreadcrumbs())
	b.WriteString("\n")

	if m.showNotification {
		b.WriteString(notificationSuccess.Render("✓ " + m.notification))
		b.WriteString("\n")
	}

	b.WriteString(content)

	// Error message (persists until user takes action)
	if m.message != "" {
		b.WriteString("\n\n")
		if m.messageType == "error" {
			b.WriteString(errorStyle.Render("Erro: " + m.message))
		} else {
			b.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())

	b.WriteString("\n")
	b.WriteString(m.renderCredits())

	return b.String()
}

func (m Model) renderStatusBar() string {
	var mode string
	if m.client.Mode == "vpn" {
		mode = vpnStyle.Render("● VPN")
	} else {
		mode = internetStyle.Render("● Internet")
	}

	status := fmt.Sprintf(" %s | %s | %s ", m.client.Config.Brand, mode, m.client.ActiveURL)
	return statusBarStyle.Render(status)
}

func (m Model) renderBreadcrumbs() string {
	if len(m.breadcrumbs) == 0 {
		return ""
	}
	return breadcrumbStyle.Render("  " + strings.Join(m.breadcrumbs, " > "))
}

func (m Model) renderHelp() string {
	var help string
	switch m.view {
	case ViewMain:
		help = "↑/↓: navegar • enter: selecionar • q: sair"
	case ViewCustomers, ViewBudgets:
		help = "↑/↓: navegar • enter: detalhes • n: novo • d: remover • r: atualizar • /: buscar • esc: voltar"
	case ViewCustomerForm:
		help = "tab: próximo campo • esc: voltar"
	case ViewBudgetForm:
		help = "tab: próximo campo • ctrl+a: adicionar produto • ctrl+d: remover último • ctrl+t: tipo de desconto • esc: voltar"
		if m.budgetForm.ConfirmationOpen() {
			help = "tab: próxima forma de pagamento • enter: confirmar venda • esc: fechar"
		}
	case ViewConfirmDelete:
		help = "y: confirmar • n: cancelar"
	}
	return helpStyle.Render(help)
}

func (m Model) renderCredits() string {
	return creditStyle.Render(fmt.Sprintf("Created by %s in %s • v%s", Author, Year, Version))
}

func (m Model) renderConfirmDelete() string {
	content := fmt.Sprintf(`
  Remover "%s"?

  Esta ação não pode ser desfeita.

  [y] Sim, remover    [n] Não, cancelar
`, m.deleteName)

	return boxStyle.Render(content)
}

// RunTUI starts the TUI, on the main menu when start is nil
func RunTUI(client *Client, start *Start) error {
	p := tea.NewProgram(NewTUI(client).WithStart(start), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
