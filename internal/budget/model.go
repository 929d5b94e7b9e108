package budget

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

// Props is everything the container hands to the budget form.
type Props struct {
	Item      Budget
	Mode      form.Mode
	Stock     []StockItem
	Customers []string // registered customer names, for suggestions
	Callbacks Callbacks
}

const (
	fieldProductCode = "productCode"
	fieldProductQty  = "productQuantity"
	fieldDiscount    = "discountValue"

	fieldMoney      = "moneyValue"
	fieldCreditCard = "creditCardValue"
	fieldDebitCard  = "debitCardValue"
	fieldCheck      = "checkValue"
)

var saleFields = []form.Field{
	form.NewField("Produto", "Código ou descrição do produto", form.KindText, fieldProductCode),
	form.NewField("Quantidade", "1", form.KindNumber, fieldProductQty),
	form.NewField("Desconto", "0", form.KindNumber, fieldDiscount),
	form.NewField("Cliente", "Informe o Cliente", form.KindText, FieldCustomer),
	form.NewField("Validade", "DD/MM/AAAA", form.KindDate, FieldValidity),
	form.NewField("Observação", "Alguma observação sobre o Orçamento (caso necessário)", form.KindTextarea, FieldObservation),
}

var paymentFields = []form.Field{
	form.NewField("Dinheiro", "0,00", form.KindNumber, fieldMoney),
	form.NewField("Cartão de Crédito", "0,00", form.KindNumber, fieldCreditCard),
	form.NewField("Cartão de Débito", "0,00", form.KindNumber, fieldDebitCard),
	form.NewField("Cheque", "0,00", form.KindNumber, fieldCheck),
}

type saleKeyMap struct {
	AddProduct    key.Binding
	RemoveProduct key.Binding
	DiscountKind  key.Binding
	ConfirmSale   key.Binding
}

var saleKeys = saleKeyMap{
	AddProduct: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "adicionar produto"),
	),
	RemoveProduct: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "remover último produto"),
	),
	DiscountKind: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "desconto em % ou R$"),
	),
	ConfirmSale: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "confirmar venda"),
	),
}

// Model is the budget form. It owns only transient state: the form values,
// the inputs and whether the sale confirmation dialog is open.
type Model struct {
	props            Props
	state            form.State[Values]
	inputs           form.Inputs
	payment          form.Inputs
	confirmationOpen bool
	notice           string
	width            int
	height           int
}

// New mounts a budget form for props.Item.
func New(props Props) Model {
	m := Model{
		props: props,
		state: form.NewState(MapValues(props.Item), Validate),
	}
	values := m.state.Values()

	m.inputs = form.NewInputs(saleFields, func(k string) string {
		switch k {
		case FieldCustomer:
			return values.Customer
		case FieldValidity:
			return values.Validity
		case FieldObservation:
			return values.Observation
		case fieldDiscount:
			if values.Discount.Value.IsZero() {
				return ""
			}
			return strings.Replace(values.Discount.Value.String(), ".", ",", 1)
		}
		return ""
	})
	m.inputs.SetReadOnly(!m.Layout().ProductSaleMode.Editable())

	m.payment = form.NewInputs(paymentFields, func(k string) string {
		return values.PaymentInfo.field(k)
	})
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Mode() form.Mode { return m.props.Mode }
func (m Model) Values() Values { return m.state.Values() }
func (m Model) Errors() form.Errors { return m.state.Errors() }
func (m Model) Submitting() bool { return m.state.Submitting() }
func (m Model) ConfirmationOpen() bool { return m.confirmationOpen }
func (m Model) Layout() Layout {
	return ResolveLayout(m.props.Mode, m.state.Values().Status, m.confirmationOpen)
}

// ToggleSaleConfirmation opens or closes the sale confirmation dialog.
func (m *Model) ToggleSaleConfirmation() {
	m.confirmationOpen = !m.confirmationOpen
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.confirmationOpen {
			return m.updateConfirmation(msg)
		}

		if key.Matches(msg, form.Keys.Close) {
			return m, form.Close
		}

		layout := m.Layout()
		if layout.ShowActionBar {
			switch m.actionBar().Resolve(msg) {
			case form.ActionSubmit:
				return m, m.submit()
			case form.ActionEdit:
				return m, call(m.props.Callbacks.OnChangeFormToEditMode)
			case form.ActionRemove:
				return m, call(m.props.Callbacks.OnRemoveItem)
			}
		}

		if layout.ProductSaleMode.Editable() {
			switch {
			case key.Matches(msg, saleKeys.AddProduct):
				m.addProduct()
				return m, nil
			case key.Matches(msg, saleKeys.RemoveProduct):
				m.removeLastProduct()
				return m, nil
			case key.Matches(msg, saleKeys.DiscountKind):
				m.toggleDiscountKind()
				return m, nil
			}
		}

		if layout.CanConfirmSale && key.Matches(msg, saleKeys.ConfirmSale) {
			m.ToggleSaleConfirmation()
			return m, nil
		}
	}

	changed, left, cmd := m.inputs.Update(msg)
	if left != "" {
		m.state.Touch(left)
	}
	if changed != "" {
		value := m.inputs.Value(changed)
		m.state.Update(func(v *Values) {
			switch changed {
			case FieldCustomer:
				v.Customer = value
			case FieldValidity:
				v.Validity = value
			case FieldObservation:
				v.Observation = value
			case fieldDiscount:
				v.Discount = parseDiscount(v.Discount.Type, value)
				v.Recalculate()
			}
		})
	}
	return m, cmd
}

func (m Model) updateConfirmation(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, form.Keys.Close):
		m.ToggleSaleConfirmation()
		return m, nil
	case msg.Type == tea.KeyEnter:
		cmd := m.submit()
		m.ToggleSaleConfirmation()
		return m, cmd
	}

	changed, _, cmd := m.payment.Update(msg)
	if changed != "" {
		value := m.payment.Value(changed)
		m.state.Update(func(v *Values) {
			v.PaymentInfo.set(changed, value)
			v.PaymentInfo.LastInputFocused = changed
		})
	}
	return m, cmd
}

// submit runs the gated submit. Validation errors become visible inline and
// nothing is dispatched.
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

func (m *Model) addProduct() {
	m.notice = ""
	ref := strings.TrimSpace(m.inputs.Value(fieldProductCode))
	if ref == "" {
		m.notice = "Informe o código do produto"
		return
	}

	item, ok := findStockItem(m.props.Stock, ref)
	if !ok {
		m.notice = fmt.Sprintf("Produto %q não encontrado no estoque", ref)
		return
	}

	qty := 1
	if raw := strings.TrimSpace(m.inputs.Value(fieldProductQty)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			m.notice = "Quantidade inválida"
			return
		}
		qty = n
	}

	inBudget := 0
	for _, p := range m.state.Values().Products {
		if p.ID == item.ID {
			inBudget = p.Quantity
		}
	}
	if inBudget+qty > item.Quantity {
		m.notice = fmt.Sprintf("Estoque insuficiente para %s (disponível: %d)", item.Description, item.Quantity)
		return
	}

	m.state.Update(func(v *Values) {
		products := append([]Product(nil), v.Products...)
		merged := false
		for i := range products {
			if products[i].ID == item.ID {
				products[i].Quantity += qty
				merged = true
			}
		}
		if !merged {
			products = append(products, Product{
				ID:          item.ID,
				Description: item.Description,
				Quantity:    qty,
				SalePrice:   item.SalePrice,
			})
		}
		v.Products = products
		v.Recalculate()
	})
	m.state.Touch(FieldProducts)
	m.inputs.SetValue(fieldProductCode, "")
	m.inputs.SetValue(fieldProductQty, "")
}

func (m *Model) removeLastProduct() {
	if len(m.state.Values().Products) == 0 {
		return
	}
	m.state.Update(func(v *Values) {
		v.Products = append([]Product(nil), v.Products[:len(v.Products)-1]...)
		v.Recalculate()
	})
	m.state.Touch(FieldProducts)
}

// toggleDiscountKind switches the discount between a percentage and a fixed
// amount, keeping the typed value.
func (m *Model) toggleDiscountKind() {
	m.state.Update(func(v *Values) {
		if v.Discount.Type == DiscountMoney {
			v.Discount.Type = DiscountPercentage
		} else {
			v.Discount.Type = DiscountMoney
		}
		v.Recalculate()
	})
}

// parseDiscount reads a typed discount. Anything unparseable or negative
// means no discount.
func parseDiscount(kind DiscountKind, raw string) Discount {
	if kind == "" {
		kind = DiscountPercentage
	}
	d := Discount{Type: kind, Value: decimal.Zero}
	if value, err := form.ParseMoney(raw); err == nil && !value.IsNegative() {
		d.Value = value
	}
	return d
}

func (m Model) actionBar() form.ActionBar {
	return form.ActionBar{
		Mode:     m.props.Mode,
		Entity:   "Orçamento",
		Disabled: m.state.Submitting(),
	}
}

func findStockItem(stock []StockItem, ref string) (StockItem, bool) {
	for _, s := range stock {
		if strings.EqualFold(s.ID, ref) {
			return s, true
		}
	}
	for _, s := range stock {
		if strings.EqualFold(s.Description, ref) {
			return s, true
		}
	}
	return StockItem{}, false
}

func call(fn func() tea.Cmd) tea.Cmd {
	if fn == nil {
		return nil
	}
	return fn()
}

func (p PaymentInfo) field(k string) string {
	switch k {
	case fieldMoney:
		return p.MoneyValue
	case fieldCreditCard:
		return p.CreditCardValue
	case fieldDebitCard:
		return p.DebitCardValue
	case fieldCheck:
		return p.CheckValue
	}
	return ""
}

func (p *PaymentInfo) set(k, value string) {
	switch k {
	case fieldMoney:
		p.MoneyValue = value
	case fieldCreditCard:
		p.CreditCardValue = value
	case fieldDebitCard:
		p.DebitCardValue = value
	case fieldCheck:
		p.CheckValue = value
	}
}
