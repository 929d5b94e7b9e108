package budget

import (
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/table"

	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

func (m Model) View() string {
	layout := m.Layout()
	if layout.ShowSaleConfirmation {
		return form.Overlay(m.width, m.height, m.saleConfirmationView())
	}

	errs := m.state.VisibleErrors()
	sections := []string{m.productSaleView(layout, errs)}
	if layout.ShowActionBar {
		sections = append(sections, m.actionBar().View())
	}
	return form.Wrapper(m.title(), sections...)
}

func (m Model) title() string {
	code := m.state.Values().Code
	switch m.props.Mode {
	case form.ModeCreate:
		return "Novo Orçamento"
	case form.ModeEdit:
		return strings.TrimSpace("Editar Orçamento " + code)
	}
	return strings.TrimSpace("Orçamento " + code)
}

func (m Model) productSaleView(layout Layout, errs form.Errors) string {
	v := m.state.Values()
	editable := layout.ProductSaleMode.Editable()

	rows := []string{productsTable(v.Products)}
	if errs.Has(FieldProducts) {
		msg := errs[FieldProducts]
		rows = append(rows, form.ErrorStyle.Render(msg))
	}
	rows = append(rows, totalsLine(v))

	if editable {
		rows = append(rows,
			m.inputs.Row(errs, fieldProductCode, fieldProductQty, fieldDiscount),
			form.HelpStyle.Render("[ctrl+a] adicionar produto  [ctrl+d] remover último  [ctrl+t] desconto "+discountUnit(v.Discount.Type)),
		)
		if m.notice != "" {
			rows = append(rows, form.ErrorStyle.Render(m.notice))
		}
	}

	rows = append(rows, m.inputs.Row(errs, FieldCustomer, FieldValidity))
	if editable {
		if s := suggestCustomer(v.Customer, m.props.Customers); s != "" {
			rows = append(rows, form.HelpStyle.Render("Você quis dizer: "+s+"?"))
		}
	}
	rows = append(rows, m.inputs.Row(errs, FieldObservation), m.extraView(layout))

	return form.Section("Produtos", rows...)
}

// extraView is the budget-specific strip under the product sale: the sale
// confirmation trigger and the lifecycle badges.
func (m Model) extraView(layout Layout) string {
	v := m.state.Values()
	var parts []string
	switch {
	case v.Status == StatusApproved:
		parts = append(parts, form.SuccessStyle.Render("✓ Venda confirmada"))
	case layout.CanConfirmSale:
		parts = append(parts, form.ButtonStyle.Render("[c] Confirmar Venda"))
	}
	if v.IsInDebit {
		parts = append(parts, form.ErrorStyle.Render("Em débito"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) saleConfirmationView() string {
	v := m.state.Values()
	paid := v.PaymentInfo.Paid()
	remaining := v.Total.Sub(paid)

	var b strings.Builder
	b.WriteString(form.TitleStyle.Render(" Confirmar Venda ") + "\n\n")
	b.WriteString("Cliente: " + v.Customer + "\n")
	b.WriteString("Total: " + form.FormatMoney(v.Total) + "\n\n")
	b.WriteString(m.payment.Row(nil, fieldMoney, fieldCreditCard) + "\n")
	b.WriteString(m.payment.Row(nil, fieldDebitCard, fieldCheck) + "\n\n")
	b.WriteString("Pago: " + form.FormatMoney(paid) + "\n")
	if remaining.IsNegative() {
		b.WriteString("Troco: " + form.FormatMoney(remaining.Neg()) + "\n")
	} else {
		b.WriteString("Restante: " + form.FormatMoney(remaining) + "\n")
	}
	b.WriteString("\n" + form.ButtonStyle.Render("[enter] Confirmar") + "  " + form.HelpStyle.Render("[esc] Cancelar"))
	return b.String()
}

func productsTable(products []Product) string {
	if len(products) == 0 {
		return form.HelpStyle.Render("Nenhum produto adicionado")
	}

	columns := []table.Column{
		{Title: "Código", Width: 10},
		{Title: "Produto", Width: 28},
		{Title: "Qtd", Width: 5},
		{Title: "Preço", Width: 14},
		{Title: "Total", Width: 14},
	}
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		line := p.SalePrice.Mul(decimalFromInt(p.Quantity))
		rows = append(rows, table.Row{
			p.ID,
			p.Description,
			strconv.Itoa(p.Quantity),
			form.FormatMoney(p.SalePrice),
			form.FormatMoney(line),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	return t.View()
}

func discountUnit(kind DiscountKind) string {
	if kind == DiscountMoney {
		return "em R$"
	}
	return "em %"
}

func totalsLine(v Values) string {
	parts := []string{"Subtotal: " + form.FormatMoney(v.Subtotal)}
	if !v.Discount.Value.IsZero() {
		switch v.Discount.Type {
		case DiscountPercentage:
			parts = append(parts, "Desconto: "+v.Discount.Value.String()+"%")
		case DiscountMoney:
			parts = append(parts, "Desconto: "+form.FormatMoney(v.Discount.Value))
		}
	}
	parts = append(parts, form.SuccessStyle.Render("Total: "+form.FormatMoney(v.Total)))
	return strings.Join(parts, "   ")
}

// suggestCustomer returns the registered name closest to name when name is
// not registered itself and the match is close enough to be a typo.
func suggestCustomer(name string, known []string) string {
	name = strings.TrimSpace(name)
	if name == "" || len(known) == 0 {
		return ""
	}

	lower := strings.ToLower(name)
	best, bestDist := "", -1
	for _, k := range known {
		kl := strings.ToLower(k)
		if kl == lower {
			return ""
		}
		d := levenshtein.ComputeDistance(lower, kl)
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}

	limit := len([]rune(name)) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return ""
	}
	return best
}
