package budget

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func testStock() []StockItem {
	return []StockItem{
		{ID: "P1", Description: "Cadeira", Quantity: 5, SalePrice: decimal.NewFromInt(100)},
		{ID: "P2", Description: "Mesa", Quantity: 1, SalePrice: decimal.NewFromInt(300)},
	}
}

func pendingBudget() Budget {
	return Budget{
		ID:       strPtr("b-1"),
		Code:     "ORC-1",
		Customer: "Maria",
		Validity: "30/11/2026",
		Products: []Product{{ID: "P1", Description: "Cadeira", Quantity: 2, SalePrice: decimal.NewFromInt(100)}},
		Status:   StatusPending,
	}
}

func TestCreateFormAddsProductsAndSubmits(t *testing.T) {
	var created []Values
	m := New(Props{
		Mode:  form.ModeCreate,
		Stock: testStock(),
		Callbacks: Callbacks{
			OnCreateItem: func(v Values) tea.Cmd { created = append(created, v); return nil },
		},
	})

	// nothing valid yet: enter is gated
	m, cmd := press(m, tea.KeyEnter)
	require.Nil(t, cmd)
	require.Empty(t, created)
	require.Contains(t, m.View(), "O Cliente é obrigatório")

	// product code field is focused first
	m = typeText(m, "p1")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "3")
	m, _ = press(m, tea.KeyCtrlA)
	require.Len(t, m.Values().Products, 1)
	require.Equal(t, 3, m.Values().Products[0].Quantity)
	require.True(t, m.Values().Total.Equal(decimal.NewFromInt(300)))

	// past the discount to the customer
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "Maria")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "30/11/2026")

	m, _ = press(m, tea.KeyEnter)
	require.Len(t, created, 1)
	require.Equal(t, "Maria", created[0].Customer)
	require.Equal(t, "30/11/2026", created[0].Validity)
	require.Equal(t, StatusPending, created[0].Status)
	require.False(t, m.Submitting())
}

func TestAddProductChecksStock(t *testing.T) {
	m := New(Props{Mode: form.ModeCreate, Stock: testStock()})

	m = typeText(m, "Mesa")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "2")
	m, _ = press(m, tea.KeyCtrlA)
	require.Empty(t, m.Values().Products)
	require.Contains(t, m.View(), "Estoque insuficiente")

	m, _ = press(m, tea.KeyShiftTab)
	m = typeText(m, "zzz")
	m, _ = press(m, tea.KeyCtrlA)
	require.Empty(t, m.Values().Products)
}

func TestRemoveLastProduct(t *testing.T) {
	m := New(Props{Item: pendingBudget(), Mode: form.ModeEdit, Stock: testStock()})
	require.Len(t, m.Values().Products, 1)

	m, _ = press(m, tea.KeyCtrlD)
	require.Empty(t, m.Values().Products)
	require.True(t, m.Values().Total.IsZero())
	require.Contains(t, m.View(), "Ao menos um Produto deve ser Adicionado")
}

func TestActionBarHiddenWhenApproved(t *testing.T) {
	pending := New(Props{Item: pendingBudget(), Mode: form.ModeDetail})
	require.Contains(t, pending.View(), "[e] Editar")

	item := pendingBudget()
	item.Status = StatusApproved
	for _, mode := range []form.Mode{form.ModeCreate, form.ModeEdit, form.ModeDetail} {
		approved := New(Props{Item: item, Mode: mode})
		view := approved.View()
		require.NotContains(t, view, "[e] Editar", "mode %s", mode)
		require.NotContains(t, view, "[enter]", "mode %s", mode)
		require.Contains(t, view, "Venda confirmada")
		require.Equal(t, form.ModeDetail, approved.Layout().ProductSaleMode)
	}
}

func TestApprovedBudgetIgnoresTyping(t *testing.T) {
	item := pendingBudget()
	item.Status = StatusApproved
	m := New(Props{Item: item, Mode: form.ModeEdit})

	m = typeText(m, "x")
	m, cmd := press(m, tea.KeyEnter)
	require.Nil(t, cmd)
	require.Equal(t, "Maria", m.Values().Customer)
}

func TestDetailEditAndRemoveCallbacks(t *testing.T) {
	edits, removes := 0, 0
	m := New(Props{
		Item: pendingBudget(),
		Mode: form.ModeDetail,
		Callbacks: Callbacks{
			OnChangeFormToEditMode: func() tea.Cmd { edits++; return nil },
			OnRemoveItem:           func() tea.Cmd { removes++; return nil },
		},
	})

	m = typeText(m, "e")
	require.Equal(t, 1, edits)

	// budgets are not removable from the form
	_ = typeText(m, "x")
	require.Equal(t, 0, removes)
}

func TestSaleConfirmationFlow(t *testing.T) {
	var order []string
	var confirmed Values
	m := New(Props{
		Item: pendingBudget(),
		Mode: form.ModeDetail,
		Callbacks: Callbacks{
			OnConfirmBudgetPayment: func(v Values) tea.Cmd {
				order = append(order, "confirm")
				confirmed = v
				return nil
			},
			OnToggleFullScreenDialog: func() tea.Cmd {
				order = append(order, "close")
				return nil
			},
		},
	})
	require.False(t, m.ConfirmationOpen())

	m = typeText(m, "c")
	require.True(t, m.ConfirmationOpen())
	require.Contains(t, m.View(), "Confirmar Venda")

	// money input is focused in the dialog
	m = typeText(m, "200")
	require.Equal(t, "200", m.Values().PaymentInfo.MoneyValue)
	require.Equal(t, "moneyValue", m.Values().PaymentInfo.LastInputFocused)

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.False(t, m.ConfirmationOpen())
	require.Equal(t, []string{"confirm", "close"}, order)
	require.Equal(t, StatusApproved, confirmed.Status)
	require.Equal(t, "200", confirmed.PaymentInfo.MoneyValue)
}

func TestSaleConfirmationEscCloses(t *testing.T) {
	m := New(Props{Item: pendingBudget(), Mode: form.ModeDetail})
	m = typeText(m, "c")
	require.True(t, m.ConfirmationOpen())

	m, cmd := press(m, tea.KeyEsc)
	require.Nil(t, cmd)
	require.False(t, m.ConfirmationOpen())

	// outside the dialog esc leaves the form
	_, cmd = press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	require.Equal(t, form.CloseMsg{}, cmd())
}

func TestConfirmationOnlyForPendingDetail(t *testing.T) {
	m := New(Props{Item: pendingBudget(), Mode: form.ModeEdit})
	m = typeText(m, "c")
	require.False(t, m.ConfirmationOpen(), "c is typed into the input while editing")

	item := pendingBudget()
	item.Status = StatusApproved
	m = New(Props{Item: item, Mode: form.ModeDetail})
	m = typeText(m, "c")
	require.False(t, m.ConfirmationOpen())
}

func TestDiscountRecalculatesTotal(t *testing.T) {
	m := New(Props{Item: pendingBudget(), Mode: form.ModeEdit, Stock: testStock()})
	require.True(t, m.Values().Total.IsZero(), "stored totals are kept until something changes")

	// product code, quantity, discount
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "10")
	require.Equal(t, DiscountPercentage, m.Values().Discount.Type)
	require.True(t, m.Values().Discount.Value.Equal(decimal.NewFromInt(10)))
	require.True(t, m.Values().Subtotal.Equal(decimal.NewFromInt(200)))
	require.True(t, m.Values().Total.Equal(decimal.NewFromInt(180)))
	require.Contains(t, m.View(), "Desconto: 10%")

	m, _ = press(m, tea.KeyCtrlT)
	require.Equal(t, DiscountMoney, m.Values().Discount.Type)
	require.True(t, m.Values().Total.Equal(decimal.NewFromInt(190)))
	require.Contains(t, m.View(), "em R$")

	// a discount larger than the subtotal floors at zero
	m = typeText(m, "000")
	require.True(t, m.Values().Total.IsZero())

	m, _ = press(m, tea.KeyCtrlT)
	require.Equal(t, DiscountPercentage, m.Values().Discount.Type)
	require.True(t, m.Values().Total.IsZero())
}

func TestDiscountIsReadOnlyInDetail(t *testing.T) {
	item := pendingBudget()
	item.Discount = &Discount{Type: DiscountMoney, Value: decimal.NewFromInt(20)}
	m := New(Props{Item: item, Mode: form.ModeDetail})

	m, _ = press(m, tea.KeyCtrlT)
	require.Equal(t, DiscountMoney, m.Values().Discount.Type)
	require.NotContains(t, m.View(), "[ctrl+t]")
}
