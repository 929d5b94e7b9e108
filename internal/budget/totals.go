package budget

import (
	"github.com/shopspring/decimal"

	"github.com/mikelcalvo/backoffice-cli/internal/form"
)

var hundred = decimal.NewFromInt(100)

// Subtotal sums quantity x sale price over the products.
func Subtotal(products []Product) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.SalePrice.Mul(decimalFromInt(p.Quantity)))
	}
	return sum
}

// ApplyDiscount subtracts d from subtotal. The result never goes below zero.
func ApplyDiscount(subtotal decimal.Decimal, d Discount) decimal.Decimal {
	var off decimal.Decimal
	switch d.Type {
	case DiscountPercentage:
		off = subtotal.Mul(d.Value).Div(hundred)
	case DiscountMoney:
		off = d.Value
	}
	total := subtotal.Sub(off)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

// Recalculate refreshes Subtotal and Total from the products and discount.
func (v *Values) Recalculate() {
	v.Subtotal = Subtotal(v.Products)
	v.Total = ApplyDiscount(v.Subtotal, v.Discount)
}

// Paid sums the amounts typed in the sale confirmation. Unparseable amounts
// count as zero.
func (p PaymentInfo) Paid() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range []string{p.MoneyValue, p.CreditCardValue, p.DebitCardValue, p.CheckValue} {
		if d, err := form.ParseMoney(s); err == nil {
			sum = sum.Add(d)
		}
	}
	return sum
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
