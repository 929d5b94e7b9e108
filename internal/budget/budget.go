// Package budget implements the budget form: mapping a budget record to form
// values, validating them, dispatching submits by mode and composing the
// product-sale view with its sale-confirmation dialog.
package budget

import "github.com/shopspring/decimal"

// Status is the lifecycle state of a budget.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
)

// DiscountKind tells how Discount.Value is applied to the subtotal.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountMoney      DiscountKind = "money"
)

// Product is one line of a budget.
type Product struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	SalePrice   decimal.Decimal `json:"salePrice"`
}

// StockItem is a product available for sale.
type StockItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	SalePrice   decimal.Decimal `json:"salePrice"`
}

// PaymentInfo holds the amounts typed in the sale confirmation, as typed.
type PaymentInfo struct {
	LastInputFocused string `json:"lastInputFocused"`
	CreditCardValue  string `json:"creditCardValue"`
	DebitCardValue   string `json:"debitCardValue"`
	CheckValue       string `json:"checkValue"`
	MoneyValue       string `json:"moneyValue"`
}

type Discount struct {
	Type  DiscountKind    `json:"type,omitempty"`
	Value decimal.Decimal `json:"value"`
}

// Budget is the record as stored by the back-office API. Nil and zero
// fields are filled with defaults by MapValues.
type Budget struct {
	ID          *string          `json:"id,omitempty"`
	Code        string           `json:"code,omitempty"`
	Customer    string           `json:"customer,omitempty"`
	Validity    string           `json:"validity,omitempty"`
	Observation string           `json:"observation,omitempty"`
	Products    []Product        `json:"products,omitempty"`
	PaymentInfo *PaymentInfo     `json:"paymentInfo,omitempty"`
	Discount    *Discount        `json:"discount,omitempty"`
	Status      Status           `json:"status,omitempty"`
	IsInDebit   bool             `json:"isInDebit,omitempty"`
	Subtotal    *decimal.Decimal `json:"subtotal,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// Values is the form-local projection of a Budget. Every field is set.
type Values struct {
	ID          *string         `json:"id"`
	Code        string          `json:"code"`
	Customer    string          `json:"customer"`
	Validity    string          `json:"validity"`
	Observation string          `json:"observation"`
	Products    []Product       `json:"products"`
	PaymentInfo PaymentInfo     `json:"paymentInfo"`
	Discount    Discount        `json:"discount"`
	Status      Status          `json:"status"`
	IsInDebit   bool            `json:"isInDebit"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
}

// MapValues fills every form field from item, falling back to defaults for
// whatever item leaves unset.
func MapValues(item Budget) Values {
	v := Values{
		ID:          item.ID,
		Code:        item.Code,
		Customer:    item.Customer,
		Validity:    item.Validity,
		Observation: item.Observation,
		Products:    []Product{},
		Status:      StatusPending,
		IsInDebit:   item.IsInDebit,
		Subtotal:    decimal.Zero,
		Total:       decimal.Zero,
	}
	if len(item.Products) > 0 {
		v.Products = append(v.Products, item.Products...)
	}
	if item.PaymentInfo != nil {
		v.PaymentInfo = *item.PaymentInfo
	}
	if item.Discount != nil {
		v.Discount = *item.Discount
	}
	if item.Status != "" {
		v.Status = item.Status
	}
	if item.Subtotal != nil {
		v.Subtotal = *item.Subtotal
	}
	if item.Total != nil {
		v.Total = *item.Total
	}
	return v
}

// Record converts the form values back into a record.
func (v Values) Record() Budget {
	payment := v.PaymentInfo
	discount := v.Discount
	subtotal := v.Subtotal
	total := v.Total
	return Budget{
		ID:          v.ID,
		Code:        v.Code,
		Customer:    v.Customer,
		Validity:    v.Validity,
		Observation: v.Observation,
		Products:    append([]Product(nil), v.Products...),
		PaymentInfo: &payment,
		Discount:    &discount,
		Status:      v.Status,
		IsInDebit:   v.IsInDebit,
		Subtotal:    &subtotal,
		Total:       &total,
	}
}
