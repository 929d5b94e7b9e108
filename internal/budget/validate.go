package budget

import "github.com/mikelcalvo/backoffice-cli/internal/form"

// Field keys used in form.Errors
const (
	FieldProducts    = "products"
	FieldCustomer    = "customer"
	FieldValidity    = "validity"
	FieldObservation = "observation"
)

// Validate checks the required fields of a budget. Monetary fields are not
// checked here.
func Validate(v Values) form.Errors {
	errs := form.Errors{}
	errs.RequiredCount(FieldProducts, len(v.Products), "Ao menos um Produto deve ser Adicionado")
	errs.Required(FieldCustomer, v.Customer, "O Cliente é obrigatório")
	errs.Required(FieldValidity, v.Validity, "A Validade é obrigatória")
	return errs
}
