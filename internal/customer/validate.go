package customer

import "github.com/mikelcalvo/backoffice-cli/internal/form"

// Context is what validation needs besides the values: the record as it was
// loaded, the mode, and snapshots of the identifiers already registered.
type Context struct {
	Item Customer
	Mode form.Mode
	CPFs form.Registry
	RGs  form.Registry
}

// Validate checks the required name, CPF and RG uniqueness and the e-mail
// format. The e-mail is optional.
func Validate(v Values, ctx Context) form.Errors {
	errs := form.Errors{}
	errs.Required(FieldName, v.Name, "O Nome é obrigatório.")
	errs.Unique(FieldCPF, ctx.CPFs, ctx.Item.CPF, v.CPF, ctx.Mode, "Este CPF já foi cadastrado")
	errs.Unique(FieldRG, ctx.RGs, ctx.Item.RG, v.RG, ctx.Mode, "Este RG já foi cadastrado")
	errs.Email(FieldEmail, v.Email, "E-mail inválido.")
	return errs
}
