// Package customer implements the customer form: record mapping, validation
// against registered CPFs and RGs, submit dispatch and the sectioned layout.
package customer

import "github.com/shopspring/decimal"

// Customer is the record as stored by the back-office API.
type Customer struct {
	ID           *string `json:"id,omitempty"`
	Name         string  `json:"name,omitempty"`
	Birthday     string  `json:"birthday,omitempty"`
	MotherName   string  `json:"motherName,omitempty"`
	FatherName   string  `json:"fatherName,omitempty"`
	CPF          string  `json:"cpf,omitempty"`
	RG           string  `json:"rg,omitempty"`
	Landline     string  `json:"landline,omitempty"`
	CellPhone    string  `json:"cellPhone,omitempty"`
	Email        string  `json:"email,omitempty"`
	Address      string  `json:"address,omitempty"`
	Neighborhood string  `json:"neighborhood,omitempty"`
	City         string  `json:"city,omitempty"`
	State        string  `json:"state,omitempty"`
	Obs          string  `json:"obs,omitempty"`
}

// Values is the form-local projection of a Customer. Every field is set.
type Values struct {
	ID           *string `json:"id"`
	Name         string  `json:"name"`
	Birthday     string  `json:"birthday"`
	MotherName   string  `json:"motherName"`
	FatherName   string  `json:"fatherName"`
	CPF          string  `json:"cpf"`
	RG           string  `json:"rg"`
	Landline     string  `json:"landline"`
	CellPhone    string  `json:"cellPhone"`
	Email        string  `json:"email"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Obs          string  `json:"obs"`
}

// Debit is a budget the customer still owes.
type Debit struct {
	Code     string          `json:"code"`
	Validity string          `json:"validity"`
	Total    decimal.Decimal `json:"total"`
}

// Field keys, as used in form.Errors and the layout.
const (
	FieldName         = "name"
	FieldBirthday     = "birthday"
	FieldMotherName   = "motherName"
	FieldFatherName   = "fatherName"
	FieldCPF          = "cpf"
	FieldRG           = "rg"
	FieldLandline     = "landline"
	FieldCellPhone    = "cellPhone"
	FieldEmail        = "email"
	FieldAddress      = "address"
	FieldNeighborhood = "neighborhood"
	FieldCity         = "city"
	FieldState        = "state"
	FieldObs          = "obs"
)

// MapValues fills every form field from item. Missing strings stay empty and
// a record without id keeps a nil id.
func MapValues(item Customer) Values {
	return Values{
		ID:           item.ID,
		Name:         item.Name,
		Birthday:     item.Birthday,
		MotherName:   item.MotherName,
		FatherName:   item.FatherName,
		CPF:          item.CPF,
		RG:           item.RG,
		Landline:     item.Landline,
		CellPhone:    item.CellPhone,
		Email:        item.Email,
		Address:      item.Address,
		Neighborhood: item.Neighborhood,
		City:         item.City,
		State:        item.State,
		Obs:          item.Obs,
	}
}

// Record converts the form values back into a record.
func (v Values) Record() Customer {
	return Customer(v)
}

// Field returns the value bound to key.
func (v Values) Field(key string) string {
	if p := v.ref(key); p != nil {
		return *p
	}
	return ""
}

// SetField writes the value bound to key. Unknown keys are ignored.
func (v *Values) SetField(key, value string) {
	if p := v.ref(key); p != nil {
		*p = value
	}
}

func (v *Values) ref(key string) *string {
	switch key {
	case FieldName:
		return &v.Name
	case FieldBirthday:
		return &v.Birthday
	case FieldMotherName:
		return &v.MotherName
	case FieldFatherName:
		return &v.FatherName
	case FieldCPF:
		return &v.CPF
	case FieldRG:
		return &v.RG
	case FieldLandline:
		return &v.Landline
	case FieldCellPhone:
		return &v.CellPhone
	case FieldEmail:
		return &v.Email
	case FieldAddress:
		return &v.Address
	case FieldNeighborhood:
		return &v.Neighborhood
	case FieldCity:
		return &v.City
	case FieldState:
		return &v.State
	case FieldObs:
		return &v.Obs
	}
	return nil
}
