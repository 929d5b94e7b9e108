package customer

import "github.com/mikelcalvo/backoffice-cli/internal/form"

type section struct {
	title string
	rows  [][]form.Field
}

// sections in render order. Debits are appended separately in detail mode.
var sections = []section{
	{
		title: "Informações Pessoais",
		rows: [][]form.Field{
			{
				form.NewField("Nome", "Informe o Nome do Cliente", form.KindText, FieldName),
				form.NewField("Data de Nascimento", "Informe a Data de Nascimento do Cliente", form.KindDate, FieldBirthday),
			},
			{
				form.NewField("Nome da Mãe", "Informe o Nome da Mãe Cliente", form.KindText, FieldMotherName),
				form.NewField("Nome do Pai", "Informe o Nome do Pai do Cliente", form.KindText, FieldFatherName),
			},
		},
	},
	{
		title: "Identificação",
		rows: [][]form.Field{
			{
				form.NewField("CPF", "Informe o CPF do Cliente", form.KindText, FieldCPF),
				form.NewField("RG", "Informe o RG do Cliente", form.KindText, FieldRG),
			},
		},
	},
	{
		title: "Endereço",
		rows: [][]form.Field{
			{
				form.NewField("Endereço", "Informe o Endereço do Cliente", form.KindText, FieldAddress),
				form.NewField("Bairro", "Informe o Bairro do Cliente", form.KindText, FieldNeighborhood),
			},
			{
				form.NewField("Cidade", "Informe a Cidade do Cliente", form.KindText, FieldCity),
				form.NewField("Estado", "Informe o Estado Cliente", form.KindText, FieldState),
			},
		},
	},
	{
		title: "Contato",
		rows: [][]form.Field{
			{
				form.NewField("Telefone", "Informe o Telefone Fixo do Cliente", form.KindText, FieldLandline),
				form.NewField("Celular", "Informe o Número de Celular do Cliente", form.KindText, FieldCellPhone),
			},
			{
				form.NewField("E-mail", "Informe o E-mail do Cliente", form.KindText, FieldEmail),
			},
		},
	},
	{
		title: "Observações",
		rows: [][]form.Field{
			{
				form.NewField("", "Informe alguma observação sobre o Usuário (caso necessário)", form.KindTextarea, FieldObs),
			},
		},
	},
}

// fields flattens the sections in focus order.
func fields() []form.Field {
	var out []form.Field
	for _, s := range sections {
		for _, row := range s.rows {
			out = append(out, row...)
		}
	}
	return out
}

// Layout lists what the customer form shows in a mode.
type Layout struct {
	ShowDebits    bool
	ShowActionBar bool
}

// ResolveLayout shows debits only when viewing a customer. Customers have
// no lifecycle status, so the action bar is always there.
func ResolveLayout(mode form.Mode) Layout {
	return Layout{
		ShowDebits:    mode == form.ModeDetail,
		ShowActionBar: true,
	}
}
