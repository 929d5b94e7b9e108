package budget

import "github.com/mikelcalvo/backoffice-cli/internal/form"

// EffectiveMode is the mode the product-sale section renders in. An
// approved budget is always shown read-only.
func EffectiveMode(mode form.Mode, status Status) form.Mode {
	if status == StatusApproved {
		return form.ModeDetail
	}
	return mode
}

// Layout lists what the budget form shows for one combination of mode,
// status and dialog state.
type Layout struct {
	ProductSaleMode      form.Mode
	ShowActionBar        bool
	ShowSaleConfirmation bool
	CanConfirmSale       bool
}

// ResolveLayout evaluates the visible sections once per render.
func ResolveLayout(mode form.Mode, status Status, confirmationOpen bool) Layout {
	approved := status == StatusApproved
	return Layout{
		ProductSaleMode:      EffectiveMode(mode, status),
		ShowActionBar:        !approved,
		ShowSaleConfirmation: confirmationOpen,
		CanConfirmSale:       mode == form.ModeDetail && !approved,
	}
}
