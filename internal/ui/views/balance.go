package views

import (
	"github.com/hance08/bankdash/internal/utils"
	"github.com/pterm/pterm"
)

func RenderBalance(name string, balance float64, known bool) {
	amount := pterm.Gray("unavailable")
	if known {
		amount = pterm.Bold.Sprint(utils.FormatMoney(balance))
	}

	pterm.DefaultBox.
		WithTitle("Welcome, " + name).
		Println("Current balance: " + amount)
}
