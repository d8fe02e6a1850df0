package views

import (
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/utils"
	"github.com/pterm/pterm"
)

// RenderMutationSummary confirms a deposit or withdrawal request before it
// is sent.
func RenderMutationSummary(kind model.Kind, amount float64, balance *float64) {
	pterm.DefaultSection.Println(kind.Label() + " Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Type", kind.Label()},
		{"Amount", utils.FormatMoney(amount)},
	}

	if balance != nil {
		after := *balance + amount
		if kind == model.KindWithdraw {
			after = *balance - amount
		}
		tableData = append(tableData,
			[]string{"Current balance", utils.FormatMoney(*balance)},
			[]string{"Balance after", utils.FormatMoney(after)},
		)
	}

	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
