package views

import (
	"strconv"

	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/utils"
	"github.com/pterm/pterm"
)

type TransactionListView struct {
	TimeFormat string
}

func NewTransactionListView(timeFormat string) *TransactionListView {
	return &TransactionListView{TimeFormat: timeFormat}
}

func (v *TransactionListView) Render(items []model.Transaction, info listview.PageInfo, q listview.Query) error {
	RenderQuery(q)

	if info.Total == 0 {
		if q.Text != "" || (q.Category != "" && q.Category != listview.CategoryAll) {
			pterm.Warning.Println("No transactions match your search")
		} else {
			pterm.Warning.Println("No transactions yet")
		}
		return nil
	}

	tableData := pterm.TableData{
		{"#", "Date", "Type", "Amount", "Balance"},
	}

	for i, tx := range items {
		var coloredType, coloredAmount string

		switch tx.Kind {
		case model.KindDeposit:
			coloredType = pterm.Green(tx.Kind.Label())
			coloredAmount = pterm.Green("+" + utils.FormatMoney(tx.Amount))
		case model.KindWithdraw:
			coloredType = pterm.Red(tx.Kind.Label())
			coloredAmount = pterm.Red("-" + utils.FormatMoney(tx.Amount))
		default:
			coloredType = tx.Kind.Label()
			coloredAmount = utils.FormatMoney(tx.Amount)
		}

		tableData = append(tableData, []string{
			pterm.Gray(strconv.Itoa(info.Start + i + 1)),
			utils.FormatTime(tx.CreatedAt, v.TimeFormat),
			coloredType,
			coloredAmount,
			utils.FormatMoney(tx.Balance),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	RenderPager(info, "transactions")
	return nil
}
