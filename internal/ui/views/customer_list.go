package views

import (
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/utils"
	"github.com/pterm/pterm"
)

type CustomerListView struct {
	TimeFormat string
}

func NewCustomerListView(timeFormat string) *CustomerListView {
	return &CustomerListView{TimeFormat: timeFormat}
}

func (v *CustomerListView) Render(items []model.Customer, info listview.PageInfo, q listview.Query) error {
	RenderQuery(q)

	if info.Total == 0 {
		if q.Text != "" {
			pterm.Warning.Println("No customers match your search")
		} else {
			pterm.Warning.Println("No customers found")
		}
		return nil
	}

	tableData := pterm.TableData{
		{"ID", "Name", "Email", "Joined", ""},
	}
	for _, c := range items {
		tableData = append(tableData, []string{
			c.ID.String(),
			c.Name,
			c.Email,
			utils.FormatTime(c.CreatedAt, v.TimeFormat),
			pterm.Gray(utils.Ago(c.CreatedAt)),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	RenderPager(info, "customers")
	return nil
}
