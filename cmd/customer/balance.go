package customer

import (
	"errors"

	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/ui/views"
	"github.com/hance08/bankdash/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewBalanceCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash, err := open(cmd.Context(), a, listview.NewProgressive(1, 1))
			if err != nil {
				return err
			}

			balance, known := dash.Balance()
			if !known {
				return errors.New(dash.History.Loader().Message())
			}

			views.RenderBalance(dash.Session.User.Name, balance, known)

			items := dash.History.Loader().Items()
			if len(items) > 0 {
				pterm.FgGray.Printf("Last activity: %s %s, %s\n",
					items[0].Kind.Label(),
					utils.FormatMoney(items[0].Amount),
					utils.Ago(items[0].CreatedAt))
			}
			return nil
		},
	}
}
