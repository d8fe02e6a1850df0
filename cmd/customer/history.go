package customer

import (
	"context"
	"errors"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/service"
	"github.com/hance08/bankdash/internal/ui"
	"github.com/hance08/bankdash/internal/ui/views"
	"github.com/spf13/cobra"
)

type historyRunner struct {
	app   *app.App
	flags *cmdutil.ListFlags
}

func NewHistoryCmd(a *app.App) *cobra.Command {
	flags := &cmdutil.ListFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List your transactions",
		Long: `List your transactions, newest first.
Use --query to search type, amount and date, --kind to show only deposits
or withdrawals, and --page/--size to move through long histories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &historyRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	addListFlags(cmd, flags)

	return cmd
}

func addListFlags(cmd *cobra.Command, flags *cmdutil.ListFlags) {
	cmd.Flags().StringVarP(&flags.Query, "query", "q", "", "search text")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "transaction type (all, deposit, withdraw)")
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "", "sort order (newest, oldest, amount-high, amount-low)")
	cmd.Flags().IntVarP(&flags.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&flags.Size, "size", 0, "page size (defaults to display.page_size)")
}

func (r *historyRunner) Run(ctx context.Context) error {
	window := r.flags.Window(r.app.Config.Display.PageSize)

	dash, err := open(ctx, r.app, window)
	if err != nil {
		return err
	}
	if err := r.flags.Apply(dash.History, service.TransactionSorts); err != nil {
		return err
	}
	dash.History.Navigate(r.flags.Seek)

	ui.PrintSectionTitle("Transaction History")
	return renderHistory(dash.History, r.app.Config.Display.TimeFormat)
}

// renderHistory prints the current window. A failed first load is an
// error; a failed refresh shows above the previous data.
func renderHistory(history *listview.ViewModel[model.Transaction], timeFormat string) error {
	loader := history.Loader()
	if loader.Err() != nil && !loader.Loaded() {
		return errors.New(loader.Message())
	}
	views.RenderLoadError(loader.Message())

	items, info := history.Visible()
	return views.NewTransactionListView(timeFormat).Render(items, info, history.Query())
}
