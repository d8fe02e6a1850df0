package banker

import (
	"context"
	"errors"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
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
		Use:   "history <customer-id>",
		Short: "List the transactions of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &historyRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd.Context(), model.ID(args[0]))
		},
	}

	cmd.Flags().StringVarP(&flags.Query, "query", "q", "", "search text")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "transaction type (all, deposit, withdraw)")
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "", "sort order (newest, oldest, amount-high, amount-low)")
	cmd.Flags().IntVarP(&flags.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&flags.Size, "size", 0, "page size (defaults to display.page_size)")

	return cmd
}

func (r *historyRunner) Run(ctx context.Context, id model.ID) error {
	h, err := openCustomer(ctx, r.app, id, r.flags.Window(r.app.Config.Display.PageSize))
	if err != nil {
		return err
	}
	if err := r.flags.Apply(h.History, service.TransactionSorts); err != nil {
		return err
	}
	h.History.Navigate(r.flags.Seek)

	loader := h.History.Loader()
	if loader.Err() != nil && !loader.Loaded() {
		return errors.New(loader.Message())
	}

	ui.PrintSectionTitle("Transactions of customer %s", id)
	items, info := h.History.Visible()
	return views.NewTransactionListView(r.app.Config.Display.TimeFormat).Render(items, info, h.History.Query())
}
