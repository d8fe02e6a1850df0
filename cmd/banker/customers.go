package banker

import (
	"context"
	"errors"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/service"
	"github.com/hance08/bankdash/internal/ui"
	"github.com/hance08/bankdash/internal/ui/views"
	"github.com/spf13/cobra"
)

type customersRunner struct {
	app   *app.App
	flags *cmdutil.ListFlags
}

func NewCustomersCmd(a *app.App) *cobra.Command {
	flags := &cmdutil.ListFlags{}

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers",
		Long: `List customers, newest first.
Use --query to search name, email and join date, and --page/--size to move
through the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &customersRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Query, "query", "q", "", "search text")
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "", "sort order (newest, oldest, name)")
	cmd.Flags().IntVarP(&flags.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&flags.Size, "size", 0, "page size (defaults to display.page_size)")

	return cmd
}

func (r *customersRunner) Run(ctx context.Context) error {
	dash, err := openList(ctx, r.app, r.flags.Window(r.app.Config.Display.PageSize))
	if err != nil {
		return err
	}
	if err := r.flags.Apply(dash.Customers, service.CustomerSorts); err != nil {
		return err
	}
	dash.Customers.Navigate(r.flags.Seek)

	loader := dash.Customers.Loader()
	if loader.Err() != nil && !loader.Loaded() {
		return errors.New(loader.Message())
	}

	ui.PrintSectionTitle("Customers")
	items, info := dash.Customers.Visible()
	return views.NewCustomerListView(r.app.Config.Display.TimeFormat).Render(items, info, dash.Customers.Query())
}
