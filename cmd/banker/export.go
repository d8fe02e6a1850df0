package banker

import (
	"errors"
	"fmt"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/export"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/service"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	cmdutil.ListFlags
	Format string
}

func NewExportCmd(a *app.App) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [customer-id]",
		Short: "Save the customer list, or one customer's transactions, as CSV or PDF",
		Long: `Without an argument, save the customers matching --query/--sort.
With a customer id, save that customer's transactions matching
--query/--kind/--sort. Every match is written, not just one page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			format := flags.Format
			if format == "" {
				format = a.Config.Export.Format
			}
			window := listview.NewPaged(a.Config.Display.PageSize)

			if len(args) == 0 {
				if flags.Kind != "" {
					return errors.New("--kind only applies to a customer's transactions")
				}
				dash, err := openList(ctx, a, window)
				if err != nil {
					return err
				}
				if loader := dash.Customers.Loader(); !loader.Loaded() {
					return errors.New(loader.Message())
				}
				if err := flags.Apply(dash.Customers, service.CustomerSorts); err != nil {
					return err
				}
				return exportCustomers(a, dash, format)
			}

			id := model.ID(args[0])
			h, err := openCustomer(ctx, a, id, window)
			if err != nil {
				return err
			}
			if loader := h.History.Loader(); !loader.Loaded() {
				return errors.New(loader.Message())
			}
			if err := flags.Apply(h.History, service.TransactionSorts); err != nil {
				return err
			}
			return exportHistory(a, h, "customer "+id.String(), format)
		},
	}

	cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "csv or pdf (defaults to export.format)")
	cmd.Flags().StringVarP(&flags.Query, "query", "q", "", "search text")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "transaction type, customer history only")
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "", "sort order")

	return cmd
}

func exportCustomers(a *app.App, dash *service.BankerDashboard, format string) error {
	return save(a, format, "customers", "Customer list", dash.Customers.Rows(), "No customers to export")
}

func exportHistory(a *app.App, h *service.CustomerHistory, name, format string) error {
	base := "transactions_customer_" + h.CustomerID.String()
	title := "Transaction statement: " + name
	return save(a, format, base, title, h.History.Rows(), "No transactions to export")
}

func save(a *app.App, format, base, title string, rows []export.Row, empty string) error {
	path, err := a.Service.Export.Save(format, base, title, rows)
	if errors.Is(err, export.ErrEmpty) {
		pterm.Warning.Println(empty)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	pterm.Success.Printf("Saved %s\n", path)
	return nil
}
