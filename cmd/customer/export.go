package customer

import (
	"errors"
	"fmt"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/export"
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
		Use:   "export",
		Short: "Save your transactions as CSV or PDF",
		Long: `Save the transactions matching --query/--kind/--sort to the export
directory. Every matching transaction is written, not just one page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := flags.Format
			if format == "" {
				format = a.Config.Export.Format
			}

			dash, err := open(cmd.Context(), a, flags.Window(a.Config.Display.PageSize))
			if err != nil {
				return err
			}
			if loader := dash.History.Loader(); !loader.Loaded() {
				return errors.New(loader.Message())
			}
			if err := flags.Apply(dash.History, service.TransactionSorts); err != nil {
				return err
			}
			return exportHistory(a, dash, format)
		},
	}

	cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "csv or pdf (defaults to export.format)")
	cmd.Flags().StringVarP(&flags.Query, "query", "q", "", "search text")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "transaction type (all, deposit, withdraw)")
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "", "sort order (newest, oldest, amount-high, amount-low)")

	return cmd
}

// exportHistory saves the whole derived history. An empty projection
// writes nothing.
func exportHistory(a *app.App, dash *service.CustomerDashboard, format string) error {
	title := fmt.Sprintf("Transaction statement: %s", dash.Session.User.Name)

	path, err := a.Service.Export.Save(format, "transactions", title, dash.History.Rows())
	if errors.Is(err, export.ErrEmpty) {
		pterm.Warning.Println("No transactions to export")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	pterm.Success.Printf("Saved %s\n", path)
	return nil
}
