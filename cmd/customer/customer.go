package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/service"
	"github.com/hance08/bankdash/internal/session"
	"github.com/hance08/bankdash/internal/ui"
	"github.com/hance08/bankdash/internal/ui/prompts"
	"github.com/hance08/bankdash/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewCustomerCmd(a *app.App) *cobra.Command {
	customerCmd := &cobra.Command{
		Use:   "customer",
		Short: "Open your account dashboard",
		Long: `Open the customer dashboard: your balance, deposits, withdrawals and
transaction history with search, filters and export.

Run without a subcommand for the interactive dashboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmdutil.Interactive() {
				return cmdutil.ErrNotInteractive
			}
			runner := &dashboardRunner{app: a}
			return runner.Run(cmd.Context())
		},
	}

	customerCmd.AddCommand(NewHistoryCmd(a))
	customerCmd.AddCommand(NewBalanceCmd(a))
	customerCmd.AddCommand(NewDepositCmd(a))
	customerCmd.AddCommand(NewWithdrawCmd(a))
	customerCmd.AddCommand(NewExportCmd(a))

	return customerCmd
}

// open signs the customer in when needed and loads the dashboard.
func open(ctx context.Context, a *app.App, window listview.Window) (*service.CustomerDashboard, error) {
	var dash *service.CustomerDashboard
	err := cmdutil.WithSignIn(ctx, a, func() error {
		var err error
		dash, err = a.Service.Customer.Open(ctx, window)
		return err
	})
	return dash, err
}

type dashboardRunner struct {
	app  *app.App
	dash *service.CustomerDashboard
	view *views.TransactionListView
}

func (r *dashboardRunner) Run(ctx context.Context) error {
	display := r.app.Config.Display

	var err error
	r.dash, err = open(ctx, r.app, listview.NewProgressive(display.RevealInitial, display.RevealStep))
	if err != nil {
		return err
	}
	r.view = views.NewTransactionListView(display.TimeFormat)

	for {
		info, err := r.render()
		if err != nil {
			return err
		}

		action, err := prompts.PromptAction(r.actions(info))
		if err != nil {
			return err
		}

		done, err := r.handle(ctx, action)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (r *dashboardRunner) render() (listview.PageInfo, error) {
	balance, known := r.dash.Balance()
	views.RenderBalance(r.dash.Session.User.Name, balance, known)

	ui.PrintSectionTitle("Transaction History")
	views.RenderLoadError(r.dash.History.Loader().Message())

	items, info := r.dash.History.Visible()
	if err := r.view.Render(items, info, r.dash.History.Query()); err != nil {
		return info, err
	}
	return info, nil
}

func (r *dashboardRunner) actions(info listview.PageInfo) []prompts.Action {
	actions := []prompts.Action{prompts.ActionDeposit, prompts.ActionWithdraw}
	if info.HasMore {
		actions = append(actions, prompts.ActionMore)
	}
	actions = append(actions,
		prompts.ActionSearch,
		prompts.ActionFilter,
		prompts.ActionSort,
		prompts.ActionRefresh,
		prompts.ActionExport,
		prompts.ActionQuit,
	)
	return actions
}

func (r *dashboardRunner) handle(ctx context.Context, action prompts.Action) (bool, error) {
	history := r.dash.History
	q := history.Query()

	switch action {
	case prompts.ActionDeposit:
		return false, r.mutate(ctx, model.KindDeposit)
	case prompts.ActionWithdraw:
		return false, r.mutate(ctx, model.KindWithdraw)
	case prompts.ActionMore:
		history.Navigate(func(w listview.Window, total int) {
			if p, ok := w.(*listview.Progressive); ok {
				p.More()
			}
		})
	case prompts.ActionSearch:
		text, err := prompts.PromptSearch(q.Text)
		if err != nil {
			return false, err
		}
		history.SetText(text)
	case prompts.ActionFilter:
		category, err := prompts.PromptCategory(q.Category)
		if err != nil {
			return false, err
		}
		history.SetCategory(category)
	case prompts.ActionSort:
		key, err := prompts.PromptSort(service.TransactionSorts, q.Sort)
		if err != nil {
			return false, err
		}
		history.SetSort(key)
	case prompts.ActionRefresh:
		err := cmdutil.Spin("Refreshing...", func() error { return r.dash.Refresh(ctx) })
		if err != nil && errors.Is(err, session.ErrSignInRequired) {
			return false, err
		}
	case prompts.ActionExport:
		format, err := prompts.PromptExportFormat(r.app.Config.Export.Format)
		if err != nil {
			return false, err
		}
		return false, exportHistory(r.app, r.dash, format)
	case prompts.ActionQuit:
		return true, nil
	default:
		return false, fmt.Errorf("unknown action %q", action)
	}
	return false, nil
}
