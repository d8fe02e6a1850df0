package banker

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
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewBankerCmd(a *app.App) *cobra.Command {
	bankerCmd := &cobra.Command{
		Use:   "banker",
		Short: "Browse customers and their transactions",
		Long: `Open the banker dashboard: the customer list and each customer's
transaction history, with search, sorting, paging and export.

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

	bankerCmd.AddCommand(NewCustomersCmd(a))
	bankerCmd.AddCommand(NewHistoryCmd(a))
	bankerCmd.AddCommand(NewExportCmd(a))

	return bankerCmd
}

func openList(ctx context.Context, a *app.App, window listview.Window) (*service.BankerDashboard, error) {
	var dash *service.BankerDashboard
	err := cmdutil.WithSignIn(ctx, a, func() error {
		var err error
		dash, err = a.Service.Banker.Open(ctx, window)
		return err
	})
	return dash, err
}

func openCustomer(ctx context.Context, a *app.App, id model.ID, window listview.Window) (*service.CustomerHistory, error) {
	var h *service.CustomerHistory
	err := cmdutil.WithSignIn(ctx, a, func() error {
		var err error
		h, err = a.Service.Banker.OpenCustomer(ctx, id, window)
		return err
	})
	return h, err
}

type dashboardRunner struct {
	app  *app.App
	dash *service.BankerDashboard
}

func (r *dashboardRunner) Run(ctx context.Context) error {
	var err error
	r.dash, err = openList(ctx, r.app, listview.NewPaged(r.app.Config.Display.PageSize))
	if err != nil {
		return err
	}
	view := views.NewCustomerListView(r.app.Config.Display.TimeFormat)

	for {
		ui.PrintScreenTitle("Customers")
		pterm.FgGray.Printf("Signed in as %s\n", r.dash.Session.User.Name)
		views.RenderLoadError(r.dash.Customers.Loader().Message())

		items, info := r.dash.Customers.Visible()
		if err := view.Render(items, info, r.dash.Customers.Query()); err != nil {
			return err
		}

		actions := []prompts.Action{}
		if len(items) > 0 {
			actions = append(actions, prompts.ActionOpen)
		}
		actions = append(actions, pageActions(info)...)
		actions = append(actions,
			prompts.ActionSearch,
			prompts.ActionSort,
			prompts.ActionRefresh,
			prompts.ActionExport,
			prompts.ActionQuit,
		)

		action, err := prompts.PromptAction(actions)
		if err != nil {
			return err
		}

		q := r.dash.Customers.Query()
		switch action {
		case prompts.ActionOpen:
			id, err := prompts.PromptCustomer(items)
			if err != nil {
				return err
			}
			if err := r.customer(ctx, id); err != nil {
				return err
			}
		case prompts.ActionSearch:
			text, err := prompts.PromptInput("Search:", "Matches name, email or join date. Leave empty to clear.", q.Text, nil)
			if err != nil {
				return err
			}
			r.dash.Customers.SetText(text)
		case prompts.ActionSort:
			key, err := prompts.PromptSort(service.CustomerSorts, q.Sort)
			if err != nil {
				return err
			}
			r.dash.Customers.SetSort(key)
		case prompts.ActionRefresh:
			err := cmdutil.Spin("Refreshing...", func() error { return r.dash.Refresh(ctx) })
			if errors.Is(err, session.ErrSignInRequired) {
				return err
			}
		case prompts.ActionExport:
			format, err := prompts.PromptExportFormat(r.app.Config.Export.Format)
			if err != nil {
				return err
			}
			if err := exportCustomers(r.app, r.dash, format); err != nil {
				return err
			}
		case prompts.ActionQuit:
			return nil
		default:
			if !page(r.dash.Customers.Navigate, action) {
				return fmt.Errorf("unknown action %q", action)
			}
		}
	}
}

// customer runs the history screen of one customer until the banker goes
// back.
func (r *dashboardRunner) customer(ctx context.Context, id model.ID) error {
	c, _ := r.dash.Find(id)

	h, err := openCustomer(ctx, r.app, id, listview.NewPaged(r.app.Config.Display.PageSize))
	if err != nil {
		return err
	}
	view := views.NewTransactionListView(r.app.Config.Display.TimeFormat)

	for {
		ui.PrintScreenTitle("Transactions of %s", displayName(c, id))
		views.RenderLoadError(h.History.Loader().Message())

		items, info := h.History.Visible()
		if err := view.Render(items, info, h.History.Query()); err != nil {
			return err
		}

		actions := pageActions(info)
		actions = append(actions,
			prompts.ActionSearch,
			prompts.ActionFilter,
			prompts.ActionSort,
			prompts.ActionRefresh,
			prompts.ActionExport,
			prompts.ActionBack,
		)

		action, err := prompts.PromptAction(actions)
		if err != nil {
			return err
		}

		q := h.History.Query()
		switch action {
		case prompts.ActionSearch:
			text, err := prompts.PromptSearch(q.Text)
			if err != nil {
				return err
			}
			h.History.SetText(text)
		case prompts.ActionFilter:
			category, err := prompts.PromptCategory(q.Category)
			if err != nil {
				return err
			}
			h.History.SetCategory(category)
		case prompts.ActionSort:
			key, err := prompts.PromptSort(service.TransactionSorts, q.Sort)
			if err != nil {
				return err
			}
			h.History.SetSort(key)
		case prompts.ActionRefresh:
			err := cmdutil.Spin("Refreshing...", func() error { return h.Refresh(ctx) })
			if errors.Is(err, session.ErrSignInRequired) {
				return err
			}
		case prompts.ActionExport:
			format, err := prompts.PromptExportFormat(r.app.Config.Export.Format)
			if err != nil {
				return err
			}
			if err := exportHistory(r.app, h, displayName(c, id), format); err != nil {
				return err
			}
		case prompts.ActionBack:
			return nil
		default:
			if !page(h.History.Navigate, action) {
				return fmt.Errorf("unknown action %q", action)
			}
		}
	}
}

// pageActions offers only the page moves that would change the page.
func pageActions(info listview.PageInfo) []prompts.Action {
	var actions []prompts.Action
	if info.CanNext {
		actions = append(actions, prompts.ActionNext, prompts.ActionLast)
	}
	if info.CanPrev {
		actions = append(actions, prompts.ActionPrev, prompts.ActionFirst)
	}
	return actions
}

// page applies a paging action. It reports false for non-paging actions.
func page(navigate func(func(listview.Window, int)), action prompts.Action) bool {
	var move func(p *listview.Paged, total int)
	switch action {
	case prompts.ActionFirst:
		move = func(p *listview.Paged, _ int) { p.First() }
	case prompts.ActionPrev:
		move = func(p *listview.Paged, _ int) { p.Prev() }
	case prompts.ActionNext:
		move = func(p *listview.Paged, total int) { p.Next(total) }
	case prompts.ActionLast:
		move = func(p *listview.Paged, total int) { p.Last(total) }
	default:
		return false
	}

	navigate(func(w listview.Window, total int) {
		if p, ok := w.(*listview.Paged); ok {
			move(p, total)
		}
	})
	return true
}

func displayName(c model.Customer, id model.ID) string {
	if c.Name != "" {
		return c.Name
	}
	return "customer " + id.String()
}
