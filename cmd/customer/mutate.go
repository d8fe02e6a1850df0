package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/mutation"
	"github.com/hance08/bankdash/internal/service"
	"github.com/hance08/bankdash/internal/session"
	"github.com/hance08/bankdash/internal/ui/prompts"
	"github.com/hance08/bankdash/internal/ui/views"
	"github.com/hance08/bankdash/internal/utils"
	"github.com/hance08/bankdash/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type mutateFlags struct {
	Amount string
	Yes    bool
}

type mutateRunner struct {
	app   *app.App
	kind  model.Kind
	flags *mutateFlags
}

func NewDepositCmd(a *app.App) *cobra.Command {
	return newMutateCmd(a, model.KindDeposit, "Add money to your account")
}

func NewWithdrawCmd(a *app.App) *cobra.Command {
	return newMutateCmd(a, model.KindWithdraw, "Take money out of your account")
}

func newMutateCmd(a *app.App, kind model.Kind, short string) *cobra.Command {
	flags := &mutateFlags{}

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		Long: short + `.

The amount is prompted for when --amount is not given. Withdrawals larger
than your balance are refused before anything is sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &mutateRunner{
				app:   a,
				kind:  kind,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "amount, e.g. 150 or 150.50")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "skip the confirmation")

	return cmd
}

func (r *mutateRunner) Run(ctx context.Context) error {
	if r.flags.Amount == "" && !cmdutil.Interactive() {
		return fmt.Errorf("--amount is required without a terminal")
	}

	display := r.app.Config.Display
	dash, err := open(ctx, r.app, listview.NewProgressive(display.RevealInitial, display.RevealStep))
	if err != nil {
		return err
	}

	amount := r.flags.Amount
	for {
		if amount == "" {
			amount, err = prompts.PromptAmount(r.kind, dash.Form.Amount())
			if err != nil {
				return err
			}
		}

		if !r.flags.Yes && cmdutil.Interactive() {
			ok, err := confirm(dash, r.kind, amount)
			if err != nil {
				return err
			}
			if !ok {
				pterm.Info.Println("Cancelled")
				return nil
			}
		}

		out := submit(ctx, dash, r.kind, amount)
		switch {
		case out.Status == mutation.Succeeded:
			balance, _ := dash.Balance()
			pterm.Info.Printf("Current balance: %s\n", utils.FormatMoney(balance))
			return nil
		case errors.Is(out.Err, session.ErrSignInRequired), errors.Is(out.Err, mutation.ErrBusy):
			return out.Err
		case !cmdutil.Interactive() || r.flags.Amount != "":
			return errors.New(out.Message)
		}

		// Failed attempts go back to the form, amount kept.
		showFailure(out)
		retry, err := prompts.PromptConfirm("Try again?", true)
		if err != nil || !retry {
			return err
		}
		amount = ""
	}
}

// mutate runs one deposit or withdrawal from the interactive dashboard.
func (r *dashboardRunner) mutate(ctx context.Context, kind model.Kind) error {
	amount, err := prompts.PromptAmount(kind, r.dash.Form.Amount())
	if err != nil {
		return err
	}

	ok, err := confirm(r.dash, kind, amount)
	if err != nil || !ok {
		return err
	}

	out := submit(ctx, r.dash, kind, amount)
	if errors.Is(out.Err, session.ErrSignInRequired) {
		return out.Err
	}
	showFailure(out)
	return nil
}

// confirm shows the summary of a well-formed amount and asks before
// sending. Malformed amounts skip straight to submit, which rejects them
// with the form message.
func confirm(dash *service.CustomerDashboard, kind model.Kind, amount string) (bool, error) {
	value, err := validation.ParseAmount(amount)
	if err != nil {
		return true, nil
	}

	var balance *float64
	if b, ok := dash.Balance(); ok {
		balance = &b
	}
	views.RenderMutationSummary(kind, value, balance)

	return prompts.PromptConfirm("Send this "+strings.ToLower(kind.Label())+"?", true)
}

// submit sends the request. After a success it holds the confirmation
// until the flow settles back to idle.
func submit(ctx context.Context, dash *service.CustomerDashboard, kind model.Kind, amount string) mutation.Outcome {
	var out mutation.Outcome
	_ = cmdutil.Spin("Submitting "+strings.ToLower(kind.Label())+"...", func() error {
		out = dash.Submit(ctx, kind, amount)
		return nil
	})

	if out.Status == mutation.Succeeded {
		pterm.Success.Println(out.Message)
		select {
		case <-out.Done:
		case <-ctx.Done():
		}
	}
	return out
}

func showFailure(out mutation.Outcome) {
	switch out.Status {
	case mutation.Rejected:
		pterm.Warning.Println(out.Message)
	case mutation.Errored:
		pterm.Error.Println(out.Message)
	}
}
