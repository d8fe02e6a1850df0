package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/config"
	"github.com/hance08/bankdash/internal/constants"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/mutation"
	"github.com/hance08/bankdash/internal/session"
)

type CustomerService struct {
	backend api.Backend
	guard   *session.Guard
	store   session.Store
	config  *config.Config
	logger  *slog.Logger
}

func NewCustomerService(backend api.Backend, guard *session.Guard, store session.Store, cfg *config.Config, logger *slog.Logger) *CustomerService {
	return &CustomerService{backend: backend, guard: guard, store: store, config: cfg, logger: logger}
}

// CustomerDashboard is the state of the signed-in customer's screen.
type CustomerDashboard struct {
	Session *model.Session
	History *listview.ViewModel[model.Transaction]
	Form    *mutation.Flow

	store session.Store
}

// Open checks the session, builds the dashboard and performs the initial
// load. A failed load is not an error here: the message stays on the
// loader and the screen shows it inline. A rejected token is, and ends
// the session.
func (s *CustomerService) Open(ctx context.Context, window listview.Window) (*CustomerDashboard, error) {
	sess, err := s.guard.Require(ctx, model.RoleCustomer)
	if err != nil {
		return nil, err
	}

	userID := sess.User.ID
	loader := listview.NewLoader(
		func(ctx context.Context) ([]model.Transaction, error) {
			return s.backend.ListTransactions(ctx, userID)
		},
		newestTransaction,
		api.Message,
	)

	history := listview.NewViewModel(
		loader,
		TransactionOptions(s.config.Display.TimeFormat),
		TransactionRow(s.config.Display.TimeFormat),
		window,
		listview.Query{Category: listview.CategoryAll, Sort: constants.SortNewest},
	)

	d := &CustomerDashboard{Session: sess, History: history, store: s.store}
	d.Form = mutation.NewFlow(
		func(ctx context.Context, kind model.Kind, amount float64) (string, error) {
			var res *api.MutationResult
			var err error
			if kind == model.KindWithdraw {
				res, err = s.backend.Withdraw(ctx, userID, amount)
			} else {
				res, err = s.backend.Deposit(ctx, userID, amount)
			}
			if err != nil {
				return "", err
			}
			return res.Message, nil
		},
		d.Refresh,
		mutation.WithCompleteDelay(s.config.Mutation.CompleteDelay),
		mutation.WithMessage(api.Message),
		mutation.WithLogger(s.logger),
	)

	if err := d.Refresh(ctx); err != nil {
		if errors.Is(err, session.ErrSignInRequired) {
			return nil, err
		}
		s.logger.Debug("initial transaction load failed", slog.Any("error", err))
	}
	return d, nil
}

// Refresh reloads the history. A token the server rejects ends the
// session.
func (d *CustomerDashboard) Refresh(ctx context.Context) error {
	if err := d.History.Refresh(ctx); err != nil {
		return endSession(ctx, d.store, err)
	}
	return nil
}

// Balance is the resulting balance of the newest transaction. ok is false
// until a load succeeded.
func (d *CustomerDashboard) Balance() (balance float64, ok bool) {
	loader := d.History.Loader()
	if !loader.Loaded() {
		return 0, false
	}
	items := loader.Items()
	if len(items) == 0 {
		return 0, true
	}
	return items[0].Balance, true
}

// Submit runs a deposit or withdrawal through the form flow, checking
// withdrawals against the known balance.
func (d *CustomerDashboard) Submit(ctx context.Context, kind model.Kind, amount string) mutation.Outcome {
	req := mutation.Request{Kind: kind, Amount: amount}
	if b, ok := d.Balance(); ok {
		req.Balance = &b
	}
	out := d.Form.Submit(ctx, req)
	if out.Err != nil {
		out.Err = endSession(ctx, d.store, out.Err)
	}
	return out
}

// endSession clears the store when the server rejected the token and
// turns err into a sign-in error.
func endSession(ctx context.Context, store session.Store, err error) error {
	if !errors.Is(err, api.ErrUnauthorized) {
		return err
	}
	if clearErr := store.Clear(ctx); clearErr != nil {
		return fmt.Errorf("failed to clear session: %w", clearErr)
	}
	return fmt.Errorf("%w: %w", session.ErrSignInRequired, err)
}
