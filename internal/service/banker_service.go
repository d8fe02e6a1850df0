package service

import (
	"context"
	"errors"

	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/config"
	"github.com/hance08/bankdash/internal/constants"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/session"
)

type BankerService struct {
	backend api.Backend
	guard   *session.Guard
	store   session.Store
	config  *config.Config
}

func NewBankerService(backend api.Backend, guard *session.Guard, store session.Store, cfg *config.Config) *BankerService {
	return &BankerService{backend: backend, guard: guard, store: store, config: cfg}
}

// BankerDashboard is the customer list screen.
type BankerDashboard struct {
	Session   *model.Session
	Customers *listview.ViewModel[model.Customer]

	store session.Store
}

// CustomerHistory is a banker's view of one customer's transactions.
type CustomerHistory struct {
	Session    *model.Session
	CustomerID model.ID
	History    *listview.ViewModel[model.Transaction]

	store session.Store
}

func (s *BankerService) Open(ctx context.Context, window listview.Window) (*BankerDashboard, error) {
	sess, err := s.guard.Require(ctx, model.RoleBanker)
	if err != nil {
		return nil, err
	}

	loader := listview.NewLoader(s.backend.ListCustomers, newestCustomer, api.Message)
	customers := listview.NewViewModel(
		loader,
		CustomerOptions(s.config.Display.TimeFormat),
		CustomerRow(s.config.Display.TimeFormat),
		window,
		listview.Query{Category: listview.CategoryAll, Sort: constants.SortNewest},
	)

	d := &BankerDashboard{Session: sess, Customers: customers, store: s.store}
	if err := d.Refresh(ctx); err != nil && errors.Is(err, session.ErrSignInRequired) {
		return nil, err
	}
	return d, nil
}

func (d *BankerDashboard) Refresh(ctx context.Context) error {
	if err := d.Customers.Refresh(ctx); err != nil {
		return endSession(ctx, d.store, err)
	}
	return nil
}

// Find returns the loaded customer with id.
func (d *BankerDashboard) Find(id model.ID) (model.Customer, bool) {
	for _, c := range d.Customers.Loader().Items() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Customer{}, false
}

// OpenCustomer builds the transaction history screen of one customer.
func (s *BankerService) OpenCustomer(ctx context.Context, customerID model.ID, window listview.Window) (*CustomerHistory, error) {
	sess, err := s.guard.Require(ctx, model.RoleBanker)
	if err != nil {
		return nil, err
	}

	loader := listview.NewLoader(
		func(ctx context.Context) ([]model.Transaction, error) {
			return s.backend.ListCustomerTransactions(ctx, customerID)
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

	h := &CustomerHistory{Session: sess, CustomerID: customerID, History: history, store: s.store}
	if err := h.Refresh(ctx); err != nil && errors.Is(err, session.ErrSignInRequired) {
		return nil, err
	}
	return h, nil
}

func (h *CustomerHistory) Refresh(ctx context.Context) error {
	if err := h.History.Refresh(ctx); err != nil {
		return endSession(ctx, h.store, err)
	}
	return nil
}
