package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/apitest"
	"github.com/hance08/bankdash/internal/config"
	"github.com/hance08/bankdash/internal/export"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/mutation"
	"github.com/hance08/bankdash/internal/session"
	"github.com/spf13/afero"
)

type fixture struct {
	srv   *apitest.Server
	store *session.Memory
	svc   *Service
	fs    afero.Fs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := session.NewMemory()
	client, err := api.NewClient(srv.BaseURL(), 5*time.Second, store, logger)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	cfg := config.NewDefault()
	cfg.Mutation.CompleteDelay = 0

	fs := afero.NewMemMapFs()
	svc := NewService(client, store, export.NewSaver(fs, "/exports"), cfg, logger)
	return &fixture{srv: srv, store: store, svc: svc, fs: fs}
}

func (f *fixture) signIn(t *testing.T, email string) *model.Session {
	t.Helper()
	sess, err := f.svc.Auth.SignIn(context.Background(), email, "secret1")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	return sess
}

func TestCustomerDashboardNewestFirst(t *testing.T) {
	f := newFixture(t)
	user := f.srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	t1 := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)
	f.srv.AddTransaction(user.ID, model.KindDeposit, 20, t1)
	f.srv.AddTransaction(user.ID, model.KindWithdraw, 5, t2)
	f.signIn(t, "ada@example.com")

	d, err := f.svc.Customer.Open(context.Background(), listview.NewProgressive(8, 8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := d.History.Derived()
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(got))
	}
	if !got[0].CreatedAt.Equal(t2) || !got[1].CreatedAt.Equal(t1) {
		t.Fatalf("expected newest first, got %+v", got)
	}

	balance, ok := d.Balance()
	if !ok || balance != 15 {
		t.Fatalf("expected balance 15, got %v (%v)", balance, ok)
	}
}

func TestCustomerDashboardKeepsCollectionAfterFailedLoad(t *testing.T) {
	f := newFixture(t)
	user := f.srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	f.srv.AddTransaction(user.ID, model.KindDeposit, 20, time.Now())
	f.signIn(t, "ada@example.com")

	d, err := f.svc.Customer.Open(context.Background(), listview.NewPaged(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.srv.FailNext(http.StatusServiceUnavailable, apitest.ErrorBody("Ledger offline"))
	if err := d.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	if len(d.History.Derived()) != 1 {
		t.Fatal("previous collection must stay visible")
	}
	if msg := d.History.Loader().Message(); msg != "Ledger offline" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCustomerDashboardRequiresCustomerSession(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("Bea", "bea@bank.test", "secret1", model.RoleBanker)

	if _, err := f.svc.Customer.Open(context.Background(), listview.NewPaged(8)); !errors.Is(err, session.ErrSignInRequired) {
		t.Fatalf("expected sign-in required without session, got %v", err)
	}

	f.signIn(t, "bea@bank.test")
	_, err := f.svc.Customer.Open(context.Background(), listview.NewPaged(8))
	if !errors.Is(err, session.ErrWrongRole) {
		t.Fatalf("expected wrong role, got %v", err)
	}
	if cur, _ := f.svc.Auth.Current(context.Background()); cur != nil {
		t.Fatal("wrong role must clear the session")
	}
	if len(f.srv.Requests()) != 1 {
		t.Fatalf("no data may be loaded without a valid session, saw %v", f.srv.Requests())
	}
}

func TestRejectedTokenEndsSession(t *testing.T) {
	f := newFixture(t)
	user := f.srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	_ = f.store.Set(context.Background(), &model.Session{Token: "forged", User: user})

	_, err := f.svc.Customer.Open(context.Background(), listview.NewPaged(8))
	if !errors.Is(err, session.ErrSignInRequired) || !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected sign-in required from rejected token, got %v", err)
	}
	if _, err := f.store.Get(context.Background()); !errors.Is(err, session.ErrNoSession) {
		t.Fatal("rejected token must clear the session")
	}
}

func TestCustomerDepositWithdrawRefreshes(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	f.signIn(t, "ada@example.com")
	ctx := context.Background()

	d, err := f.svc.Customer.Open(ctx, listview.NewPaged(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := d.Submit(ctx, model.KindDeposit, "100")
	if out.Status != mutation.Succeeded {
		t.Fatalf("expected success, got %+v", out)
	}
	<-out.Done
	if b, _ := d.Balance(); b != 100 {
		t.Fatalf("expected refreshed balance 100, got %v", b)
	}

	requests := len(f.srv.Requests())
	out = d.Submit(ctx, model.KindWithdraw, "150")
	if out.Status != mutation.Rejected {
		t.Fatalf("expected local rejection, got %+v", out)
	}
	if len(f.srv.Requests()) != requests {
		t.Fatal("rejected withdrawal must not reach the server")
	}

	out = d.Submit(ctx, model.KindWithdraw, "50")
	if out.Status != mutation.Succeeded {
		t.Fatalf("expected success, got %+v", out)
	}
	if len(d.History.Derived()) != 2 {
		t.Fatalf("expected 2 transactions after refresh, got %d", len(d.History.Derived()))
	}
}

func TestCustomerSubmitFailureMessage(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	f.signIn(t, "ada@example.com")
	ctx := context.Background()

	d, err := f.svc.Customer.Open(ctx, listview.NewPaged(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.srv.FailNext(http.StatusBadRequest, apitest.ErrorBody("Daily limit reached"))
	out := d.Submit(ctx, model.KindDeposit, "10")
	if out.Status != mutation.Errored || out.Message != "Daily limit reached" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if d.Form.Amount() != "10" {
		t.Fatalf("amount must be kept, got %q", d.Form.Amount())
	}
}

func TestBankerDashboards(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("Bea", "bea@bank.test", "secret1", model.RoleBanker)
	alice := f.srv.AddUser("Alice", "alice@example.com", "secret1", model.RoleCustomer)
	f.srv.AddUser("Carl", "carl@example.com", "secret1", model.RoleCustomer)
	f.srv.AddTransaction(alice.ID, model.KindDeposit, 40, time.Now().Add(-time.Hour))
	f.srv.AddTransaction(alice.ID, model.KindWithdraw, 15, time.Now())
	f.signIn(t, "bea@bank.test")
	ctx := context.Background()

	d, err := f.svc.Banker.Open(ctx, listview.NewPaged(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Customers.SetText("ALICE")
	if got := d.Customers.Derived(); len(got) != 1 || got[0].ID != alice.ID {
		t.Fatalf("expected alice only, got %+v", got)
	}
	if _, ok := d.Find(alice.ID); !ok {
		t.Fatal("expected to find alice")
	}

	h, err := f.svc.Banker.OpenCustomer(ctx, alice.ID, listview.NewPaged(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.History.SetCategory(string(model.KindWithdraw))
	got := h.History.Derived()
	if len(got) != 1 || got[0].Kind != model.KindWithdraw {
		t.Fatalf("expected one withdrawal, got %+v", got)
	}
}

func TestBankerScreensRejectCustomers(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	f.signIn(t, "ada@example.com")

	if _, err := f.svc.Banker.Open(context.Background(), listview.NewPaged(8)); !errors.Is(err, session.ErrSignInRequired) {
		t.Fatalf("expected sign-in required, got %v", err)
	}
}

func TestExportTransactions(t *testing.T) {
	f := newFixture(t)
	user := f.srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	f.srv.AddTransaction(user.ID, model.KindDeposit, 20, time.Now().Add(-time.Hour))
	f.srv.AddTransaction(user.ID, model.KindWithdraw, 5, time.Now())
	f.signIn(t, "ada@example.com")

	d, err := f.svc.Customer.Open(context.Background(), listview.NewPaged(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := f.svc.Export.Save(export.FormatCSV, "transactions", "Transactions", d.History.Rows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	lines := 1
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 3 {
		t.Fatalf("expected header and 2 rows despite page size 1, got %d lines", lines)
	}

	d.History.SetText("no such thing")
	if _, err := f.svc.Export.Save(export.FormatCSV, "empty", "Empty", d.History.Rows()); !errors.Is(err, export.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestAuthSignUpAndSignOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Auth.SignUp(ctx, "Ada", "ada@example.com", "secret1", "secret2"); err == nil {
		t.Fatal("expected local mismatch error")
	}
	if len(f.srv.Requests()) != 0 {
		t.Fatal("local validation must not reach the server")
	}

	if _, err := f.svc.Auth.SignUp(ctx, "Ada", "ada@example.com", "secret1", "secret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess := f.signIn(t, "ada@example.com")
	if sess.User.Role != model.RoleCustomer {
		t.Fatalf("unexpected role %q", sess.User.Role)
	}

	if err := f.svc.Auth.SignOut(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur, err := f.svc.Auth.Current(ctx); cur != nil || err != nil {
		t.Fatalf("expected no session after sign out, got %+v (%v)", cur, err)
	}
}
