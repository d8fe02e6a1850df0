package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/apitest"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newClient(t *testing.T, srv *apitest.Server, store session.Store) *api.Client {
	t.Helper()
	c, err := api.NewClient(srv.BaseURL(), 5*time.Second, store, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestNewClientValidatesURL(t *testing.T) {
	if _, err := api.NewClient("://bad-url", time.Second, nil, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := api.NewClient("/relative", time.Second, nil, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestLoginAndAuthorizedRequests(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	user := srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)
	srv.AddTransaction(user.ID, model.KindDeposit, 100, time.Now().Add(-time.Hour))

	store := session.NewMemory()
	c := newClient(t, srv, store)
	ctx := context.Background()

	sess, err := c.Login(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.User.ID != user.ID || sess.User.Role != model.RoleCustomer || sess.Token == "" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txs, err := c.ListTransactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 || txs[0].Kind != model.KindDeposit || txs[0].Balance != 100 {
		t.Fatalf("unexpected transactions %+v", txs)
	}

	tokens := srv.Tokens()
	if tokens[0] != "" {
		t.Fatalf("login must not carry a token, got %q", tokens[0])
	}
	if tokens[1] != "Bearer "+sess.Token {
		t.Fatalf("expected bearer token on list request, got %q", tokens[1])
	}
}

func TestLoginFailureMessage(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.AddUser("Ada", "ada@example.com", "secret1", model.RoleCustomer)

	c := newClient(t, srv, session.NewMemory())
	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if got := api.Message(err); got != "Invalid email or password" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRegister(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	c := newClient(t, srv, nil)
	ctx := context.Background()

	msg, err := c.Register(ctx, "Bob", "bob@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg == "" {
		t.Fatal("expected acknowledgement message")
	}

	_, err = c.Register(ctx, "Bob", "bob@example.com", "secret1")
	if got := api.Message(err); got != "Email already registered" {
		t.Fatalf("unexpected message %q (%v)", got, err)
	}
}

func TestBankerEndpoints(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	banker := srv.AddUser("Bea", "bea@bank.test", "secret1", model.RoleBanker)
	alice := srv.AddUser("Alice", "alice@example.com", "secret1", model.RoleCustomer)
	srv.AddUser("Carl", "carl@example.com", "secret1", model.RoleCustomer)
	srv.AddTransaction(alice.ID, model.KindDeposit, 50, time.Now())

	store := session.NewMemory()
	_ = store.Set(context.Background(), &model.Session{Token: apitest.Token(banker, time.Hour), User: banker})
	c := newClient(t, srv, store)

	customers, err := c.ListCustomers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %+v", customers)
	}

	txs, err := c.ListCustomerTransactions(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
}

func TestCustomerCannotListCustomers(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	alice := srv.AddUser("Alice", "alice@example.com", "secret1", model.RoleCustomer)
	store := session.NewMemory()
	_ = store.Set(context.Background(), &model.Session{Token: apitest.Token(alice, time.Hour), User: alice})

	_, err := newClient(t, srv, store).ListCustomers(context.Background())
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDepositAndWithdraw(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	alice := srv.AddUser("Alice", "alice@example.com", "secret1", model.RoleCustomer)
	store := session.NewMemory()
	_ = store.Set(context.Background(), &model.Session{Token: apitest.Token(alice, time.Hour), User: alice})
	c := newClient(t, srv, store)
	ctx := context.Background()

	res, err := c.Deposit(ctx, alice.ID, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Transaction == nil || res.Transaction.Kind != model.KindDeposit || res.Balance == nil || *res.Balance != 80 {
		t.Fatalf("unexpected result %+v", res)
	}

	_, err = c.Withdraw(ctx, alice.ID, 500)
	if got := api.Message(err); got != "Insufficient balance" {
		t.Fatalf("unexpected message %q", got)
	}

	res, err = c.Withdraw(ctx, alice.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *res.Balance != 50 {
		t.Fatalf("expected balance 50, got %v", *res.Balance)
	}
}

func TestErrorPayloadFallbacks(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	c := newClient(t, srv, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		body any
		want string
	}{
		{name: "message field", body: map[string]string{"message": "Maintenance"}, want: "Maintenance"},
		{name: "error field", body: map[string]string{"error": "Legacy failure"}, want: "Legacy failure"},
		{name: "no message", body: map[string]int{"code": 7}, want: api.DefaultMessage},
		{name: "no body", body: nil, want: api.DefaultMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv.FailNext(http.StatusInternalServerError, tc.body)
			_, err := c.ListCustomers(ctx)

			var apiErr *api.Error
			if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
				t.Fatalf("expected api error 500, got %v", err)
			}
			if got := api.Message(err); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTransportErrorUsesFallback(t *testing.T) {
	srv := apitest.New()
	url := srv.BaseURL()
	srv.Close()

	c, err := api.NewClient(url, time.Second, nil, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.ListCustomers(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if api.Message(err) != api.DefaultMessage {
		t.Fatalf("unexpected message %q", api.Message(err))
	}
	if !strings.Contains(err.Error(), "GET") {
		t.Fatalf("error should name the request, got %v", err)
	}
}
