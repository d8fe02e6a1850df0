// Package api is the HTTP client of the external banking API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/session"
)

// Backend is the set of API operations the dashboards consume.
type Backend interface {
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	ListTransactions(ctx context.Context, userID model.ID) ([]model.Transaction, error)
	ListCustomerTransactions(ctx context.Context, customerID model.ID) ([]model.Transaction, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	Deposit(ctx context.Context, userID model.ID, amount float64) (*MutationResult, error)
	Withdraw(ctx context.Context, userID model.ID, amount float64) (*MutationResult, error)
}

// Client implements Backend over HTTP. Every request carries the bearer
// token of the persisted session when there is one.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	sessions   session.Store
	logger     *slog.Logger
}

var _ Backend = (*Client)(nil)

// MutationResult is the acknowledgement of a deposit or withdrawal.
type MutationResult struct {
	Message     string             `json:"message"`
	Transaction *model.Transaction `json:"transaction,omitempty"`
	Balance     *float64           `json:"balance,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type mutationRequest struct {
	UserID model.ID `json:"userId"`
	Amount float64  `json:"amount"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// NewClient validates baseURL and builds a client with the given timeout.
func NewClient(baseURL string, timeout time.Duration, sessions session.Store, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("api url must be absolute")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:  parsed,
		sessions: sessions,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	var out model.Session
	if err := c.do(ctx, http.MethodPost, "auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("login response carries no token")
	}
	if _, err := model.ParseRole(string(out.User.Role)); err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "auth/register", registerRequest{Name: name, Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ListTransactions(ctx context.Context, userID model.ID) ([]model.Transaction, error) {
	var out []model.Transaction
	if err := c.do(ctx, http.MethodGet, path.Join("transactions", userID.String()), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCustomerTransactions(ctx context.Context, customerID model.ID) ([]model.Transaction, error) {
	var out []model.Transaction
	p := path.Join("banker", "customers", customerID.String(), "transactions")
	if err := c.do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	if err := c.do(ctx, http.MethodGet, "banker/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Deposit(ctx context.Context, userID model.ID, amount float64) (*MutationResult, error) {
	return c.mutate(ctx, "transactions/deposit", userID, amount)
}

func (c *Client) Withdraw(ctx context.Context, userID model.ID, amount float64) (*MutationResult, error) {
	return c.mutate(ctx, "transactions/withdraw", userID, amount)
}

func (c *Client) mutate(ctx context.Context, p string, userID model.ID, amount float64) (*MutationResult, error) {
	var out MutationResult
	if err := c.do(ctx, http.MethodPost, p, mutationRequest{UserID: userID, Amount: amount}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, p string, body, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, p)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", slog.String("method", method), slog.String("path", endpoint.Path), slog.Any("error", err))
		return fmt.Errorf("%s %s: %w", method, endpoint.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", endpoint.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) string {
	if c.sessions == nil {
		return ""
	}
	s, err := c.sessions.Get(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			c.logger.Warn("failed to read session", slog.Any("error", err))
		}
		return ""
	}
	return s.Token
}
