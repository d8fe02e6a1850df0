package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hance08/bankdash/internal/model"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "1",
		"role":    "customer",
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func seed(t *testing.T, s *model.Session) *Memory {
	t.Helper()
	m := NewMemory()
	if s != nil {
		if err := m.Set(context.Background(), s); err != nil {
			t.Fatalf("failed to seed store: %v", err)
		}
	}
	return m
}

func TestGuardRequire(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	customer := model.User{ID: "1", Name: "Ada", Role: model.RoleCustomer}

	cases := []struct {
		name    string
		session *model.Session
		role    model.Role
		reason  error
	}{
		{name: "opaque token", session: &model.Session{Token: "abc", User: customer}, role: model.RoleCustomer},
		{name: "valid jwt", session: &model.Session{Token: signedToken(t, now.Add(time.Hour)), User: customer}, role: model.RoleCustomer},
		{name: "missing", session: nil, role: model.RoleCustomer, reason: ErrNoSession},
		{name: "empty token", session: &model.Session{User: customer}, role: model.RoleCustomer, reason: ErrNoSession},
		{name: "wrong role", session: &model.Session{Token: "abc", User: customer}, role: model.RoleBanker, reason: ErrWrongRole},
		{name: "expired jwt", session: &model.Session{Token: signedToken(t, now.Add(-time.Minute)), User: customer}, role: model.RoleCustomer, reason: ErrExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := seed(t, tc.session)
			g := NewGuard(store)
			g.now = func() time.Time { return now }

			got, err := g.Require(context.Background(), tc.role)
			if tc.reason == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Token != tc.session.Token {
					t.Fatalf("unexpected session %+v", got)
				}
				return
			}

			if !errors.Is(err, ErrSignInRequired) || !errors.Is(err, tc.reason) {
				t.Fatalf("expected sign-in required (%v), got %v", tc.reason, err)
			}
			if _, err := store.Get(context.Background()); !errors.Is(err, ErrNoSession) {
				t.Fatalf("store must be cleared, got %v", err)
			}
		})
	}
}

func TestTokenExpiryOpaque(t *testing.T) {
	if _, ok := TokenExpiry("not-a-jwt"); ok {
		t.Fatal("opaque tokens have no expiry")
	}
}

func TestMemoryCopies(t *testing.T) {
	m := NewMemory()
	s := &model.Session{Token: "a", User: model.User{ID: "1"}}
	_ = m.Set(context.Background(), s)
	s.Token = "mutated"

	got, _ := m.Get(context.Background())
	if got.Token != "a" {
		t.Fatalf("store must keep its own copy, got %q", got.Token)
	}
}
