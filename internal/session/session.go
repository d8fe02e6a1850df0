// Package session gates dashboard screens on the persisted sign-in state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hance08/bankdash/internal/model"
)

var (
	// ErrNoSession is returned by a Store that holds no session.
	ErrNoSession = errors.New("not signed in")
	// ErrSignInRequired means the screen can not be shown and the user
	// must sign in again. The persisted session has been cleared.
	ErrSignInRequired = errors.New("sign in required")

	ErrWrongRole = errors.New("signed in with a different role")
	ErrExpired   = errors.New("session expired")
)

// Store persists the session across runs. Token and user are always
// written and cleared together.
type Store interface {
	Get(ctx context.Context) (*model.Session, error)
	Set(ctx context.Context, s *model.Session) error
	Clear(ctx context.Context) error
}

// Guard checks the persisted session at screen entry.
type Guard struct {
	store Store
	now   func() time.Time
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store, now: time.Now}
}

// Require returns the session when it is present, carries a token, belongs
// to role and has not expired. Any other state clears the store and
// returns an error wrapping ErrSignInRequired.
func (g *Guard) Require(ctx context.Context, role model.Role) (*model.Session, error) {
	s, err := g.store.Get(ctx)
	if err != nil && !errors.Is(err, ErrNoSession) {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	reason := g.check(s, role)
	if reason == nil {
		return s, nil
	}

	if clearErr := g.store.Clear(ctx); clearErr != nil {
		return nil, fmt.Errorf("failed to clear session: %w", clearErr)
	}
	return nil, fmt.Errorf("%w: %w", ErrSignInRequired, reason)
}

func (g *Guard) check(s *model.Session, role model.Role) error {
	if s == nil || s.Token == "" || s.User.ID == "" {
		return ErrNoSession
	}
	if role != "" && s.User.Role != role {
		return ErrWrongRole
	}
	if exp, ok := TokenExpiry(s.Token); ok && !g.now().Before(exp) {
		return ErrExpired
	}
	return nil
}

// TokenExpiry reads the exp claim of a JWT bearer token without verifying
// its signature; the server stays the authority. Opaque tokens report
// false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.Mutex
	session *model.Session
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *Memory) Set(_ context.Context, s *model.Session) error {
	if s == nil {
		return errors.New("session is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *s
	m.session = &c
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
