package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/session"
	"github.com/hance08/bankdash/internal/validation"
)

type AuthService struct {
	backend api.Backend
	store   session.Store
}

func NewAuthService(backend api.Backend, store session.Store) *AuthService {
	return &AuthService{backend: backend, store: store}
}

// SignIn authenticates and persists the returned session, replacing any
// previous one.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, validation.ErrEmailInvalid
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	sess, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if sess.User.Email == "" {
		sess.User.Email = email
	}

	if err := s.store.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

// SignUp checks the form locally, then registers the account. It does not
// sign in.
func (s *AuthService) SignUp(ctx context.Context, name, email, password, confirm string) (string, error) {
	if err := validation.SignUp(name, email, password, confirm); err != nil {
		return "", err
	}

	msg, err := s.backend.Register(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Account created. You can sign in now."
	}
	return msg, nil
}

// SignOut clears the token and the user record together.
func (s *AuthService) SignOut(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Current returns the persisted session, or nil when signed out.
func (s *AuthService) Current(ctx context.Context) (*model.Session, error) {
	sess, err := s.store.Get(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, nil
	}
	return sess, err
}
