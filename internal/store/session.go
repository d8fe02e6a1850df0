package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/session"
)

var _ session.Store = (*Store)(nil)

// Get returns the persisted session or session.ErrNoSession.
func (s *Store) Get(_ context.Context) (*model.Session, error) {
	var (
		sess model.Session
		id   string
		role string
	)

	err := s.db.QueryRow(`
		SELECT token, user_id, user_name, user_email, role
		FROM session
		WHERE id = 1
	`).Scan(&sess.Token, &id, &sess.User.Name, &sess.User.Email, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	r, err := model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSession, err)
	}

	sess.User.ID = model.ID(id)
	sess.User.Role = r
	return &sess, nil
}

// Set replaces the persisted session.
func (s *Store) Set(_ context.Context, sess *model.Session) error {
	if sess == nil {
		return errors.New("session is nil")
	}

	return s.ExecTx(func(tx *Store) error {
		if _, err := tx.db.Exec(`DELETE FROM session`); err != nil {
			return fmt.Errorf("failed to replace session: %w", err)
		}

		_, err := tx.db.Exec(`
			INSERT INTO session (id, token, user_id, user_name, user_email, role, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?)
		`, sess.Token, sess.User.ID.String(), sess.User.Name, sess.User.Email, string(sess.User.Role), time.Now().Unix())
		if err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// Clear removes the token and the user record.
func (s *Store) Clear(_ context.Context) error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
