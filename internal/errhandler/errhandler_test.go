package errhandler

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/session"
)

func TestIsInterrupt(t *testing.T) {
	if !IsInterrupt(fmt.Errorf("prompt: %w", terminal.InterruptErr)) {
		t.Fatal("survey interrupt must be detected")
	}
	if !IsInterrupt(huh.ErrUserAborted) {
		t.Fatal("huh abort must be detected")
	}
	if IsInterrupt(errors.New("boom")) {
		t.Fatal("plain errors are not interrupts")
	}
}

func TestSignInHint(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{err: fmt.Errorf("%w: %w", session.ErrSignInRequired, session.ErrExpired), want: "expired"},
		{err: fmt.Errorf("%w: %w", session.ErrSignInRequired, session.ErrWrongRole), want: "different account"},
		{err: fmt.Errorf("%w: %w", session.ErrSignInRequired, session.ErrNoSession), want: "not signed in"},
		{err: fmt.Errorf("%w: %w", session.ErrSignInRequired, &api.Error{Status: 401, Message: "Invalid token"}), want: "rejected your session"},
	}
	for _, tc := range cases {
		got := SignInHint(tc.err)
		if !strings.Contains(got, tc.want) || !strings.Contains(got, "bankdash login") {
			t.Fatalf("unexpected hint %q for %v", got, tc.err)
		}
	}
}

func TestCapitalize(t *testing.T) {
	if got := Capitalize("failed to load"); got != "Failed to load" {
		t.Fatalf("unexpected %q", got)
	}
	if Capitalize("") != "" {
		t.Fatal("empty stays empty")
	}
}
