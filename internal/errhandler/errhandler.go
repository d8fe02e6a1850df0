package errhandler

import (
	"errors"
	"os"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/session"
	"github.com/pterm/pterm"
)

// IsInterrupt reports whether err comes from the user aborting a prompt.
func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted)
}

// HandleError prints err and exits. Aborted prompts exit cleanly; session
// errors point the user back to the sign-in command.
func HandleError(err error) {
	switch {
	case IsInterrupt(err):
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	case errors.Is(err, session.ErrSignInRequired):
		pterm.Warning.Println(SignInHint(err))
		os.Exit(1)
	}

	pterm.Error.Println(Capitalize(err.Error()))
	os.Exit(1)
}

// SignInHint explains a session error and how to recover.
func SignInHint(err error) string {
	reason := "Please sign in"
	switch {
	case errors.Is(err, session.ErrExpired):
		reason = "Your session has expired, please sign in again"
	case errors.Is(err, session.ErrWrongRole):
		reason = "This screen needs a different account, please sign in again"
	case errors.Is(err, session.ErrNoSession):
		reason = "You are not signed in"
	case errors.Is(err, api.ErrUnauthorized):
		reason = "The server rejected your session, please sign in again"
	}
	return reason + ". Run `bankdash login` to continue."
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
