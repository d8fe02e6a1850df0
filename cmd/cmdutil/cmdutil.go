// Package cmdutil holds helpers shared by the command packages.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/errhandler"
	"github.com/hance08/bankdash/internal/listview"
	"github.com/hance08/bankdash/internal/model"
	"github.com/hance08/bankdash/internal/service"
	"github.com/hance08/bankdash/internal/session"
	"github.com/hance08/bankdash/internal/ui/prompts"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// ErrNotInteractive is returned when a command needs to prompt but stdin or
// stdout is not a terminal.
var ErrNotInteractive = errors.New("this command needs an interactive terminal")

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SignIn runs the sign-in form and stores the new session.
func SignIn(ctx context.Context, a *app.App, email string) (*model.Session, error) {
	if !Interactive() {
		return nil, ErrNotInteractive
	}

	creds, err := prompts.PromptSignIn(email)
	if err != nil {
		return nil, err
	}

	var sess *model.Session
	err = Spin("Signing in...", func() error {
		var err error
		sess, err = a.Service.Auth.SignIn(ctx, creds.Email, creds.Password)
		return err
	})
	if err != nil {
		return nil, err
	}

	pterm.Success.Printf("Signed in as %s (%s)\n", sess.User.Name, sess.User.Role)
	return sess, nil
}

// WithSignIn runs fn. When fn fails because the session is missing,
// expired, of the wrong role or rejected by the server, the user is shown
// why and, on a terminal, offered the sign-in form before fn runs once
// more.
func WithSignIn(ctx context.Context, a *app.App, fn func() error) error {
	err := fn()
	if err == nil || !errors.Is(err, session.ErrSignInRequired) || !Interactive() {
		return err
	}

	pterm.Warning.Println(errhandler.SignInHint(err))
	ok, perr := prompts.PromptConfirm("Sign in now?", true)
	if perr != nil {
		return perr
	}
	if !ok {
		return err
	}

	if _, err := SignIn(ctx, a, ""); err != nil {
		return err
	}
	return fn()
}

// Spin shows a spinner while fn runs.
func Spin(text string, fn func() error) error {
	if !Interactive() {
		return fn()
	}

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(text)
	err := fn()
	if spinner != nil {
		_ = spinner.Stop()
	}
	return err
}

// ListFlags are the query and window flags of the non-interactive list
// commands.
type ListFlags struct {
	Query string
	Kind  string
	Sort  string
	Page  int
	Size  int
}

// Querier is the query side of a list view model.
type Querier interface {
	SetCategory(string)
	SetText(string)
	SetSort(listview.SortKey)
}

// Apply pushes the flags into q. Category goes first since it resets the
// search text and sort.
func (f *ListFlags) Apply(q Querier, sorts []listview.SortKey) error {
	if f.Kind != "" {
		k := model.Kind(strings.ToLower(f.Kind))
		if k != model.KindAll && !k.Valid() {
			return fmt.Errorf("unknown transaction type %q (all, deposit, withdraw)", f.Kind)
		}
		q.SetCategory(string(k))
	}
	if f.Sort != "" {
		key := listview.SortKey(strings.ToLower(f.Sort))
		if !service.ValidSort(key, sorts) {
			return fmt.Errorf("unknown sort %q (%s)", f.Sort, joinKeys(sorts))
		}
		q.SetSort(key)
	}
	q.SetText(f.Query)
	return nil
}

// Window builds the paged window the flags ask for.
func (f *ListFlags) Window(defaultSize int) *listview.Paged {
	size := f.Size
	if size <= 0 {
		size = defaultSize
	}
	return listview.NewPaged(size)
}

// Seek moves a paged window to the requested page, clamped into range.
func (f *ListFlags) Seek(w listview.Window, total int) {
	if p, ok := w.(*listview.Paged); ok && f.Page > 1 {
		p.SetPage(f.Page, total)
	}
}

func joinKeys(keys []listview.SortKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
