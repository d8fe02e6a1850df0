package cmd

import (
	"fmt"
	"time"

	"github.com/hance08/bankdash/cmd/cmdutil"
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/session"
	"github.com/hance08/bankdash/internal/ui"
	"github.com/hance08/bankdash/internal/ui/prompts"
	"github.com/hance08/bankdash/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewLoginCmd(a *app.App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Long: `Sign in with your email and password. The session is kept on this
machine until you log out or it expires.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmdutil.SignIn(cmd.Context(), a, email)
			return err
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")

	return cmd
}

func NewSignupCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a new customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmdutil.Interactive() {
				return cmdutil.ErrNotInteractive
			}

			ui.PrintScreenTitle("Create your account")
			form, err := prompts.PromptSignUp()
			if err != nil {
				return err
			}

			var msg string
			err = cmdutil.Spin("Creating account...", func() error {
				var err error
				msg, err = a.Service.Auth.SignUp(cmd.Context(), form.Name, form.Email, form.Password, form.Confirm)
				return err
			})
			if err != nil {
				return err
			}

			pterm.Success.Println(msg)

			signIn, err := prompts.PromptConfirm("Sign in now?", true)
			if err != nil || !signIn {
				return err
			}
			_, err = cmdutil.SignIn(cmd.Context(), a, form.Email)
			return err
		},
	}
}

func NewLogoutCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Service.Auth.SignOut(cmd.Context()); err != nil {
				return fmt.Errorf("failed to sign out: %w", err)
			}
			pterm.Success.Println("Signed out")
			return nil
		},
	}
}

func NewWhoamiCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.Service.Auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			if sess == nil {
				pterm.Warning.Println("Not signed in. Run `bankdash login` to continue.")
				return nil
			}

			data := pterm.TableData{
				{"Name", sess.User.Name},
				{"Email", sess.User.Email},
				{"Role", string(sess.User.Role)},
			}
			if exp, ok := session.TokenExpiry(sess.Token); ok {
				data = append(data, []string{"Session expires", expiryLabel(exp, a.Config.Display.TimeFormat)})
			}
			return pterm.DefaultTable.WithData(data).Render()
		},
	}
}

func expiryLabel(exp time.Time, layout string) string {
	label := utils.FormatTime(exp, layout)
	if exp.Before(time.Now()) {
		return pterm.Red(label + " (expired)")
	}
	return label + " (" + utils.Ago(exp) + ")"
}
