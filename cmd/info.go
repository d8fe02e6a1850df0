package cmd

import (
	"github.com/hance08/bankdash/internal/app"
	"github.com/hance08/bankdash/internal/session"
	"github.com/hance08/bankdash/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, API endpoint, session storage and export directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run(cmd)
		},
	}
}

func (r *infoRunner) Run(cmd *cobra.Command) error {
	configPath := r.app.Config.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	items := views.SystemInfoItem{
		ConfigPath:  configPath,
		APIBaseURL:  r.app.Config.API.BaseURL,
		SessionPath: r.app.SessionPath,
		ExportDir:   r.app.ExportDir,
	}

	sess, err := r.app.Service.Auth.Current(cmd.Context())
	if err != nil {
		return err
	}
	if sess != nil {
		items.SignedInAs = sess.User.Name
		if sess.User.Email != "" {
			items.SignedInAs += " <" + sess.User.Email + ">"
		}
		items.Role = string(sess.User.Role)
		if exp, ok := session.TokenExpiry(sess.Token); ok {
			items.TokenExpiry = expiryLabel(exp, r.app.Config.Display.TimeFormat)
		}
	}

	return views.RenderSystemInfo(items)
}
