package prompts

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/huh"
	"github.com/hance08/bankdash/internal/ui"
	"github.com/hance08/bankdash/internal/validation"
)

type Credentials struct {
	Email    string
	Password string
}

// PromptSignIn asks for email and password. The password prompt never
// echoes input.
func PromptSignIn(email string) (Credentials, error) {
	creds := Credentials{Email: email}

	if creds.Email == "" {
		err := huh.NewInput().
			Title("Email:").
			Value(&creds.Email).
			Validate(validation.ValidateEmail).
			Run()
		if err != nil {
			return Credentials{}, err
		}
	}

	err := survey.AskOne(
		&survey.Password{Message: "Password:"},
		&creds.Password,
		survey.WithValidator(survey.Required),
		ui.IconOption(),
	)
	if err != nil {
		return Credentials{}, err
	}

	return creds, nil
}

type SignUpForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// PromptSignUp runs the registration form.
func PromptSignUp() (SignUpForm, error) {
	var f SignUpForm

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name:").
				Value(&f.Name).
				Validate(validation.ValidateName),
			huh.NewInput().
				Title("Email:").
				Value(&f.Email).
				Validate(validation.ValidateEmail),
			huh.NewInput().
				Title("Password:").
				EchoMode(huh.EchoModePassword).
				Value(&f.Password).
				Validate(validation.ValidatePassword),
			huh.NewInput().
				Title("Confirm password:").
				EchoMode(huh.EchoModePassword).
				Value(&f.Confirm).
				Validate(func(s string) error {
					if s != f.Password {
						return validation.ErrPasswordMismatch
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return SignUpForm{}, err
	}
	return f, nil
}
