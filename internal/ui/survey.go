package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption styles survey prompts like the huh forms around them.
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "›"
		icons.Question.Format = "cyan+b"
		icons.Error.Text = "✗"
	})
}
