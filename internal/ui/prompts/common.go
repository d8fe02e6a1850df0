package prompts

import (
	"github.com/charmbracelet/huh"
)

// PromptInput prompts for a single line of text. An empty answer returns
// defaultValue.
func PromptInput(message, helpText, defaultValue string, validator func(string) error) (string, error) {
	value := defaultValue

	input := huh.NewInput().
		Title(message).
		Value(&value)

	if helpText != "" {
		input.Description(helpText)
	}
	if validator != nil {
		input.Validate(validator)
	}

	if err := input.Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// Option is a labelled choice of a select prompt.
type Option[T comparable] struct {
	Label string
	Value T
}

// PromptSelect prompts for one of options, preselecting current.
func PromptSelect[T comparable](message string, options []Option[T], current T) (T, error) {
	selected := current

	opts := make([]huh.Option[T], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}

	err := huh.NewSelect[T]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(min(len(opts)+2, 15)).
		Run()

	return selected, err
}
