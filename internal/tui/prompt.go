package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// PairInput prompts for one KEY=VALUE entry. An empty key means the user is
// done.
func PairInput() (key, value string, err error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Variable name (empty to finish)").
				Value(&key),
			huh.NewInput().
				Title("Value").
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("prompt: %w", err)
	}
	return key, value, nil
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	return ok, nil
}
