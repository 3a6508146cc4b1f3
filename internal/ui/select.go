package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// SelectString prompts the user to pick one of options. Outside a terminal
// there is nothing to prompt on, so the caller gets an error instead of a
// hang.
func SelectString(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to select from")
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("no terminal available; pass the value as an argument")
	}

	var picked string
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(opts...).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return picked, nil
}
