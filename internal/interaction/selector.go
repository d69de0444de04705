// Where: internal/interaction/selector.go
// What: Interactive selection helpers using the huh library.
// Why: Provide keyboard-based selection when running in a terminal.
package interaction

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

const cancelIndex = -1

var runSelectPrompt = func(title string, options []huh.Option[int], selected *int) error {
	return huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(selected).
		Run()
}

// HuhPrompter implements ports.Prompter using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) SelectIndex(title string, labels []string) (int, error) {
	if len(labels) == 0 {
		return cancelIndex, ErrAborted
	}

	options := make([]huh.Option[int], 0, len(labels)+1)
	for i, label := range labels {
		options = append(options, huh.NewOption(label, i))
	}
	options = append(options, huh.NewOption("Cancel", cancelIndex))

	selected := cancelIndex
	if err := runSelectPrompt(title, options, &selected); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cancelIndex, ErrAborted
		}
		return cancelIndex, fmt.Errorf("prompt select: %w", err)
	}
	if selected == cancelIndex {
		return cancelIndex, ErrAborted
	}
	return selected, nil
}
