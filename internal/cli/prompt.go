package cli

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// knownStatuses are offered when no --status flag is given. Any other text is
// still accepted and counts as pending.
var knownStatuses = []string{
	"applied",
	"interested",
	"phone screen",
	"interview",
	"offer",
	"accepted",
	"rejected",
}

var errPromptAborted = errors.New("aborted")

// promptStatus asks the user to pick one of the known statuses.
func promptStatus(label string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: knownStatuses,
		Size:  len(knownStatuses),
	}

	_, status, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", errPromptAborted
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return status, nil
}
