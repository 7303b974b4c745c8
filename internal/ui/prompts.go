package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// ConfirmRename asks before a live run renames pending files in target.
func ConfirmRename(target string, pending int) (bool, error) {
	confirmed := false
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Rename %d subtitles?", pending)).
				Description(target).
				Affirmative("Rename").
				Negative("Cancel").
				Value(&confirmed),
		),
	))
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// PromptUser asks for the SSH user name of host.
func PromptUser(host string) (string, error) {
	user := ""
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SSH user").
				Description(fmt.Sprintf("User name for %s", host)).
				Value(&user).
				Validate(required("user name")),
		),
	))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(user), nil
}

// PromptDirectory asks for a remote directory, starting from current.
func PromptDirectory(current string) (string, error) {
	dir := current
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Remote directory").
				Description("Directory holding the videos and subtitles").
				Value(&dir).
				Validate(required("directory")),
		),
	))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(dir), nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
