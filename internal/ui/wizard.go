package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	actionScan   = "scan"
	actionDryRun = "dry-run"
	actionRename = "rename"
	actionQuit   = "quit"
)

// RemoteHandlers run the remote menu's actions on a directory.
type RemoteHandlers struct {
	Scan   func(dir string) error
	Rename func(dir string, dryRun bool) error
}

// PrintBanner prints the menu header for a connected target.
func PrintBanner(target string) {
	fmt.Println()
	fmt.Println(StyleNew.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorLabel).
		Padding(0, 4).
		Render("subrename"))
	fmt.Printf("  %s %s\n\n", StyleDim.Render("Connected to"), StylePath.Render(target))
}

// RunRemoteMenu repeatedly asks for an action and a directory on an open
// remote session until the user quits. Action failures are logged and the
// menu continues.
func RunRemoteMenu(target string, h RemoteHandlers) error {
	PrintBanner(target)
	dir := "."

	for {
		choice := ""
		err := RunForm(huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("Scan directory", actionScan),
						huh.NewOption("Preview renames (dry run)", actionDryRun),
						huh.NewOption("Rename subtitles", actionRename),
						huh.NewOption("Quit", actionQuit),
					).
					Value(&choice),
			),
		))
		if errors.Is(err, ErrUserBack) || errors.Is(err, ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == actionQuit {
			return nil
		}

		next, err := PromptDirectory(dir)
		if errors.Is(err, ErrUserBack) {
			continue
		}
		if errors.Is(err, ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		dir = next

		switch choice {
		case actionScan:
			err = h.Scan(dir)
		case actionDryRun:
			err = h.Rename(dir, true)
		case actionRename:
			err = h.Rename(dir, false)
		}
		if err != nil {
			Logger().Error("Action failed", "action", choice, "dir", dir, "error", err)
		}
		fmt.Println()
	}
}
