package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mydehq/subrename"
	"github.com/mydehq/subrename/internal/config"
	"github.com/mydehq/subrename/internal/tui"
)

func main() {
	target := "."
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	cfg := config.GetDefaults()
	if path, err := config.DefaultPath(); err == nil {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	t, dir, err := subrename.Open(context.Background(), target, cfg.Remote)
	if err != nil {
		fmt.Printf("Error opening %s: %v\n", target, err)
		os.Exit(1)
	}
	defer t.Close()

	p := tea.NewProgram(tui.NewModel(t, target, dir, subrename.WithConfig(&cfg)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		t.Close()
		os.Exit(1)
	}
}
