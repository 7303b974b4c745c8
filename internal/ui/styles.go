package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette roles: labels, paths, new names, language tags, muted text and
// alerts (dry runs, failures).
var (
	colorLabel = lipgloss.AdaptiveColor{Light: "#1f7a3a", Dark: "#7ee08f"}
	colorPath  = lipgloss.AdaptiveColor{Light: "#3b4cc0", Dark: "#8fa2ff"}
	colorNew   = lipgloss.AdaptiveColor{Light: "#006d77", Dark: "#6fe3e8"}
	colorLang  = lipgloss.AdaptiveColor{Light: "#8a5a00", Dark: "#ffd27a"}
	colorMuted = lipgloss.AdaptiveColor{Light: "#5c5c5c", Dark: "#a0a0a0"}
	colorAlert = lipgloss.AdaptiveColor{Light: "#b0243b", Dark: "#ff7b8f"}

	StyleLabel = lipgloss.NewStyle().Bold(true).Foreground(colorLabel)
	StylePath  = lipgloss.NewStyle().Foreground(colorPath)
	StyleNew   = lipgloss.NewStyle().Bold(true).Foreground(colorNew)
	StyleLang  = lipgloss.NewStyle().Foreground(colorLang)
	StyleDim   = lipgloss.NewStyle().Foreground(colorMuted)
	StyleAlert = lipgloss.NewStyle().Italic(true).Foreground(colorAlert)
)

var (
	// ErrUserBack is returned when esc closes a form.
	ErrUserBack = errors.New("user navigated back")
	// ErrUserQuit is returned when ctrl+c closes a form.
	ErrUserQuit = errors.New("cancelled")
)

// formKeys binds esc and ctrl+c to abort. abortKey tells them apart
// afterwards.
func formKeys() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("esc", "back")
	const help = "ok • esc back • ctrl+c quit"
	km.Select.Submit.SetHelp("enter", help)
	km.Input.Submit.SetHelp("enter", help)
	km.Confirm.Submit.SetHelp("enter", help)
	return km
}

// abortKey remembers whether the last abort key of one form run was ctrl+c.
type abortKey struct {
	quit bool
}

func (k *abortKey) filter(_ tea.Model, msg tea.Msg) tea.Msg {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			k.quit = true
		case tea.KeyEsc:
			k.quit = false
		}
	}
	return msg
}

// translate maps huh.ErrUserAborted to ErrUserQuit or ErrUserBack.
func (k *abortKey) translate(err error) error {
	switch {
	case !errors.Is(err, huh.ErrUserAborted):
		return err
	case k.quit:
		return ErrUserQuit
	default:
		return ErrUserBack
	}
}

// RunForm runs f with the catppuccin theme and the shared abort keys.
func RunForm(f *huh.Form) error {
	var k abortKey
	err := f.WithTheme(huh.ThemeCatppuccin()).
		WithKeyMap(formKeys()).
		WithProgramOptions(tea.WithFilter(k.filter)).
		Run()
	return k.translate(err)
}

// ColorizeEvent styles "Label: old → new" and "Label: detail" messages.
func ColorizeEvent(msg string) string {
	label, rest, ok := strings.Cut(msg, ": ")
	if !ok {
		return msg
	}
	label = StyleLabel.Render(label + ":")

	if from, to, ok := strings.Cut(rest, " → "); ok {
		return label + " " + StyleDim.Render(from+" →") + " " + StyleNew.Render(to)
	}
	return label + " " + StylePath.Render(rest)
}
