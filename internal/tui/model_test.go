package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mydehq/subrename"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
)

func newTestModel(t *testing.T, files ...string) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	m := NewModel(transport.Local{}, dir, dir, subrename.WithoutDetection())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), dir
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelRenameFlow(t *testing.T) {
	m, dir := newTestModel(t, "e1.mkv", "e2.mkv", "a.en.srt", "b.srt")

	m, cmd := press(m, "enter")
	if m.state != stateScanning || cmd == nil {
		t.Fatalf("state = %v; want scanning", m.state)
	}

	next, _ := m.Update(m.planDir()())
	m = next.(Model)
	if m.state != stateConfirmation {
		t.Fatalf("state = %v (err %v); want confirmation", m.state, m.err)
	}
	if len(m.ops) != 2 {
		t.Fatalf("got %d operations; want 2", len(m.ops))
	}
	if view := m.View(); !strings.Contains(view, "2 of 2 subtitles will be renamed") {
		t.Errorf("confirmation view:\n%s", view)
	}

	m, _ = press(m, "enter")
	if m.state != stateRenaming || m.ch == nil {
		t.Fatalf("state = %v; want renaming", m.state)
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- m.runRename()() }()

	for {
		msg := listenForEvents(m.ch)()
		next, _ := m.Update(msg)
		m = next.(Model)
		if _, ok := msg.(eventsClosedMsg); ok {
			break
		}
	}
	next, _ = m.Update(<-done)
	m = next.(Model)

	if m.state != stateFinished || m.err != nil {
		t.Fatalf("state = %v, err = %v; want finished", m.state, m.err)
	}
	for _, op := range m.ops {
		if op.Status != types.StatusRenamed {
			t.Errorf("%s: status = %v", op.SourcePath, op.Status)
		}
	}
	if len(m.events) == 0 {
		t.Error("no events recorded")
	}
	for _, want := range []string{"e1.en.srt", "e2.srt"} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}
	if view := m.View(); !strings.Contains(view, "COMPLETED") {
		t.Errorf("finished view:\n%s", view)
	}
}

func TestModelPlanError(t *testing.T) {
	m := NewModel(transport.Local{}, "missing", filepath.Join(t.TempDir(), "missing"))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	next, _ = m.Update(m.planDir()())
	m = next.(Model)
	if m.state != stateInitial || m.err == nil {
		t.Fatalf("state = %v, err = %v; want initial with error", m.state, m.err)
	}
	if view := m.View(); !strings.Contains(view, "Error:") {
		t.Errorf("view does not show the error:\n%s", view)
	}
}

func TestModelNothingPending(t *testing.T) {
	m, _ := newTestModel(t, "e1.mkv", "e1.srt")

	next, _ := m.Update(m.planDir()())
	m = next.(Model)

	m, _ = press(m, "enter")
	if m.state != stateConfirmation {
		t.Errorf("state = %v; want confirmation when nothing is pending", m.state)
	}

	m, _ = press(m, "backspace")
	if m.state != stateInitial {
		t.Errorf("state = %v; want initial after backspace", m.state)
	}

	m, cmd := press(m, "q")
	if !m.quitting || cmd == nil {
		t.Error("q did not quit")
	}
}
