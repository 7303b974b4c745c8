// Package tui is a full-screen front end for planning and running renames.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mydehq/subrename"
	"github.com/mydehq/subrename/internal/types"
	"github.com/mydehq/subrename/internal/ui"
)

type state int

const (
	stateInitial state = iota
	stateScanning
	stateConfirmation
	stateRenaming
	stateFinished
)

const maxEvents = 100

var (
	titleStyle    = ui.StyleNew
	subTitleStyle = ui.StyleDim

	infoStyle    = ui.StyleNew
	successStyle = ui.StyleLabel
	warningStyle = ui.StyleLang
	errorStyle   = ui.StyleAlert

	actionBarMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Background(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Padding(0, 1)

	actionBarKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Background(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Padding(0, 1).
				Bold(true)
)

type planDoneMsg struct {
	plan *subrename.RenamePlan
	err  error
}

type eventMsg subrename.Event

// eventsClosedMsg is sent once a run's event stream has ended.
type eventsClosedMsg struct{}

type renameDoneMsg struct {
	report *subrename.Report
	err    error
}

// Model is the bubbletea model of the rename screen.
type Model struct {
	state    state
	target   string
	t        subrename.Transport
	dir      string
	opts     []subrename.Option
	err      error
	quitting bool

	table table.Model
	plan  *subrename.RenamePlan
	ops   []types.RenameOperation

	events []string

	width  int
	height int
	ch     chan subrename.Event
}

// NewModel creates a model for dir on an open transport. target is shown
// in the header.
func NewModel(t subrename.Transport, target, dir string, opts ...subrename.Option) Model {
	columns := []table.Column{
		{Title: "Subtitle", Width: 40},
		{Title: "New Name", Width: 40},
		{Title: "Status", Width: 10},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	tbl.SetStyles(s)

	return Model{
		state:  stateInitial,
		target: target,
		t:      t,
		dir:    dir,
		opts:   opts,
		table:  tbl,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.state == stateInitial || m.state == stateConfirmation || m.state == stateFinished {
				m.quitting = true
				return m, tea.Quit
			}

		case "enter":
			switch {
			case m.state == stateInitial || m.state == stateFinished:
				m.state = stateScanning
				m.err = nil
				m.ops = nil
				m.updateTable()
				return m, m.planDir()
			case m.state == stateConfirmation && m.plan != nil && m.plan.Pending() > 0:
				m.state = stateRenaming
				m.err = nil
				m.events = nil
				m.ch = make(chan subrename.Event)
				m.resizeTable()
				return m, tea.Batch(m.runRename(), listenForEvents(m.ch))
			}

		case "backspace":
			if m.state == stateConfirmation {
				m.state = stateInitial
				return m, nil
			}
		}

	case planDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateInitial
			return m, nil
		}
		m.plan = msg.plan
		m.ops = msg.plan.Operations
		m.state = stateConfirmation
		m.updateTable()

	case eventMsg:
		m.addEvent(subrename.Event(msg))
		return m, listenForEvents(m.ch)

	case eventsClosedMsg:
		return m, nil

	case renameDoneMsg:
		if msg.report != nil {
			m.ops = msg.report.Operations
			m.updateTable()
		}
		m.err = msg.err
		m.state = stateFinished
		m.resizeTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()

	case error:
		m.err = msg
		return m, nil
	}

	switch m.state {
	case stateConfirmation, stateFinished, stateRenaming:
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) addEvent(e subrename.Event) {
	var styled string
	switch e.Type {
	case subrename.EventSuccess:
		styled = successStyle.Render(e.Message)
	case subrename.EventWarning:
		styled = warningStyle.Render(e.Message)
	case subrename.EventError:
		styled = errorStyle.Render(e.Message)
	default:
		styled = infoStyle.Render(e.Message)
	}

	m.events = append(m.events, styled)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func (m *Model) updateTable() {
	rows := make([]table.Row, 0, len(m.ops))
	for _, op := range m.ops {
		status := op.Status.String()
		switch op.Status {
		case types.StatusRenamed:
			status = successStyle.Render(status)
		case types.StatusFailed:
			status = errorStyle.Render(status)
		case types.StatusNotRun, types.StatusUnchanged:
			status = warningStyle.Render(status)
		}
		rows = append(rows, table.Row{ui.BaseName(op.SourcePath), ui.BaseName(op.TargetPath), status})
	}
	m.table.SetRows(rows)
}

func (m *Model) resizeTable() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	totalW := m.width - 4
	statusW := 10
	flexW := max((totalW-statusW)/2, 10)

	m.table.SetColumns([]table.Column{
		{Title: "Subtitle", Width: flexW},
		{Title: "New Name", Width: flexW},
		{Title: "Status", Width: statusW},
	})

	headerH := 4
	footerH := 2
	contentH := m.height - headerH - footerH

	if m.state == stateRenaming || m.state == stateFinished {
		// Split space between table and logs
		contentH = contentH / 2
	}

	m.table.SetHeight(max(contentH, 5) - 2)
}

func (m Model) planDir() tea.Cmd {
	t, dir, opts := m.t, m.dir, m.opts
	return func() tea.Msg {
		plan, err := subrename.Plan(context.Background(), t, dir, opts...)
		return planDoneMsg{plan: plan, err: err}
	}
}

func listenForEvents(ch <-chan subrename.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(e)
	}
}

// runRename applies the current plan. Events are sent on the run's own
// channel, which is closed when the run ends.
func (m Model) runRename() tea.Cmd {
	t, plan, ch := m.t, m.plan, m.ch
	opts := append(append([]subrename.Option{}, m.opts...), subrename.WithEvents(func(e subrename.Event) {
		ch <- e
	}))
	return func() tea.Msg {
		defer close(ch)
		report, err := subrename.Apply(context.Background(), t, plan, opts...)
		return renameDoneMsg{report: report, err: err}
	}
}

func (m Model) renderActionBar(actions []string) string {
	var rendered []string
	for _, a := range actions {
		parts := strings.SplitN(a, " ", 2)
		if len(parts) == 2 {
			rendered = append(rendered, actionBarKeyStyle.Render(parts[0])+actionBarMsgStyle.Render(parts[1]))
		}
	}
	bar := strings.Join(rendered, lipgloss.NewStyle().Background(lipgloss.Color("57")).Render("  "))

	padW := max(m.width-lipgloss.Width(bar), 0)
	padding := lipgloss.NewStyle().Background(lipgloss.Color("57")).Render(strings.Repeat(" ", padW))

	return bar + padding
}

func (m Model) eventLog() string {
	logH := max((m.height-6)/2, 5)
	maxLogs := max(logH-2, 0)

	lines := m.events
	if len(lines) > maxLogs {
		lines = lines[len(lines)-maxLogs:]
	}
	body := subTitleStyle.Render("Waiting for events...")
	if len(lines) > 0 {
		body = strings.Join(lines, "\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(m.width - 6).
		Height(maxLogs + 1).
		Render(titleStyle.Render("Events") + "\n" + body)

	return lipgloss.NewStyle().Padding(1, 2).Render(box)
}

func (m Model) center(s string) string {
	return lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, s)
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	if m.width <= 0 || m.height <= 0 {
		return "Starting..."
	}

	var s strings.Builder

	header := fmt.Sprintf("%s  %s", titleStyle.Render("SUBRENAME"), subTitleStyle.Render("DIR: "+m.target))
	s.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(header))
	s.WriteString("\n")

	var contentView string
	var actionBarView string

	switch m.state {
	case stateInitial:
		if m.err != nil {
			contentView = m.center(errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Enter to try again.", m.err)))
		} else {
			contentView = m.center("Press Enter to scan the directory")
		}
		actionBarView = m.renderActionBar([]string{"Enter Scan", "q Quit"})

	case stateScanning:
		contentView = m.center(infoStyle.Render("Scanning directory and matching subtitles..."))
		actionBarView = m.renderActionBar([]string{"ctrl+c Abort"})

	case stateConfirmation:
		switch {
		case len(m.ops) == 0:
			contentView = m.center("No subtitles to rename.")
			actionBarView = m.renderActionBar([]string{"Enter Rescan", "q Quit"})
		case m.plan.Pending() == 0:
			contentView = m.center(successStyle.Render("All subtitles already match their videos."))
			actionBarView = m.renderActionBar([]string{"Backspace Back", "q Quit"})
		default:
			stat := fmt.Sprintf("%d of %d subtitles will be renamed.", m.plan.Pending(), len(m.ops))
			if n := len(m.plan.SurplusVideos) + len(m.plan.SurplusSubtitles); n > 0 {
				stat += fmt.Sprintf(" %d unpaired files are left alone.", n)
			}
			if len(m.plan.Collisions) > 0 {
				stat += " " + warningStyle.Render(fmt.Sprintf("%d target collisions!", len(m.plan.Collisions)))
			}
			contentView = lipgloss.NewStyle().Padding(0, 2).Render(subTitleStyle.Render(stat) + "\n\n" + m.table.View())
			actionBarView = m.renderActionBar([]string{"Enter Rename", "Backspace Back", "↑/↓ Scroll", "q Quit"})
		}

	case stateRenaming:
		tableView := lipgloss.NewStyle().Padding(0, 2).Render(infoStyle.Render("Renaming...") + "\n\n" + m.table.View())
		contentView = lipgloss.JoinVertical(lipgloss.Left, tableView, m.eventLog())
		actionBarView = m.renderActionBar([]string{"ctrl+c Quit"})

	case stateFinished:
		renamed := 0
		for _, op := range m.ops {
			if op.Status == types.StatusRenamed {
				renamed++
			}
		}
		title := successStyle.Bold(true).Render("COMPLETED")
		if m.err != nil {
			title = errorStyle.Bold(true).Render(fmt.Sprintf("STOPPED: %v", m.err))
		}
		summary := fmt.Sprintf("%s  %d subtitles renamed.", title, renamed)
		tableView := lipgloss.NewStyle().Padding(0, 2).Render(summary + "\n\n" + m.table.View())
		contentView = lipgloss.JoinVertical(lipgloss.Left, tableView, m.eventLog())
		actionBarView = m.renderActionBar([]string{"Enter Rescan", "q Quit"})
	}

	s.WriteString(contentView)

	// Pin the action bar to the bottom line.
	currentLines := strings.Count(s.String(), "\n")
	if needed := (m.height - 2) - currentLines; needed > 0 {
		s.WriteString(strings.Repeat("\n", needed))
	} else {
		s.WriteString("\n")
	}
	s.WriteString(actionBarView)

	return s.String()
}
