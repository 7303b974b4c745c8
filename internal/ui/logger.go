package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var logger *log.Logger

// NewLogger creates the application logger. verbose enables debug output
// with caller and timestamp information.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// SetLogger injects the application logger into the UI package.
func SetLogger(l *log.Logger) {
	logger = l
}

// HasLogger reports whether SetLogger has been called.
func HasLogger() bool {
	return logger != nil
}

// Logger returns the injected logger, or a discarding one.
func Logger() *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// ConfigureLoggerStyles applies the lipgloss styling to the injected logger.
func ConfigureLoggerStyles() {
	if logger == nil {
		return
	}
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Bold(true).
		Foreground(lipgloss.Color("63"))

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO ").
		Bold(true).
		Foreground(lipgloss.Color("86"))

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN ").
		Bold(true).
		Foreground(lipgloss.Color("192"))

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))

	logger.SetStyles(styles)
}
