// Package tui renders the interactive progress view shown while a
// removal request runs. The model consumes engine progress events
// forwarded by the command layer and has no filesystem side effects of
// its own.
package tui

import (
	"fmt"
	"strings"

	"scour/internal/logging"
	"scour/internal/tui/styles"
	"scour/internal/wipe"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// EventMsg wraps one engine progress event for the bubbletea loop.
type EventMsg wipe.Event

// DoneMsg signals that the whole removal request finished; Err is nil
// on success.
type DoneMsg struct {
	Err error
}

// Model is the bubbletea model for the wipe progress view.
type Model struct {
	logger  *logging.AppLogger
	spinner spinner.Model
	bar     progress.Model

	width   int
	total   int // expected unlink count; 0 means unknown
	started int
	removed int
	marked  int
	current string
	done    bool
	err     error
}

// NewModel creates a progress view. total is the number of expected
// unlinks when known up front (it sizes the progress bar), or zero.
func NewModel(total int, logger *logging.AppLogger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		logger:  logger,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		total:   total,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logger.LogMessage(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		// Cancellation is not supported mid-pass; ctrl+c only leaves
		// the view, the work keeps running in the command layer.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		switch msg.Kind {
		case wipe.EventInit:
			m.started++
			m.current = msg.Path
		case wipe.EventMark:
			m.marked++
			m.current = msg.Path
		case wipe.EventRemoved:
			m.removed++
			m.current = msg.Path
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Scour"))
	b.WriteString("\n")

	switch {
	case m.done && m.err != nil:
		b.WriteString(styles.ErrorStyle.Render(m.wrap("Error: " + m.err.Error())))
		b.WriteString("\n")
	case m.done:
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("Done. %d removed, %d directories marked.", m.removed, m.marked)))
		b.WriteString("\n")
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.PathStyle.Render(m.wrap(m.current)))
		b.WriteString("\n")
		if m.total > 0 {
			b.WriteString(m.bar.ViewAs(float64(m.removed) / float64(m.total)))
			b.WriteString("\n")
		}
		b.WriteString(styles.CountStyle.Render(fmt.Sprintf("%d removed, %d marked", m.removed, m.marked)))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("ctrl+c to leave the view"))
		b.WriteString("\n")
	}

	return b.String()
}

// Removed returns the unlink count seen so far; used by tests and the
// command layer's final summary.
func (m Model) Removed() int { return m.removed }

// Err returns the terminal error, if the run failed.
func (m Model) Err() error { return m.err }

func (m Model) wrap(text string) string {
	width := m.width - 4
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
