package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/makethumbs/internal/walker"
	"github.com/dustin/go-humanize"
)

const (
	progressInterval = 100 * time.Millisecond
	maxLogLines      = 100
	timeFormat       = "15:04:05"
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// ProgressMsg is a [tea.Msg] containing [walker.Progress] information.
type ProgressMsg struct {
	t    time.Time
	data walker.Progress
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler

	fullWidthWithBorders  int
	splitWidthWithBorders int

	data walker.Progress

	spinner      spinner.Model
	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		uiHandler:    uiHandler,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		logsViewport: viewport.New(80, 20),
		logs:         make([]string, 0, maxLogLines),
		cancel:       cancel,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		updateProgress(m.uiHandler.stats),
	)
}

// updateProgress produces a [tea.Cmd] that returns a [ProgressMsg] with the
// traversal's [walker.Progress] once the [progressInterval] has passed.
func updateProgress(stats statisticsProvider) tea.Cmd {
	return tea.Tick(progressInterval, func(t time.Time) tea.Msg {
		return ProgressMsg{
			t:    t,
			data: stats.Snapshot(),
		}
	})
}

// Update is the principal message handling method of the model.
// It sets the internal state of the model, for later rendering.
//
//nolint:mnd,ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.fullWidthWithBorders = m.width - 2
		m.splitWidthWithBorders = (m.width / 2) - 2

		// Upper panels take about a third of the height.
		upperHeight := m.height / 3
		lowerHeight := m.height - upperHeight

		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = max(lowerHeight-3, 1)
		m.refreshLogs()

		if !m.ready {
			m.ready = true
			m.uiHandler.Ready.Store(true)
		}

	case ProgressMsg:
		m.data = msg.data
		cmds = append(cmds, updateProgress(m.uiHandler.stats))

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, string(msg))
		m.refreshLogs()

	case spinner.TickMsg:
		if !m.data.HasFinished {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *TeaModel) refreshLogs() {
	if len(m.logs) == 0 {
		return
	}

	logs := lipgloss.NewStyle().
		Width(m.logsViewport.Width).
		Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

	m.logsViewport.SetContent(logs)
	m.logsViewport.GotoBottom()
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	upperSection := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(m.splitWidthWithBorders).Render(m.formatTraversalView()),
		borderStyle.Width(m.splitWidthWithBorders).Render(m.formatThumbnailView()),
	)

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Process Information"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("q: quit gui • ctrl+c: quit program")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		upperSection,
		logsSection,
		helpSection,
	)
}

func (m TeaModel) formatTraversalView() string {
	var status string

	switch {
	case m.data.StartTime.IsZero():
		status = "Waiting..."
	case !m.data.HasFinished:
		status = m.spinner.View() + " Running"
	case m.data.Err != nil:
		status = errorStyle.Render("Failed: " + m.data.Err.Error())
	default:
		status = "Finished"
	}

	details := fmt.Sprintf(
		"Status: %s\n"+
			"Directories: %d\n"+
			"Files: %d (Skipped=%d)\n"+
			"Current: %s\n",
		status,
		m.data.Directories,
		m.data.Files,
		m.data.Skipped,
		m.data.Current,
	)

	return m.formatPanel("Traversal", details)
}

func (m TeaModel) formatThumbnailView() string {
	elapsed := m.data.Elapsed().Round(time.Second)

	var rate float64
	if secs := m.data.Elapsed().Seconds(); secs > 0 {
		rate = float64(m.data.Generated) / secs
	}

	timing := "Started=-"
	if !m.data.StartTime.IsZero() {
		timing = "Started=" + m.data.StartTime.Format(timeFormat)
	}
	if m.data.HasFinished {
		timing += ", Finished=" + m.data.FinishTime.Format(timeFormat)
	}

	details := fmt.Sprintf(
		"Items: Generated=%d, Cached=%d, Failed=%d\n"+
			"Read: %s (%.1f/s)\n"+
			"Time: %s (%v)\n",
		m.data.Generated,
		m.data.Cached,
		m.data.Failed,
		humanize.Bytes(m.data.Bytes),
		rate,
		timing,
		elapsed,
	)

	return m.formatPanel("Thumbnails", details)
}

func (m TeaModel) formatPanel(title string, details string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.splitWidthWithBorders).Render(title),
		"", // Empty line for spacing.
		infoStyle.Width(m.splitWidthWithBorders).Render(details),
	)
}
