package ui

import (
	"fmt"
	"strings"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"clipcatch/internal/progress"
	"clipcatch/internal/util/format"
)

// Model renders one running job: a spinner while progress is unknown, a bar
// once percent is known, and a final status line.
type Model struct {
	label  string
	styles Styles

	stage   progress.Stage
	status  string
	percent float64 // -1 means unknown
	speed   string
	lastLog string

	done       bool
	err        error
	outputPath string
	bytes      int64

	spinner spinner.Model
	bar     bubblesprogress.Model

	eventCh chan tea.Msg
}

func newModel(label string, eventCh chan tea.Msg) Model {
	sty := defaultStyles()
	sp := spinner.New()
	sp.Style = sty.Spinner

	return Model{
		label:   label,
		styles:  sty,
		status:  "Starting",
		percent: -1,
		spinner: sp,
		bar:     bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(40)),
		eventCh: eventCh,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.eventCh
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("interrupted")
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case jobUpdateMsg:
		u := msg.U
		m.stage = u.Stage
		if u.Message != "" {
			m.status = u.Message
		}
		if u.Percent >= 0 && u.Percent >= m.percent {
			m.percent = u.Percent
		}
		if u.Speed != nil {
			m.speed = *u.Speed
		}
		return m, m.waitForEvent()

	case jobLogMsg:
		line := strings.TrimSpace(msg.L.Line)
		if line != "" {
			m.lastLog = line
		}
		return m, m.waitForEvent()

	case jobResultMsg:
		m.done = true
		m.err = msg.R.Err
		m.outputPath = msg.R.OutputPath
		m.bytes = msg.R.Bytes
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("clipcatch"))
	b.WriteString(" ")
	b.WriteString(m.styles.Label.Render(m.label))
	b.WriteString("\n")

	switch {
	case m.done && m.err != nil:
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.done:
		line := "done"
		if m.outputPath != "" {
			line = fmt.Sprintf("saved %s (%s)", m.outputPath, format.HumanizeBytes(m.bytes))
		}
		b.WriteString(m.styles.Success.Render(line))
		b.WriteString("\n")
	default:
		if m.percent >= 0 {
			b.WriteString(m.bar.ViewAs(m.percent / 100))
		} else {
			b.WriteString(m.spinner.View())
		}
		b.WriteString(" ")
		b.WriteString(m.status)
		if m.speed != "" {
			b.WriteString(m.styles.Faint.Render(" " + m.speed))
		}
		b.WriteString("\n")
		if m.lastLog != "" {
			b.WriteString(m.styles.Faint.Render(m.lastLog))
			b.WriteString("\n")
		}
	}
	return b.String()
}
