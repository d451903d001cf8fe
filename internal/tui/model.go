// Package tui implements the full-screen chat interface with Bubble
// Tea: a scrollback viewport, a single-line input, and a spinner while
// a question is in flight.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hsinyulin/ledgerchat/internal/cli"
	"github.com/hsinyulin/ledgerchat/internal/model"
	"github.com/hsinyulin/ledgerchat/internal/pipeline"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

// state is the interface's input mode.
type state int

const (
	stateReady state = iota
	stateThinking
)

// answerMsg delivers a finished pipeline response to the update loop.
type answerMsg struct {
	resp pipeline.Response
	err  error
}

// line is one rendered scrollback entry.
type line struct {
	text   string
	isUser bool
}

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	pipeline *pipeline.Pipeline
	session  *session.Session
	ctx      context.Context

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	history   []line
	state     state
	width     int
	height    int
	ready     bool
	err       error
	lastLevel model.ConfidenceLevel
}

// NewModel creates the chat model over a running pipeline.
func NewModel(ctx context.Context, p *pipeline.Pipeline, sess *session.Session) Model {
	input := textinput.New()
	input.Placeholder = "問我關於您的支出 / Ask about your spending"
	input.Focus()
	input.CharLimit = 280

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.PrimaryColor)

	return Model{
		pipeline: p,
		session:  sess,
		ctx:      ctx,
		input:    input,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.state == stateThinking {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.history = append(m.history, line{text: question, isUser: true})
			m.state = stateThinking
			m.refreshViewport()
			return m, tea.Batch(m.spinner.Tick, m.ask(question))
		}

	case answerMsg:
		m.state = stateReady
		if msg.err != nil {
			m.err = msg.err
			m.history = append(m.history, line{text: cli.ErrorStyle.Render(msg.err.Error())})
		} else {
			m.err = nil
			m.history = append(m.history, line{text: cli.Render(msg.resp)})
			if !msg.resp.Blocked {
				m.lastLevel = msg.resp.Level
			}
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.state != stateThinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var footer string
	if m.state == stateThinking {
		footer = m.spinner.View() + " 思考中 / thinking..."
	} else {
		footer = m.input.View()
	}

	hint := cli.SubtleStyle.Render("enter: send · esc: quit")
	if m.lastLevel != "" {
		hint += "  " + cli.ConfidenceStyle(m.lastLevel).Render("● "+string(m.lastLevel))
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s",
		cli.TitleStyle.Render("ledgerchat"),
		m.viewport.View(),
		footer,
		hint)
}

// ask runs the pipeline off the update loop.
func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.pipeline.Ask(m.ctx, m.session, question)
		return answerMsg{resp: resp, err: err}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	for _, entry := range m.history {
		if entry.isUser {
			sb.WriteString(cli.PromptStyle.Render("> " + entry.text))
		} else {
			sb.WriteString(entry.text)
		}
		sb.WriteString("\n\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}
