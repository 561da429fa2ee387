package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/rex/internal/command"
	"github.com/pablasso/rex/internal/tui/components"
	"github.com/pablasso/rex/internal/tui/styles"
)

const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	// title (with margin), blank line, input, status bar
	chromeHeight = 5
)

const greeting = "Hello! I'm Rex.\nWhat can I do for you? Type \"help\" to see what I understand."

var helpItems = []string{"Enter Send", "PgUp/PgDn Scroll", "Esc Quit"}

// Model is the chat screen: a transcript of exchanges above a single-line
// input. Each submitted line goes through the command handler.
type Model struct {
	handler    *command.Handler
	input      textinput.Model
	transcript components.Transcript
	statusBar  components.StatusBar

	width    int
	height   int
	quitting bool
}

// Run starts the chat and blocks until the user leaves.
func Run(opts Options) error {
	p := tea.NewProgram(
		initialModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

func initialModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "todo read book"
	ti.Prompt = "› "
	ti.PromptStyle = styles.PromptStyle
	ti.CharLimit = 1000
	ti.Focus()

	m := Model{
		handler:    opts.Handler,
		input:      ti,
		transcript: components.NewTranscript(80, 20, 0),
		statusBar:  components.NewStatusBar(),
	}

	m.transcript.Append(components.SpeakerRex, greeting)
	if opts.Notice != "" {
		m.transcript.Append(components.SpeakerRexError, opts.Notice)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		// Match on key type so pasted text such as "end" still reaches the input.
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyCtrlU, tea.KeyCtrlD, tea.KeyEnd:
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input line to the handler and records the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.Reset()

	reply := m.handler.Respond(line)

	m.transcript.SetAutoScroll(true)
	m.transcript.Append(components.SpeakerUser, line)
	if reply.Error {
		m.transcript.Append(components.SpeakerRexError, reply.Text)
	} else {
		m.transcript.Append(components.SpeakerRex, reply.Text)
	}

	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateLayout() {
	m.transcript.SetSize(m.width, max(m.height-chromeHeight, 1))
	m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-1, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return m.renderTerminalTooSmall()
	}

	title := styles.TitleStyle.Render("Rex")
	summary := fmt.Sprintf("%d tasks", m.handler.List().Size())
	status := m.statusBar.Render(m.width, helpItems, summary)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.transcript.View(),
		"",
		m.input.View(),
		status,
	)
}

func (m Model) renderTerminalTooSmall() string {
	msg := fmt.Sprintf("Terminal too small\n\nMinimum: %dx%d\nCurrent: %dx%d",
		MinTerminalWidth, MinTerminalHeight, m.width, m.height)
	return lipgloss.Place(max(m.width, 1), max(m.height, 1),
		lipgloss.Center, lipgloss.Center,
		styles.SubtleStyle.Render(msg))
}
