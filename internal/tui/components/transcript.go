package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/rex/internal/tui/styles"
)

const defaultTranscriptMaxLines = 2000

// Speaker says who an entry in the transcript came from.
type Speaker int

const (
	SpeakerRex Speaker = iota
	SpeakerUser
	SpeakerRexError
)

// Entry is one message in the transcript.
type Entry struct {
	Speaker Speaker
	Text    string
}

// Transcript is the scrolling chat history. It wraps bubbles/viewport with
// auto-scroll tracking, a line cap and a scrollbar. Entries are re-wrapped
// whenever the width changes.
type Transcript struct {
	viewport   viewport.Model
	autoScroll bool     // true = scroll to bottom on new content
	entries    []Entry
	lines      []string // rendered, wrapped lines
	maxLines   int
	width      int // total width including scrollbar
	height     int
}

// NewTranscript creates a transcript of the given size. maxLines caps the
// rendered history (0 uses the default of 2000). One column of width is
// reserved for the scrollbar.
func NewTranscript(width, height, maxLines int) Transcript {
	if maxLines <= 0 {
		maxLines = defaultTranscriptMaxLines
	}

	vp := viewport.New(max(width-1, 0), height)
	vp.SetContent("")

	return Transcript{
		viewport:   vp,
		autoScroll: true,
		maxLines:   maxLines,
		width:      width,
		height:     height,
	}
}

// SetSize updates the dimensions and re-wraps the history.
func (t *Transcript) SetSize(width, height int) {
	if t.width == width && t.height == height {
		return
	}

	t.width = width
	t.height = height
	t.viewport.Width = t.ContentWidth()
	t.viewport.Height = height
	t.render()
}

// Append adds a message and scrolls to it when auto-scroll is on.
func (t *Transcript) Append(speaker Speaker, text string) {
	t.entries = append(t.entries, Entry{Speaker: speaker, Text: text})
	t.render()
}

// Entries returns the messages in order.
func (t Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) render() {
	var lines []string
	for i, e := range t.entries {
		// A blank line separates each exchange from the next prompt.
		if e.Speaker == SpeakerUser && i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(t.renderEntry(e), "\n")...)
	}

	if len(lines) > t.maxLines {
		lines = lines[len(lines)-t.maxLines:]
	}
	t.lines = lines

	t.viewport.SetContent(strings.Join(t.lines, "\n"))
	if t.autoScroll {
		t.viewport.GotoBottom()
	} else {
		t.viewport.SetYOffset(t.viewport.YOffset)
	}
}

func (t Transcript) renderEntry(e Entry) string {
	width := t.ContentWidth()
	switch e.Speaker {
	case SpeakerUser:
		return styles.PromptStyle.Width(width).Render("› " + e.Text)
	case SpeakerRexError:
		return styles.ErrorStyle.Width(width).Render(e.Text)
	default:
		return styles.ReplyStyle.Width(width).Render(e.Text)
	}
}

// Update handles scrolling keys and the mouse wheel. Scrolling up pauses
// auto-scroll; returning to the bottom re-enables it.
func (t *Transcript) Update(msg tea.Msg) (Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "pgup", "ctrl+u", "home":
			t.autoScroll = false
		case "down", "pgdown", "ctrl+d":
			if t.viewport.AtBottom() {
				t.autoScroll = true
			}
		case "end":
			t.viewport.GotoBottom()
			t.autoScroll = true
		}
	case tea.MouseMsg:
		t.autoScroll = t.viewport.AtBottom()
	}

	return *t, cmd
}

// View renders the visible lines with the scrollbar on the right.
func (t Transcript) View() string {
	if t.height <= 0 {
		return ""
	}

	content := strings.Split(t.viewport.View(), "\n")
	scrollbar := strings.Split(RenderScrollbar(t.height, len(t.lines), t.viewport.YOffset), "\n")
	contentWidth := t.ContentWidth()

	rows := make([]string, t.height)
	for i := range rows {
		cl := ""
		if i < len(content) {
			cl = content[i]
		}
		if pad := contentWidth - lipgloss.Width(cl); pad > 0 {
			cl += strings.Repeat(" ", pad)
		}
		if i < len(scrollbar) {
			cl += scrollbar[i]
		}
		rows[i] = cl
	}
	return strings.Join(rows, "\n")
}

// AtBottom reports whether the newest line is visible.
func (t Transcript) AtBottom() bool {
	return t.viewport.AtBottom()
}

// ContentWidth returns the width available for text.
func (t Transcript) ContentWidth() int {
	return max(t.width-1, 0)
}

// SetAutoScroll enables or disables auto-scroll. Enabling it jumps to the
// bottom.
func (t *Transcript) SetAutoScroll(enabled bool) {
	t.autoScroll = enabled
	if enabled {
		t.viewport.GotoBottom()
	}
}

// AutoScroll returns whether auto-scroll is on.
func (t Transcript) AutoScroll() bool {
	return t.autoScroll
}
