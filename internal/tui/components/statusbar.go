package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/rex/internal/tui/styles"
)

// StatusBar renders the bottom line: key hints on the left and a short
// summary, such as the task count, on the right.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar for the given width. Items are joined with
// " • ". The summary is right-aligned when it fits and dropped otherwise.
func (s StatusBar) Render(width int, items []string, summary string) string {
	left := strings.Join(items, " • ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(summary)
	if summary == "" || gap < 1 {
		return styles.StatusBarStyle.Width(width).Render(left)
	}
	return styles.StatusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + summary)
}
