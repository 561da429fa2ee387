// Package styles defines shared lipgloss styles for the chat front end.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	replyColor     = lipgloss.Color("#D0D0D0")
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors

	// TitleStyle for the header line
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SubtleStyle for hints and the scrollbar track
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// PromptStyle for the input prompt and echoed user lines
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// ReplyStyle for rex's replies
	ReplyStyle = lipgloss.NewStyle().
			Foreground(replyColor).
			PaddingLeft(2)

	// ErrorStyle for OOPS replies and load warnings
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			PaddingLeft(2)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)
)
