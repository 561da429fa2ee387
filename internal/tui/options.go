package tui

import "github.com/pablasso/rex/internal/command"

// Options configures the chat at startup.
type Options struct {
	// Handler executes each submitted line against the open task list.
	Handler *command.Handler

	// Notice is shown under the greeting, e.g. lines skipped while loading.
	Notice string
}
