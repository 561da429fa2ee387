package cli

import (
	"github.com/pablasso/rex/internal/logging"
	"github.com/pablasso/rex/internal/tui"
	"github.com/spf13/cobra"
)

// runChat starts the chat front end. Logs go to the configured log file, or
// nowhere, since the terminal belongs to the TUI.
func runChat(cmd *cobra.Command, args []string) error {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	chatLogger, closer, err := logging.OpenFile(cfg.LogFile, opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := openApp(cfg, chatLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	chatLogger.Info("chat started", "data", cfg.DataFile, "tasks", a.list.Size())
	return tui.Run(tui.Options{
		Handler: a.handler,
		Notice:  a.notice(),
	})
}
