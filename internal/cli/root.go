package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pablasso/rex/internal/command"
	"github.com/pablasso/rex/internal/config"
	"github.com/pablasso/rex/internal/logging"
	"github.com/pablasso/rex/internal/version"
	"github.com/spf13/cobra"
)

var (
	dataFlag     string
	logLevelFlag string
	strictFlag   bool

	// Set by the root PersistentPreRunE before any subcommand runs.
	cfg    *config.Config
	logger *log.Logger

	// configOptions is replaced in tests to keep the user's files out.
	configOptions = config.Options{}
)

var rootCmd = &cobra.Command{
	Use:   "rex",
	Short: "Personal task tracker",
	Long: `Rex keeps a list of todos, deadlines and events in a plain text file.
Run it without a command to chat with it, or use the commands below directly.`,
	Version:           version.String(),
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runChat,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataFlag, "data", "", "Task file to use (default .rex/tasks.txt)")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&strictFlag, "strict", false, "Refuse to start when the task file has unreadable lines")

	rootCmd.AddCommand(todoCmd, deadlineCmd, eventCmd)
	rootCmd.AddCommand(markCmd, unmarkCmd, deleteCmd)
	rootCmd.AddCommand(listCmd, findCmd, onCmd, statsCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig resolves the configuration and builds the stderr logger.
// Flags only override the files and environment when given explicitly.
func loadConfig(cmd *cobra.Command, args []string) error {
	var overrides config.Overrides
	flags := cmd.Flags()
	if flags.Changed("data") {
		overrides.DataFile = &dataFlag
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = &logLevelFlag
	}
	if flags.Changed("strict") {
		overrides.StrictLoad = &strictFlag
	}

	c, err := config.Load(configOptions, overrides)
	if err != nil {
		return err
	}

	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	l, err := logging.New(cmd.ErrOrStderr(), opts)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	logger.Debug("config loaded", "data", cfg.DataFile, "strict", cfg.StrictLoad)
	return nil
}

// Execute runs the root command, printing failures the way the chat does.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, command.Message(err))
	}
	return err
}
