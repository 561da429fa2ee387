package cli

import (
	"github.com/pablasso/rex/internal/command"
	"github.com/pablasso/rex/internal/export"
	"github.com/spf13/cobra"
)

var exportFormat string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every task",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, command.Command{Name: command.List})
	},
}

var findCmd = &cobra.Command{
	Use:   "find <keyword>",
	Short: "Show tasks whose description contains a keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, command.Command{Name: command.Find, Keyword: joinArgs(args)})
	},
}

var onCmd = &cobra.Command{
	Use:   "on <yyyy-mm-dd>",
	Short: "Show deadlines and events scheduled on a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, command.Command{Name: command.On, Date: args[0]})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, command.Command{Name: command.Stats})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the task list as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatYAML), "Output format: yaml or json")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return export.Write(cmd.OutOrStdout(), format, a.list.Tasks())
}
