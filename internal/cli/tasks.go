package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pablasso/rex/internal/command"
	"github.com/spf13/cobra"
)

var (
	byFlag   string
	fromFlag string
	toFlag   string
)

var todoCmd = &cobra.Command{
	Use:   "todo <description>",
	Short: "Add a task without a date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, command.Command{Name: command.Todo, Description: joinArgs(args)})
	},
}

var deadlineCmd = &cobra.Command{
	Use:   "deadline <description> --by <yyyy-mm-dd[ hh:mm]>",
	Short: "Add a task that is due by a date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, command.Command{Name: command.Deadline, Description: joinArgs(args), By: byFlag})
	},
}

var eventCmd = &cobra.Command{
	Use:   "event <description> --from <yyyy-mm-dd[ hh:mm]> --to <yyyy-mm-dd[ hh:mm]>",
	Short: "Add a task that spans a period",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, command.Command{Name: command.Event, Description: joinArgs(args), From: fromFlag, To: toFlag})
	},
}

var markCmd = &cobra.Command{
	Use:   "mark <number>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexed(command.Mark),
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <number>",
	Short: "Mark a task as not done",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexed(command.Unmark),
}

var deleteCmd = &cobra.Command{
	Use:     "delete <number>",
	Aliases: []string{"rm"},
	Short:   "Remove a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runIndexed(command.Delete),
}

func init() {
	deadlineCmd.Flags().StringVar(&byFlag, "by", "", "Due date, as yyyy-mm-dd or yyyy-mm-dd hh:mm")
	deadlineCmd.MarkFlagRequired("by")

	eventCmd.Flags().StringVar(&fromFlag, "from", "", "Start, as yyyy-mm-dd or yyyy-mm-dd hh:mm")
	eventCmd.Flags().StringVar(&toFlag, "to", "", "End, as yyyy-mm-dd or yyyy-mm-dd hh:mm")
	eventCmd.MarkFlagRequired("from")
	eventCmd.MarkFlagRequired("to")
}

// runIndexed returns a RunE for commands that take a 1-based task number.
func runIndexed(name command.Name) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return &command.UsageError{Command: name, Problem: fmt.Sprintf("%q is not a task number", args[0])}
		}
		return execute(cmd, command.Command{Name: name, Index: index})
	}
}

// execute opens the task file, runs c against it and prints the reply. The
// handler validates c before anything is saved.
func execute(cmd *cobra.Command, c command.Command) error {
	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := a.handler.Execute(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
