package command

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/pablasso/rex/internal/storage"
	"github.com/pablasso/rex/internal/task"
	"github.com/pablasso/rex/internal/tasklist"
)

// Saver persists the full task list after a change.
type Saver interface {
	Save(tasks []task.Task) error
}

// Reply is what the user sees after a command.
type Reply struct {
	Text  string
	Error bool
	Quit  bool
}

// Handler executes commands against a task list and saves it after every
// change.
type Handler struct {
	list   *tasklist.List
	saver  Saver
	logger *log.Logger
}

// NewHandler returns a handler for list. saver may be nil for an unsaved
// session; logger may be nil to disable logging.
func NewHandler(list *tasklist.List, saver Saver, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{list: list, saver: saver, logger: logger}
}

// List returns the list the handler operates on.
func (h *Handler) List() *tasklist.List {
	return h.list
}

// Respond parses and executes one line of input. Failures are rendered into
// the reply rather than returned.
func (h *Handler) Respond(input string) Reply {
	if strings.TrimSpace(input) == "" {
		return Reply{Text: "Type a command, or \"help\" to see what I understand."}
	}

	cmd, err := Parse(input)
	if err != nil {
		return errorReply(err)
	}

	text, err := h.Execute(cmd)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: text, Quit: cmd.Name == Bye}
}

// Execute runs cmd and returns the confirmation text.
func (h *Handler) Execute(cmd Command) (string, error) {
	switch cmd.Name {
	case List:
		return h.listAll(), nil
	case Todo:
		if err := checkDescription(cmd); err != nil {
			return "", err
		}
		return h.add(h.list.Factory().NewTodo(cmd.Description))
	case Deadline:
		if err := checkDescription(cmd); err != nil {
			return "", err
		}
		t, err := h.list.Factory().NewDeadline(cmd.Description, cmd.By)
		if err != nil {
			return "", err
		}
		return h.add(t)
	case Event:
		if err := checkDescription(cmd); err != nil {
			return "", err
		}
		t, err := h.list.Factory().NewEvent(cmd.Description, cmd.From, cmd.To)
		if err != nil {
			return "", err
		}
		return h.add(t)
	case Mark:
		t, err := h.list.MarkDone(cmd.Index)
		if err != nil {
			return "", err
		}
		if err := h.save(); err != nil {
			return "", err
		}
		return "Nice! I've marked this task as done:\n  " + t.String(), nil
	case Unmark:
		t, err := h.list.UnmarkDone(cmd.Index)
		if err != nil {
			return "", err
		}
		if err := h.save(); err != nil {
			return "", err
		}
		return "OK, I've marked this task as not done yet:\n  " + t.String(), nil
	case Delete:
		t, err := h.list.Remove(cmd.Index)
		if err != nil {
			return "", err
		}
		if err := h.save(); err != nil {
			return "", err
		}
		return fmt.Sprintf("Noted. I've removed this task:\n  %s\n%s", t, h.countLine()), nil
	case Find:
		return h.find(cmd.Keyword), nil
	case On:
		return h.on(cmd.Date)
	case Stats:
		return fmt.Sprintf("Tasks in list: %d\nTasks counted: %d", h.list.Size(), h.list.Counter()), nil
	case Help:
		return helpText(), nil
	case Bye:
		return "Bye. Hope to see you again soon!", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
}

func (h *Handler) add(t task.Task) (string, error) {
	index := h.list.Add(t)
	h.logger.Debug("task added", "index", index, "kind", t.Kind())
	if err := h.save(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Got it. I've added this task:\n  %s\n%s", t, h.countLine()), nil
}

func (h *Handler) save() error {
	if h.saver == nil {
		return nil
	}
	if err := h.saver.Save(h.list.Tasks()); err != nil {
		h.logger.Error("save failed", "err", err)
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	h.logger.Debug("tasks saved", "count", h.list.Size())
	return nil
}

func (h *Handler) countLine() string {
	n := h.list.Size()
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

func (h *Handler) listAll() string {
	tasks := h.list.Tasks()
	if len(tasks) == 0 {
		return "Your list is empty."
	}
	var b strings.Builder
	b.WriteString("Here are the tasks in your list:")
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d.%s", i+1, t)
	}
	return b.String()
}

func (h *Handler) find(keyword string) string {
	matches := h.list.FindByKeyword(keyword)
	if len(matches) == 0 {
		return fmt.Sprintf("No tasks match %q.", keyword)
	}
	var b strings.Builder
	b.WriteString("Here are the matching tasks in your list:")
	for _, m := range matches {
		fmt.Fprintf(&b, "\n%d.%s", m.Index, m.Task)
	}
	return b.String()
}

func (h *Handler) on(date string) (string, error) {
	d, err := task.ParseDate(date)
	if err != nil {
		return "", err
	}
	tasks := h.list.TasksOnDate(d)
	if len(tasks) == 0 {
		return fmt.Sprintf("Nothing is scheduled on %s.", d.Display()), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the tasks scheduled on %s:", d.Display())
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d.%s", i+1, t)
	}
	return b.String(), nil
}

// checkDescription rejects descriptions the task file cannot hold on a single
// line.
func checkDescription(cmd Command) error {
	if strings.TrimSpace(cmd.Description) == "" {
		return &UsageError{Command: cmd.Name, Problem: "the description cannot be empty"}
	}
	if strings.ContainsFunc(cmd.Description, unicode.IsControl) {
		return &UsageError{Command: cmd.Name, Problem: "the description cannot contain line breaks or control characters"}
	}
	return nil
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Here is what I understand:")
	for _, name := range order {
		fmt.Fprintf(&b, "\n  %s", usages[name])
	}
	return b.String()
}

// Message renders err the way it is shown to users.
func Message(err error) string {
	var (
		usageErr *UsageError
		schedErr *task.InvalidScheduleError
		rangeErr *tasklist.IndexOutOfRangeError
		lineErr  *storage.CorruptLineError
		fileErr  *storage.CorruptFileError
	)
	switch {
	case errors.As(err, &usageErr):
		return fmt.Sprintf("OOPS!!! %s\nUsage: %s", capitalize(usageErr.Problem), usages[usageErr.Command])
	case errors.Is(err, ErrUnknownCommand):
		return "OOPS!!! I'm sorry, but I don't know what that means. Type \"help\" to see what I understand."
	case errors.As(err, &schedErr):
		return "OOPS!!! " + capitalize(schedErr.Error()) + "."
	case errors.As(err, &rangeErr):
		return "OOPS!!! " + capitalize(rangeErr.Error()) + "."
	case errors.As(err, &fileErr):
		return fmt.Sprintf("OOPS!!! %s. Fix or remove them, or run without --strict to skip them.", capitalize(fileErr.Error()))
	case errors.As(err, &lineErr):
		return fmt.Sprintf("OOPS!!! Line %d of the task file is unreadable and was skipped.", lineErr.Line)
	}
	return "OOPS!!! " + capitalize(err.Error())
}

func errorReply(err error) Reply {
	return Reply{Text: Message(err), Error: true}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
