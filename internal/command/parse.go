// Package command turns user input into task list operations and renders the
// replies shown to the user.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Name identifies a command.
type Name string

const (
	List     Name = "list"
	Todo     Name = "todo"
	Deadline Name = "deadline"
	Event    Name = "event"
	Mark     Name = "mark"
	Unmark   Name = "unmark"
	Delete   Name = "delete"
	Find     Name = "find"
	On       Name = "on"
	Stats    Name = "stats"
	Help     Name = "help"
	Bye      Name = "bye"
)

// Command is a parsed request. Only the fields relevant to Name are set.
type Command struct {
	Name        Name
	Description string
	By          string
	From        string
	To          string
	Index       int
	Keyword     string
	Date        string
}

// ErrUnknownCommand is returned for input whose first word is not a command.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports a known command given the wrong arguments.
type UsageError struct {
	Command Name
	Problem string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s (usage: %s)", e.Command, e.Problem, usages[e.Command])
}

var usages = map[Name]string{
	List:     "list",
	Todo:     "todo <description>",
	Deadline: "deadline <description> /by <yyyy-mm-dd[ hh:mm]>",
	Event:    "event <description> /from <yyyy-mm-dd[ hh:mm]> /to <yyyy-mm-dd[ hh:mm]>",
	Mark:     "mark <number>",
	Unmark:   "unmark <number>",
	Delete:   "delete <number>",
	Find:     "find <keyword>",
	On:       "on <yyyy-mm-dd>",
	Stats:    "stats",
	Help:     "help",
	Bye:      "bye",
}

// order is the order commands are listed in help output.
var order = []Name{Todo, Deadline, Event, List, Mark, Unmark, Delete, Find, On, Stats, Help, Bye}

// Parse reads one line of user input.
func Parse(input string) (Command, error) {
	input = strings.TrimSpace(input)
	word, rest, _ := strings.Cut(input, " ")
	name := Name(strings.ToLower(word))
	rest = strings.TrimSpace(rest)

	switch name {
	case List, Stats, Help, Bye:
		return Command{Name: name}, nil

	case Todo:
		if rest == "" {
			return Command{}, &UsageError{Command: name, Problem: "the description cannot be empty"}
		}
		return Command{Name: name, Description: rest}, nil

	case Deadline:
		desc, by, ok := cutFlag(rest, "/by")
		if !ok || by == "" {
			return Command{}, &UsageError{Command: name, Problem: "a deadline needs /by"}
		}
		if desc == "" {
			return Command{}, &UsageError{Command: name, Problem: "the description cannot be empty"}
		}
		return Command{Name: name, Description: desc, By: by}, nil

	case Event:
		desc, span, ok := cutFlag(rest, "/from")
		if !ok {
			return Command{}, &UsageError{Command: name, Problem: "an event needs /from"}
		}
		from, to, ok := cutFlag(span, "/to")
		if !ok || from == "" || to == "" {
			return Command{}, &UsageError{Command: name, Problem: "an event needs /from and /to"}
		}
		if desc == "" {
			return Command{}, &UsageError{Command: name, Problem: "the description cannot be empty"}
		}
		return Command{Name: name, Description: desc, From: from, To: to}, nil

	case Mark, Unmark, Delete:
		index, err := strconv.Atoi(rest)
		if err != nil {
			return Command{}, &UsageError{Command: name, Problem: fmt.Sprintf("%q is not a task number", rest)}
		}
		return Command{Name: name, Index: index}, nil

	case Find:
		if rest == "" {
			return Command{}, &UsageError{Command: name, Problem: "the keyword cannot be empty"}
		}
		return Command{Name: name, Keyword: rest}, nil

	case On:
		if rest == "" {
			return Command{}, &UsageError{Command: name, Problem: "a date is required"}
		}
		return Command{Name: name, Date: rest}, nil
	}

	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
}

// cutFlag splits s around the first occurrence of flag that stands as a word
// of its own, trimming both halves.
func cutFlag(s, flag string) (before, after string, found bool) {
	for i := 0; ; {
		j := strings.Index(s[i:], flag)
		if j < 0 {
			return strings.TrimSpace(s), "", false
		}
		j += i
		end := j + len(flag)
		if (j == 0 || s[j-1] == ' ') && (end == len(s) || s[end] == ' ') {
			return strings.TrimSpace(s[:j]), strings.TrimSpace(s[end:]), true
		}
		i = end
	}
}
