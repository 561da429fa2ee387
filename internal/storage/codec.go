// Package storage persists task lists as pipe-delimited lines of text.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pablasso/rex/internal/task"
)

const separator = " | "

// CorruptLineError reports a persisted line that could not be decoded.
type CorruptLineError struct {
	Line    int
	Content string
	Err     error
}

func (e *CorruptLineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Content)
}

func (e *CorruptLineError) Unwrap() error {
	return e.Err
}

// CorruptFileError collects the unreadable lines of a task file.
type CorruptFileError struct {
	Path  string
	Lines []*CorruptLineError
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("task file %s has %d unreadable line(s)", e.Path, len(e.Lines))
}

func (e *CorruptFileError) Unwrap() error {
	errs := make([]error, len(e.Lines))
	for i, l := range e.Lines {
		errs[i] = l
	}
	return errors.Join(errs...)
}

var (
	errUnknownKind = errors.New("unknown task type")
	errFieldCount  = errors.New("wrong number of fields")
	errDoneFlag    = errors.New("done flag must be 0 or 1")
)

// Encode renders t as a single line without a trailing newline.
func Encode(t task.Task) string {
	fields := []string{string(t.Kind()), doneFlag(t.IsDone()), t.Description()}
	switch v := t.(type) {
	case *task.Todo:
	case *task.Deadline:
		fields = append(fields, v.By().String())
	case *task.Event:
		fields = append(fields, v.From().String(), v.To().String())
	default:
		panic(fmt.Sprintf("storage: unknown task variant %T", t))
	}
	return strings.Join(fields, separator)
}

// Decode parses one line into a task built through f, so the construction is
// counted exactly once. lineNo is only used for error reporting.
//
// The type tag and done flag are cut from the left and the schedule fields
// from the right; whatever remains is the description, so separators inside
// a description survive.
func Decode(f *task.Factory, lineNo int, line string) (task.Task, error) {
	line = strings.TrimSuffix(line, "\r")
	corrupt := func(err error) error {
		return &CorruptLineError{Line: lineNo, Content: line, Err: err}
	}

	kind, rest, ok := strings.Cut(line, separator)
	if !ok {
		return nil, corrupt(errFieldCount)
	}
	flag, rest, ok := strings.Cut(rest, separator)
	if !ok {
		return nil, corrupt(errFieldCount)
	}

	var done bool
	switch flag {
	case "0":
	case "1":
		done = true
	default:
		return nil, corrupt(errDoneFlag)
	}

	var (
		t   task.Task
		err error
	)
	switch task.Kind(kind) {
	case task.KindTodo:
		t = f.NewTodo(rest)
	case task.KindDeadline:
		desc, by, ok := cutLast(rest)
		if !ok {
			return nil, corrupt(errFieldCount)
		}
		t, err = newDeadline(f, desc, by)
	case task.KindEvent:
		rest, to, ok := cutLast(rest)
		if !ok {
			return nil, corrupt(errFieldCount)
		}
		desc, from, ok := cutLast(rest)
		if !ok {
			return nil, corrupt(errFieldCount)
		}
		t, err = newEvent(f, desc, from, to)
	default:
		return nil, corrupt(errUnknownKind)
	}
	if err != nil {
		return nil, corrupt(err)
	}

	if done {
		t.MarkDone()
	}
	return t, nil
}

// newDeadline and newEvent avoid returning a typed nil pointer inside the
// task.Task interface when construction fails.
func newDeadline(f *task.Factory, desc, by string) (task.Task, error) {
	d, err := f.NewDeadline(desc, by)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func newEvent(f *task.Factory, desc, from, to string) (task.Task, error) {
	e, err := f.NewEvent(desc, from, to)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// cutLast splits s around its last separator. Schedule fields never contain
// the separator, so the right-hand side is always a whole field.
func cutLast(s string) (before, after string, found bool) {
	i := strings.LastIndex(s, separator)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(separator):], true
}

func doneFlag(done bool) string {
	if done {
		return "1"
	}
	return "0"
}
