// Package task defines the task variants tracked by rex and the scheduling
// values they carry.
package task

import "fmt"

// Kind identifies a task variant.
type Kind string

// Task kinds. The values double as the type tag in both the display and the
// persisted line format.
const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// Task is the capability set shared by every variant. The interface is sealed:
// only Todo, Deadline and Event implement it.
type Task interface {
	Kind() Kind
	Description() string
	IsDone() bool
	MarkDone()
	UnmarkDone()
	IsScheduledOn(d Date) bool
	String() string

	base() *item
}

// item holds the state common to all variants.
type item struct {
	description string
	done        bool

	// counter counted this task's construction. It is nil for tasks not
	// built by a Factory and once the task has been released.
	counter *Counter
}

func (i *item) Description() string { return i.description }

func (i *item) IsDone() bool { return i.done }

// MarkDone marks the task as done. Marking a done task again has no effect.
func (i *item) MarkDone() { i.done = true }

// UnmarkDone marks the task as not done. Unmarking a pending task again has no
// effect.
func (i *item) UnmarkDone() { i.done = false }

func (i *item) base() *item { return i }

func (i *item) statusIcon() string {
	if i.done {
		return "X"
	}
	return " "
}

func (i *item) describe(kind Kind) string {
	return fmt.Sprintf("[%s][%s] %s", kind, i.statusIcon(), i.description)
}

// Todo is a plain task without scheduling data.
type Todo struct {
	item
}

func (t *Todo) Kind() Kind { return KindTodo }

// IsScheduledOn always reports false: a to-do has no date.
func (t *Todo) IsScheduledOn(Date) bool { return false }

func (t *Todo) String() string {
	return t.describe(KindTodo)
}

// Deadline is a task due at a single moment.
type Deadline struct {
	item
	by Moment
}

func (t *Deadline) Kind() Kind { return KindDeadline }

// By returns the due moment.
func (t *Deadline) By() Moment { return t.by }

// IsScheduledOn reports whether the task is due on d.
func (t *Deadline) IsScheduledOn(d Date) bool {
	return t.by.Date().Compare(d) == 0
}

func (t *Deadline) String() string {
	return fmt.Sprintf("%s (by: %s)", t.describe(KindDeadline), t.by.Display())
}

// Event is a task spanning a start and an end moment.
type Event struct {
	item
	from Moment
	to   Moment
}

func (t *Event) Kind() Kind { return KindEvent }

// From returns the start of the event.
func (t *Event) From() Moment { return t.from }

// To returns the end of the event.
func (t *Event) To() Moment { return t.to }

// IsScheduledOn reports whether d falls within the event, both ends inclusive
// by calendar date.
func (t *Event) IsScheduledOn(d Date) bool {
	return t.from.Date().Compare(d) <= 0 && t.to.Date().Compare(d) >= 0
}

func (t *Event) String() string {
	return fmt.Sprintf("%s (from: %s to: %s)", t.describe(KindEvent), t.from.Display(), t.to.Display())
}
