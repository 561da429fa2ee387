// Package tasklist manages the ordered collection of tasks a user works with.
package tasklist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pablasso/rex/internal/task"
)

// IndexOutOfRangeError reports a 1-based index outside [1, Size].
type IndexOutOfRangeError struct {
	Index int
	Size  int
}

func (e *IndexOutOfRangeError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("task %d does not exist: the list is empty", e.Index)
	}
	return fmt.Sprintf("task %d does not exist: choose a number between 1 and %d", e.Index, e.Size)
}

// Match is a task found by keyword together with its 1-based position.
type Match struct {
	Index int
	Task  task.Task
}

// List is an ordered task collection addressed by 1-based index. It owns the
// counter of tasks constructed through its Factory.
type List struct {
	tasks   []task.Task
	counter *task.Counter
	factory *task.Factory
}

// New returns an empty list with its own counter.
func New() *List {
	c := &task.Counter{}
	return &List{
		counter: c,
		factory: task.NewFactory(c),
	}
}

// Factory returns the factory whose constructions are counted by this list.
func (l *List) Factory() *task.Factory {
	return l.factory
}

// Counter returns the number of tasks constructed through the list's factory
// minus the number of those tasks that have been removed.
func (l *List) Counter() int {
	return l.counter.Value()
}

// Size returns the number of tasks currently held.
func (l *List) Size() int {
	return len(l.tasks)
}

// Tasks returns a copy of the held tasks in order.
func (l *List) Tasks() []task.Task {
	out := make([]task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends t and returns its 1-based position.
func (l *List) Add(t task.Task) int {
	l.tasks = append(l.tasks, t)
	return len(l.tasks)
}

// Get returns the task at the 1-based index.
func (l *List) Get(index int) (task.Task, error) {
	if err := l.check(index); err != nil {
		return nil, err
	}
	return l.tasks[index-1], nil
}

// MarkDone marks the task at the 1-based index as done and returns it.
func (l *List) MarkDone(index int) (task.Task, error) {
	t, err := l.Get(index)
	if err != nil {
		return nil, err
	}
	t.MarkDone()
	return t, nil
}

// UnmarkDone marks the task at the 1-based index as not done and returns it.
func (l *List) UnmarkDone(index int) (task.Task, error) {
	t, err := l.Get(index)
	if err != nil {
		return nil, err
	}
	t.UnmarkDone()
	return t, nil
}

// Remove deletes the task at the 1-based index, shifting later tasks down by
// one, and returns it. The counter that counted the task's construction is
// decremented once; a task built elsewhere decrements its own factory's
// counter, never this list's. An invalid index leaves the list untouched.
func (l *List) Remove(index int) (task.Task, error) {
	if err := l.check(index); err != nil {
		return nil, err
	}
	removed := l.tasks[index-1]
	l.tasks = slices.Delete(l.tasks, index-1, index)
	task.Release(removed)
	return removed, nil
}

// FindByKeyword returns the tasks whose description contains keyword,
// case-sensitively, in list order.
func (l *List) FindByKeyword(keyword string) []Match {
	matches := []Match{}
	for i, t := range l.tasks {
		if strings.Contains(t.Description(), keyword) {
			matches = append(matches, Match{Index: i + 1, Task: t})
		}
	}
	return matches
}

// TasksOnDate returns the tasks scheduled on d in list order.
func (l *List) TasksOnDate(d task.Date) []task.Task {
	return ScheduledOn(l.tasks, d)
}

func (l *List) check(index int) error {
	if index < 1 || index > len(l.tasks) {
		return &IndexOutOfRangeError{Index: index, Size: len(l.tasks)}
	}
	return nil
}
