package task

import (
	"errors"
	"fmt"
)

// Counter tracks how many tasks have been constructed through a Factory and
// not yet removed from their list. It is informational: tasks that are built
// and then dropped without removal stay counted.
type Counter struct {
	n int
}

// Value returns the current count.
func (c *Counter) Value() int {
	return c.n
}

func (c *Counter) increment() {
	c.n++
}

// decrement records the removal of one task. It panics if the count would go
// below zero, which can only happen through a bookkeeping bug.
func (c *Counter) decrement() {
	if c.n <= 0 {
		panic("task: counter decremented below zero")
	}
	c.n--
}

// Release records that t has left its list by decrementing the counter that
// counted its construction. A task is released at most once; releasing it
// again, or releasing a task that no Factory built, does nothing.
func Release(t Task) {
	b := t.base()
	if b.counter == nil {
		return
	}
	b.counter.decrement()
	b.counter = nil
}

// Factory constructs tasks and records each successful construction on its
// Counter.
type Factory struct {
	counter *Counter
}

// NewFactory returns a Factory that counts constructions on c.
func NewFactory(c *Counter) *Factory {
	return &Factory{counter: c}
}

// NewTodo creates a pending plain task.
func (f *Factory) NewTodo(description string) *Todo {
	t := &Todo{item: f.newItem(description)}
	return t
}

// NewDeadline creates a pending task due at by.
func (f *Factory) NewDeadline(description, by string) (*Deadline, error) {
	due, err := ParseMoment(by)
	if err != nil {
		return nil, err
	}
	t := &Deadline{item: f.newItem(description), by: due}
	return t, nil
}

// NewEvent creates a pending task spanning from to to. The end may not be
// earlier than the start.
func (f *Factory) NewEvent(description, from, to string) (*Event, error) {
	start, err := ParseMoment(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseMoment(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, &InvalidScheduleError{
			Input: fmt.Sprintf("%s to %s", start, end),
			Err:   errors.New("event ends before it starts"),
		}
	}
	t := &Event{item: f.newItem(description), from: start, to: end}
	return t, nil
}

// newItem counts one construction. Callers invoke it only once every input
// has been validated.
func (f *Factory) newItem(description string) item {
	f.counter.increment()
	return item{description: description, counter: f.counter}
}
