package tasklist

import "github.com/pablasso/rex/internal/task"

// ScheduledOn returns the tasks in ts that are scheduled on d, preserving
// order. It never modifies ts.
func ScheduledOn(ts []task.Task, d task.Date) []task.Task {
	out := []task.Task{}
	for _, t := range ts {
		if t.IsScheduledOn(d) {
			out = append(out, t)
		}
	}
	return out
}
