package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Canonical layouts for persisted and typed date-times.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"

	displayDateLayout     = "Jan 2 2006"
	displayDateTimeLayout = "Jan 2 2006 15:04"
)

// InvalidScheduleError reports a date or date-time that could not be used to
// build a task's schedule.
type InvalidScheduleError struct {
	Input string
	Err   error
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid date/time %q: %v", e.Input, e.Err)
}

func (e *InvalidScheduleError) Unwrap() error {
	return e.Err
}

var errBadLayout = errors.New("expected yyyy-mm-dd or yyyy-mm-dd hh:mm")

// Moment is a point in time that may or may not carry a clock part.
type Moment struct {
	t        time.Time
	hasClock bool
}

// ParseMoment parses s using DateLayout or DateTimeLayout.
func ParseMoment(s string) (Moment, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Moment{t: t}, nil
	}
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return Moment{t: t, hasClock: true}, nil
	}
	return Moment{}, &InvalidScheduleError{Input: s, Err: errBadLayout}
}

// Time returns the underlying time. Date-only moments are at midnight UTC.
func (m Moment) Time() time.Time {
	return m.t
}

// HasClock reports whether the moment was given with a time of day.
func (m Moment) HasClock() bool {
	return m.hasClock
}

// Date returns the calendar date of the moment.
func (m Moment) Date() Date {
	return DateOf(m.t)
}

// Before reports whether m is strictly earlier than o. When either moment is
// date-only, only the calendar dates are compared.
func (m Moment) Before(o Moment) bool {
	if !m.hasClock || !o.hasClock {
		return m.Date().Compare(o.Date()) < 0
	}
	return m.t.Before(o.t)
}

// String returns the canonical layout the moment was parsed from.
func (m Moment) String() string {
	if m.hasClock {
		return m.t.Format(DateTimeLayout)
	}
	return m.t.Format(DateLayout)
}

// Display returns the human-readable form used in task descriptions.
func (m Moment) Display() string {
	if m.hasClock {
		return m.t.Format(displayDateTimeLayout)
	}
	return m.t.Format(displayDateLayout)
}

// Date is a calendar date without time zone or clock.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a yyyy-mm-dd date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &InvalidScheduleError{Input: s, Err: errors.New("expected yyyy-mm-dd")}
	}
	return DateOf(t), nil
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.time().Format(DateLayout)
}

// Display returns the date as shown to users, e.g. "Dec 1 2024".
func (d Date) Display() string {
	return d.time().Format(displayDateLayout)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
