package domain

import (
	"errors"
	"time"
)

// Status is the derived lifecycle label of a reminder. It is never stored.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusUpcoming  Status = "upcoming"
	StatusFuture    Status = "future"
)

// UpcomingWindowDays is the inclusive horizon in which a pending reminder counts as upcoming.
const UpcomingWindowDays = 7

// DeriveStatus classifies a reminder against the calendar date of now.
func DeriveStatus(r *Reminder, now time.Time) Status {
	if r.Completed {
		return StatusCompleted
	}
	diff := DaysUntil(r.DueDate, now)
	switch {
	case diff < 0:
		return StatusOverdue
	case diff <= UpcomingWindowDays:
		return StatusUpcoming
	default:
		return StatusFuture
	}
}

// DaysUntil counts whole calendar days from now's date, in now's location, to the due date.
func DaysUntil(dueDate, now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := dueDate.Date()
	due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// Filter selects reminders for a list tab.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUpcoming  Filter = "upcoming"
	FilterOverdue   Filter = "overdue"
	FilterCompleted Filter = "completed"
	FilterFuture    Filter = "future"
)

var ErrInvalidFilter = errors.New("filter must be one of all, upcoming, overdue, completed, future")

// ParseFilter maps a tab name to a filter; the empty string means all.
func ParseFilter(value string) (Filter, error) {
	switch f := Filter(value); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUpcoming, FilterOverdue, FilterCompleted, FilterFuture:
		return f, nil
	default:
		return "", ErrInvalidFilter
	}
}

// Matches reports whether the reminder belongs to the filter's tab at now.
func (f Filter) Matches(r *Reminder, now time.Time) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterCompleted:
		return r.Completed
	default:
		return DeriveStatus(r, now) == Status(f)
	}
}
