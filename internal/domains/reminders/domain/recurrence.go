package domain

import "time"

// NextDueDate adds one interval to the due date. Monthly and yearly steps clamp to the
// last day of the target month, so Jan 31 becomes Feb 28/29 and Feb 29 becomes Feb 28.
func NextDueDate(dueDate time.Time, interval Interval) (time.Time, error) {
	switch interval {
	case IntervalWeekly:
		return dueDate.AddDate(0, 0, 7), nil
	case IntervalMonthly:
		return addMonthsClamped(dueDate, 1), nil
	case IntervalYearly:
		return addMonthsClamped(dueDate, 12), nil
	case "":
		return time.Time{}, ErrMissingInterval
	default:
		return time.Time{}, ErrInvalidInterval
	}
}

// ProjectNext builds the follow-up occurrence of a recurring reminder. The source is not modified.
func ProjectNext(r *Reminder, newID string) (*Reminder, error) {
	if !r.Recurring {
		return nil, ErrNotRecurring
	}
	next, err := NextDueDate(r.DueDate, r.RecurringInterval)
	if err != nil {
		return nil, err
	}
	projected := r.Clone()
	projected.ID = newID
	projected.DueDate = next
	projected.Completed = false
	return projected, nil
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(firstOfTarget); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
