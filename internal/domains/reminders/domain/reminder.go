package domain

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CareType enumerates the kinds of care obligations a reminder can represent.
type CareType string

const (
	CareVaccine    CareType = "vaccine"
	CareGrooming   CareType = "grooming"
	CareMedication CareType = "medication"
	CareCheckup    CareType = "checkup"
)

// Valid reports whether the care type belongs to the closed enumeration.
func (t CareType) Valid() bool {
	switch t {
	case CareVaccine, CareGrooming, CareMedication, CareCheckup:
		return true
	default:
		return false
	}
}

// Interval is the recurrence cadence of a recurring reminder.
type Interval string

const (
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// Valid reports whether the interval is a known cadence.
func (i Interval) Valid() bool {
	switch i {
	case IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	default:
		return false
	}
}

// Reminder is a scheduled pet-care obligation owned by a single adopter.
type Reminder struct {
	ID                string
	UserID            string
	PetID             string
	Type              CareType
	Title             string
	Description       string
	DueDate           time.Time
	Completed         bool
	Recurring         bool
	RecurringInterval Interval
}

// NewReminder validates the required fields and builds a pending reminder.
func NewReminder(id, userID, petID string, careType CareType, title, dueDate string) (*Reminder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	r := &Reminder{ID: id, UserID: userID}
	if err := r.AssignPet(petID); err != nil {
		return nil, err
	}
	if err := r.Retitle(title); err != nil {
		return nil, err
	}
	if err := r.Reschedule(dueDate); err != nil {
		return nil, err
	}
	if err := r.ChangeType(careType); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseDueDate accepts only the exact YYYY-MM-DD form of a real calendar date.
func ParseDueDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, ErrEmptyDueDate
	}
	if !dueDatePattern.MatchString(value) {
		return time.Time{}, ErrMalformedDueDate
	}
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ErrMalformedDueDate
	}
	return parsed, nil
}

// AssignPet points the reminder at another pet.
func (r *Reminder) AssignPet(petID string) error {
	if strings.TrimSpace(petID) == "" {
		return ErrEmptyPetID
	}
	r.PetID = petID
	return nil
}

// Retitle replaces the human label.
func (r *Reminder) Retitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	r.Title = title
	return nil
}

// Describe sets the optional free-text description.
func (r *Reminder) Describe(description string) {
	r.Description = description
}

// Reschedule moves the due date. The value must be a YYYY-MM-DD calendar date.
func (r *Reminder) Reschedule(dueDate string) error {
	parsed, err := ParseDueDate(dueDate)
	if err != nil {
		return err
	}
	r.DueDate = parsed
	return nil
}

// ChangeType switches the kind of care.
func (r *Reminder) ChangeType(careType CareType) error {
	if !careType.Valid() {
		return ErrInvalidType
	}
	r.Type = careType
	return nil
}

// SetRecurrence configures recurrence. Non-recurring reminders never keep an interval.
func (r *Reminder) SetRecurrence(recurring bool, interval Interval) error {
	if !recurring {
		r.Recurring = false
		r.RecurringInterval = ""
		return nil
	}
	if interval == "" {
		return ErrMissingInterval
	}
	if !interval.Valid() {
		return ErrInvalidInterval
	}
	r.Recurring = true
	r.RecurringInterval = interval
	return nil
}

// MarkCompleted sets the completion flag and reports whether it went from pending to completed.
func (r *Reminder) MarkCompleted(completed bool) bool {
	transitioned := completed && !r.Completed
	r.Completed = completed
	return transitioned
}

// DueDateString renders the due date in its wire form.
func (r *Reminder) DueDateString() string {
	return r.DueDate.Format(DateLayout)
}

// Status derives the lifecycle label relative to now.
func (r *Reminder) Status(now time.Time) Status {
	return DeriveStatus(r, now)
}

// Validate checks every invariant on an already-built reminder, e.g. one decoded from storage.
func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(r.PetID) == "" {
		return ErrEmptyPetID
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.DueDate.IsZero() {
		return ErrEmptyDueDate
	}
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if r.Recurring {
		if r.RecurringInterval == "" {
			return ErrMissingInterval
		}
		if !r.RecurringInterval.Valid() {
			return ErrInvalidInterval
		}
	}
	return nil
}

// Clone returns an independent copy.
func (r *Reminder) Clone() *Reminder {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
