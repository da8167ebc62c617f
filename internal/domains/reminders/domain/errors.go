package domain

import "fmt"

// ValidationError names the input field that violated an invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

var (
	ErrEmptyID          = &ValidationError{Field: "id", Reason: "is required"}
	ErrEmptyUserID      = &ValidationError{Field: "userId", Reason: "is required"}
	ErrEmptyPetID       = &ValidationError{Field: "petId", Reason: "is required"}
	ErrPetNotAdopted    = &ValidationError{Field: "petId", Reason: "is not adopted by the user"}
	ErrEmptyTitle       = &ValidationError{Field: "title", Reason: "is required"}
	ErrEmptyDueDate     = &ValidationError{Field: "dueDate", Reason: "is required"}
	ErrMalformedDueDate = &ValidationError{Field: "dueDate", Reason: "must match YYYY-MM-DD"}
	ErrInvalidType      = &ValidationError{Field: "type", Reason: "must be one of vaccine, grooming, medication, checkup"}
	ErrMissingInterval  = &ValidationError{Field: "recurringInterval", Reason: "is required for recurring reminders"}
	ErrInvalidInterval  = &ValidationError{Field: "recurringInterval", Reason: "must be one of weekly, monthly, yearly"}
	ErrNotRecurring     = &ValidationError{Field: "recurring", Reason: "reminder is not recurring"}
	ErrUnusedInterval   = &ValidationError{Field: "recurringInterval", Reason: "requires recurring to be true"}
)
