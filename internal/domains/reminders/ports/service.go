package ports

import (
	"context"
	"time"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
)

// CreateReminderInput carries the create form fields.
type CreateReminderInput struct {
	UserID            string
	PetID             string
	Type              string
	Title             string
	Description       string
	DueDate           string
	Recurring         bool
	RecurringInterval string
}

// ReminderPatch lists the fields to overwrite; nil pointers are left untouched.
// Completion goes through Complete so that recurrence is honoured.
//
// RecurringInterval must be empty unless the patched reminder is recurring; recurring=false on its
// own clears the stored interval.
type ReminderPatch struct {
	PetID             *string
	Type              *string
	Title             *string
	Description       *string
	DueDate           *string
	Recurring         *bool
	RecurringInterval *string
}

// CompletionResult is the outcome of the completion step.
type CompletionResult struct {
	Reminder *domain.Reminder
	// Transitioned is true only when the reminder moved from pending to completed.
	Transitioned bool
	// Next holds the projected follow-up, when one was created or already existed.
	Next *domain.Reminder
}

// Summary counts a user's reminders per derived status.
type Summary struct {
	UserID string
	AsOf   time.Time
	Total  int
	Counts map[domain.Status]int
}

// Service exposes reminder use cases to adapters (inbound/driving port).
type Service interface {
	ListReminders(ctx context.Context, userID string) ([]*domain.Reminder, error)
	ListRemindersByFilter(ctx context.Context, userID string, filter domain.Filter) ([]*domain.Reminder, error)
	GetReminder(ctx context.Context, id string) (*domain.Reminder, error)
	Summarize(ctx context.Context, userID string) (*Summary, error)
	ListAdoptedPets(ctx context.Context, userID string) ([]domain.AdoptedPet, error)
	AddReminder(ctx context.Context, input CreateReminderInput) (*domain.Reminder, error)
	UpdateReminder(ctx context.Context, id string, patch ReminderPatch) (*domain.Reminder, error)
	DeleteReminder(ctx context.Context, id string) (bool, error)
	Complete(ctx context.Context, id string, completed bool) (*CompletionResult, error)
	ProjectNext(ctx context.Context, id string) (*domain.Reminder, error)
	GetReminderStatus(reminder *domain.Reminder) domain.Status
}
