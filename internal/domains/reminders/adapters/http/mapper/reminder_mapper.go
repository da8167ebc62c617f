package mapper

import (
	"time"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

// Reminder is the HTTP representation of a reminder, carrying its derived status.
type Reminder struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	PetID             string `json:"petId"`
	Type              string `json:"type"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	DueDate           string `json:"dueDate"`
	Completed         bool   `json:"completed"`
	Recurring         bool   `json:"recurring"`
	RecurringInterval string `json:"recurringInterval,omitempty"`
	Status            string `json:"status"`
}

// CreateReminder is the inbound create payload. Required fields are enforced by the service so
// that failures name the offending field.
type CreateReminder struct {
	UserID            string `json:"userId"`
	PetID             string `json:"petId"`
	Type              string `json:"type"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	DueDate           string `json:"dueDate"`
	Recurring         bool   `json:"recurring"`
	RecurringInterval string `json:"recurringInterval"`
}

// PatchReminder captures inbound partial updates while preserving field presence.
type PatchReminder struct {
	PetID             *string `json:"petId,omitempty"`
	Type              *string `json:"type,omitempty"`
	Title             *string `json:"title,omitempty"`
	Description       *string `json:"description,omitempty"`
	DueDate           *string `json:"dueDate,omitempty"`
	Completed         *bool   `json:"completed,omitempty"`
	Recurring         *bool   `json:"recurring,omitempty"`
	RecurringInterval *string `json:"recurringInterval,omitempty"`
}

// Completion is the response of a completion toggle.
type Completion struct {
	Reminder     Reminder  `json:"reminder"`
	Transitioned bool      `json:"transitioned"`
	Next         *Reminder `json:"next,omitempty"`
}

// Summary carries the per-status dashboard counts.
type Summary struct {
	UserID string         `json:"userId"`
	AsOf   string         `json:"asOf"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// AdoptedPet is a pet the user may schedule reminders for.
type AdoptedPet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
}

// ToCreateInput maps the create payload into the service input.
func ToCreateInput(payload CreateReminder) ports.CreateReminderInput {
	return ports.CreateReminderInput{
		UserID:            payload.UserID,
		PetID:             payload.PetID,
		Type:              payload.Type,
		Title:             payload.Title,
		Description:       payload.Description,
		DueDate:           payload.DueDate,
		Recurring:         payload.Recurring,
		RecurringInterval: payload.RecurringInterval,
	}
}

// ToPatch splits the payload into a field patch and the optional completion flag, which is
// applied through the completion workflow.
func ToPatch(payload PatchReminder) (ports.ReminderPatch, *bool) {
	return ports.ReminderPatch{
		PetID:             payload.PetID,
		Type:              payload.Type,
		Title:             payload.Title,
		Description:       payload.Description,
		DueDate:           payload.DueDate,
		Recurring:         payload.Recurring,
		RecurringInterval: payload.RecurringInterval,
	}, payload.Completed
}

// IsEmptyPatch reports whether the patch changes no field.
func IsEmptyPatch(patch ports.ReminderPatch) bool {
	return patch == ports.ReminderPatch{}
}

// FromDomain maps a reminder with its derived status.
func FromDomain(r *domain.Reminder, status domain.Status) Reminder {
	out := Reminder{
		ID:          r.ID,
		UserID:      r.UserID,
		PetID:       r.PetID,
		Type:        string(r.Type),
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDateString(),
		Completed:   r.Completed,
		Recurring:   r.Recurring,
		Status:      string(status),
	}
	if r.Recurring {
		out.RecurringInterval = string(r.RecurringInterval)
	}
	return out
}

// FromDomainList maps reminders using statusOf to derive each status.
func FromDomainList(list []*domain.Reminder, statusOf func(*domain.Reminder) domain.Status) []Reminder {
	out := make([]Reminder, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomain(r, statusOf(r)))
	}
	return out
}

// FromCompletion maps the completion outcome.
func FromCompletion(result *ports.CompletionResult, statusOf func(*domain.Reminder) domain.Status) Completion {
	out := Completion{
		Reminder:     FromDomain(result.Reminder, statusOf(result.Reminder)),
		Transitioned: result.Transitioned,
	}
	if result.Next != nil {
		next := FromDomain(result.Next, statusOf(result.Next))
		out.Next = &next
	}
	return out
}

// FromSummary maps the dashboard counts.
func FromSummary(summary *ports.Summary) Summary {
	counts := make(map[string]int, len(summary.Counts))
	for status, n := range summary.Counts {
		counts[string(status)] = n
	}
	return Summary{
		UserID: summary.UserID,
		AsOf:   summary.AsOf.Format(time.DateOnly),
		Total:  summary.Total,
		Counts: counts,
	}
}

// FromAdoptedPets maps the adopted-pets lookup.
func FromAdoptedPets(pets []domain.AdoptedPet) []AdoptedPet {
	out := make([]AdoptedPet, 0, len(pets))
	for _, p := range pets {
		out = append(out, AdoptedPet{ID: p.ID, Name: p.Name, Species: p.Species})
	}
	return out
}
