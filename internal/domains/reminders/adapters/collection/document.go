package collection

import (
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
)

// reminderDocument is the stored JSON shape of one reminder.
type reminderDocument struct {
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
}

func toDocument(r *domain.Reminder) reminderDocument {
	doc := reminderDocument{
		ID:          r.ID,
		UserID:      r.UserID,
		PetID:       r.PetID,
		Type:        string(r.Type),
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDateString(),
		Completed:   r.Completed,
		Recurring:   r.Recurring,
	}
	if r.Recurring {
		doc.RecurringInterval = string(r.RecurringInterval)
	}
	return doc
}

func (d reminderDocument) toDomain() (*domain.Reminder, error) {
	due, err := domain.ParseDueDate(d.DueDate)
	if err != nil {
		return nil, err
	}
	r := &domain.Reminder{
		ID:          d.ID,
		UserID:      d.UserID,
		PetID:       d.PetID,
		Type:        domain.CareType(d.Type),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     due,
		Completed:   d.Completed,
		Recurring:   d.Recurring,
	}
	if d.Recurring {
		r.RecurringInterval = domain.Interval(d.RecurringInterval)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
