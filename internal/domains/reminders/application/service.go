package application

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

// projectionNamespace seeds the deterministic ids of projected follow-ups.
var projectionNamespace = uuid.MustParse("6f1c8a52-3c55-4d8e-9a39-8f0a4f6d2b17")

// Service orchestrates the reminder lifecycle use cases.
type Service struct {
	repo           ports.Repository
	pets           ports.AdoptedPets
	checkOwnership bool
	now            func() time.Time
	newID          func() string
}

type Option func(*Service)

// WithAdoptedPets enables pet ownership checks and the adopted-pets lookup.
func WithAdoptedPets(pets ports.AdoptedPets) Option {
	return func(s *Service) {
		s.pets = pets
		s.checkOwnership = pets != nil
	}
}

// WithOwnershipCheck toggles whether reminders may only target the user's adopted pets.
// Apply it after WithAdoptedPets.
func WithOwnershipCheck(enabled bool) Option {
	return func(s *Service) {
		s.checkOwnership = enabled && s.pets != nil
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how new reminder ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the reminders service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListReminders returns every reminder owned by the user, ordered by due date.
func (s *Service) ListReminders(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]*domain.Reminder, 0, len(all))
	for _, r := range all {
		if r.UserID == userID {
			owned = append(owned, r)
		}
	}
	sortByDueDate(owned)
	return owned, nil
}

// ListRemindersByFilter narrows the user's reminders to one list tab.
func (s *Service) ListRemindersByFilter(ctx context.Context, userID string, filter domain.Filter) ([]*domain.Reminder, error) {
	if _, err := domain.ParseFilter(string(filter)); err != nil {
		return nil, mapError(err)
	}
	owned, err := s.ListReminders(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	matched := make([]*domain.Reminder, 0, len(owned))
	for _, r := range owned {
		if filter.Matches(r, now) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// GetReminder loads a single reminder.
func (s *Service) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	return s.repo.GetByID(ctx, id)
}

// Summarize counts the user's reminders per derived status.
func (s *Service) Summarize(ctx context.Context, userID string) (*ports.Summary, error) {
	owned, err := s.ListReminders(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	summary := &ports.Summary{
		UserID: userID,
		AsOf:   now,
		Total:  len(owned),
		Counts: map[domain.Status]int{
			domain.StatusCompleted: 0,
			domain.StatusOverdue:   0,
			domain.StatusUpcoming:  0,
			domain.StatusFuture:    0,
		},
	}
	for _, r := range owned {
		summary.Counts[domain.DeriveStatus(r, now)]++
	}
	return summary, nil
}

// ListAdoptedPets returns the pets valid as reminder targets for the user.
func (s *Service) ListAdoptedPets(ctx context.Context, userID string) ([]domain.AdoptedPet, error) {
	if s.pets == nil {
		return []domain.AdoptedPet{}, nil
	}
	return s.pets.ListAdoptedPets(ctx, userID)
}

// AddReminder validates the input and persists a new pending reminder.
func (s *Service) AddReminder(ctx context.Context, input ports.CreateReminderInput) (*domain.Reminder, error) {
	reminder, err := domain.NewReminder(s.newID(), input.UserID, input.PetID, domain.CareType(input.Type), input.Title, input.DueDate)
	if err != nil {
		return nil, mapError(err)
	}
	reminder.Describe(input.Description)
	if err := reminder.SetRecurrence(input.Recurring, domain.Interval(input.RecurringInterval)); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureAdopted(ctx, reminder.UserID, reminder.PetID); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Put(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// UpdateReminder merges the patch into an existing reminder.
func (s *Service) UpdateReminder(ctx context.Context, id string, patch ports.ReminderPatch) (*domain.Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPatch(reminder, patch); err != nil {
		return nil, mapError(err)
	}
	if patch.PetID != nil {
		if err := s.ensureAdopted(ctx, reminder.UserID, reminder.PetID); err != nil {
			return nil, mapError(err)
		}
	}
	if err := s.repo.Put(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// DeleteReminder removes a reminder, reporting false when the id is unknown.
func (s *Service) DeleteReminder(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Complete sets the completion flag. It never projects; see ProjectNext.
func (s *Service) Complete(ctx context.Context, id string, completed bool) (*ports.CompletionResult, error) {
	reminder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder.Completed == completed {
		return &ports.CompletionResult{Reminder: reminder}, nil
	}
	transitioned := reminder.MarkCompleted(completed)
	if err := s.repo.Put(ctx, reminder); err != nil {
		return nil, err
	}
	return &ports.CompletionResult{Reminder: reminder, Transitioned: transitioned}, nil
}

// ProjectNext persists the follow-up occurrence of a recurring reminder. Projecting the
// same occurrence twice returns the follow-up stored the first time.
func (s *Service) ProjectNext(ctx context.Context, id string) (*domain.Reminder, error) {
	source, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.ProjectNext(source, "")
	if err != nil {
		return nil, mapError(err)
	}
	next.ID = projectionID(source.ID, next.DueDateString())
	existing, err := s.repo.GetByID(ctx, next.ID)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}
	if err := s.repo.Put(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// GetReminderStatus derives the status against the service clock.
func (s *Service) GetReminderStatus(reminder *domain.Reminder) domain.Status {
	return domain.DeriveStatus(reminder, s.now())
}

func (s *Service) ensureAdopted(ctx context.Context, userID, petID string) error {
	if !s.checkOwnership {
		return nil
	}
	pets, err := s.pets.ListAdoptedPets(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve adopted pets: %w", err)
	}
	for _, pet := range pets {
		if pet.ID == petID {
			return nil
		}
	}
	return domain.ErrPetNotAdopted
}

func applyPatch(target *domain.Reminder, patch ports.ReminderPatch) error {
	if patch.PetID != nil {
		if err := target.AssignPet(*patch.PetID); err != nil {
			return err
		}
	}
	if patch.Title != nil {
		if err := target.Retitle(*patch.Title); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		target.Describe(*patch.Description)
	}
	if patch.DueDate != nil {
		if err := target.Reschedule(*patch.DueDate); err != nil {
			return err
		}
	}
	if patch.Type != nil {
		if err := target.ChangeType(domain.CareType(*patch.Type)); err != nil {
			return err
		}
	}
	if patch.Recurring != nil || patch.RecurringInterval != nil {
		recurring := target.Recurring
		interval := target.RecurringInterval
		if patch.Recurring != nil {
			recurring = *patch.Recurring
		}
		if patch.RecurringInterval != nil {
			interval = domain.Interval(strings.TrimSpace(*patch.RecurringInterval))
			if !recurring && interval != "" {
				return domain.ErrUnusedInterval
			}
		}
		if err := target.SetRecurrence(recurring, interval); err != nil {
			return err
		}
	}
	return nil
}

func projectionID(sourceID, dueDate string) string {
	return uuid.NewSHA1(projectionNamespace, []byte(sourceID+"/"+dueDate)).String()
}

func sortByDueDate(list []*domain.Reminder) {
	slices.SortFunc(list, func(a, b *domain.Reminder) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

var _ ports.Service = (*Service)(nil)
