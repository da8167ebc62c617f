package reminders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/application"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

const (
	// CompleteReminderActivityName sets the completion flag of a reminder.
	CompleteReminderActivityName = "reminders.activities.CompleteReminder"
	// ProjectNextReminderActivityName persists the follow-up of a recurring reminder.
	ProjectNextReminderActivityName = "reminders.activities.ProjectNextReminder"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeNotFound     = "ReminderNotFound"
	ErrTypeInvalidInput = "InvalidReminderInput"
)

// Activities groups activities that operate on the reminders bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the reminders service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// CompleteReminder runs the first completion step.
func (a *Activities) CompleteReminder(ctx context.Context, input ports.CompletionInput) (*ports.CompletionResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("complete reminder activity not initialized", "reminderId", input.ReminderID)
		return nil, errors.New("complete reminder activity not initialized")
	}
	logger.Info("CompleteReminder activity started", "reminderId", input.ReminderID, "completed", input.Completed)
	result, err := a.service.Complete(ctx, input.ReminderID, input.Completed)
	if err != nil {
		logger.Error("CompleteReminder activity failed", "reminderId", input.ReminderID, "error", err)
		return nil, classify(err)
	}
	logger.Info("CompleteReminder activity completed", "reminderId", input.ReminderID, "transitioned", result.Transitioned)
	return result, nil
}

// ProjectNextReminder runs the second completion step. Retries are safe because the
// follow-up id is derived from the source occurrence.
func (a *Activities) ProjectNextReminder(ctx context.Context, reminderID string) (*domain.Reminder, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("project reminder activity not initialized", "reminderId", reminderID)
		return nil, errors.New("project reminder activity not initialized")
	}
	logger.Info("ProjectNextReminder activity started", "reminderId", reminderID)
	next, err := a.service.ProjectNext(ctx, reminderID)
	if err != nil {
		logger.Error("ProjectNextReminder activity failed", "reminderId", reminderID, "error", err)
		return nil, classify(err)
	}
	logger.Info("ProjectNextReminder activity completed", "reminderId", reminderID, "nextId", next.ID)
	return next, nil
}

// classify marks caller errors as non-retryable; storage failures stay retryable.
func classify(err error) error {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeNotFound, err)
	case errors.Is(err, application.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	default:
		return err
	}
}
