package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
	reminderactivities "github.com/Apurer/petcare-reminders/internal/platform/temporal/activities/reminders"
)

// RunCompletionSequence sets the completion flag and, when a recurring reminder ends up completed,
// projects its next occurrence. Projection is keyed by occurrence, so retried completions do not
// duplicate the follow-up.
func RunCompletionSequence(ctx workflow.Context, input ports.CompletionInput) (*ports.CompletionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("reminder completion sequence started", "reminderId", input.ReminderID, "completed", input.Completed)
	completeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	projectOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    10,
		},
	}

	var result ports.CompletionResult
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, completeOptions), reminderactivities.CompleteReminderActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("reminder completion sequence failed", "reminderId", input.ReminderID, "error", err)
		return nil, err
	}
	if !ports.NeedsProjection(input, &result) {
		logger.Info("reminder completion sequence finished without projection", "reminderId", input.ReminderID)
		return &result, nil
	}

	var next domain.Reminder
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, projectOptions), reminderactivities.ProjectNextReminderActivityName, input.ReminderID).Get(ctx, &next); err != nil {
		logger.Error("reminder completion sequence projection failed", "reminderId", input.ReminderID, "error", err)
		return &result, err
	}
	result.Next = &next
	logger.Info("reminder completion sequence projected", "reminderId", input.ReminderID, "nextId", next.ID)
	return &result, nil
}
