package ports

import "context"

// CompletionInput identifies a completion toggle.
type CompletionInput struct {
	ReminderID string
	Completed  bool
}

// NeedsProjection reports whether the completion of input should be followed by projecting the
// next occurrence. It also holds when the flag was already persisted by an earlier attempt.
func NeedsProjection(input CompletionInput, result *CompletionResult) bool {
	return input.Completed && result != nil && result.Reminder != nil &&
		result.Reminder.Completed && result.Reminder.Recurring
}

// WorkflowOrchestrator composes the completion step with the recurrence projection.
type WorkflowOrchestrator interface {
	SetCompleted(ctx context.Context, input CompletionInput) (*CompletionResult, error)
}
