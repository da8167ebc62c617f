package reminders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
	"github.com/Apurer/petcare-reminders/internal/platform/temporal/sequences"
)

const (
	// ReminderCompletionWorkflowName is the public identifier for registering the workflow.
	ReminderCompletionWorkflowName = "reminders.workflows.Completion"
	// ReminderCompletionTaskQueue is the queue consumed by the worker processing reminder workflows.
	ReminderCompletionTaskQueue = "REMINDER_COMPLETION"
)

// ReminderCompletionWorkflowInput captures one completion toggle.
type ReminderCompletionWorkflowInput struct {
	Command ports.CompletionInput
	TraceID string
}

// ReminderCompletionWorkflow toggles completion and projects the next occurrence when due.
func ReminderCompletionWorkflow(ctx workflow.Context, input ReminderCompletionWorkflowInput) (*ports.CompletionResult, error) {
	logger := workflow.GetLogger(ctx)
	reminderID := input.Command.ReminderID
	logger.Info("ReminderCompletionWorkflow started", withTraceID(input.TraceID, "reminderId", reminderID)...)
	result, err := sequences.RunCompletionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ReminderCompletionWorkflow failed", withTraceID(input.TraceID, "reminderId", reminderID, "error", err)...)
		return nil, err
	}
	if result.Next != nil {
		logger.Info("ReminderCompletionWorkflow completed", withTraceID(input.TraceID, "reminderId", reminderID, "nextId", result.Next.ID)...)
	} else {
		logger.Info("ReminderCompletionWorkflow completed", withTraceID(input.TraceID, "reminderId", reminderID)...)
	}
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
