package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/application"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
	reminderactivities "github.com/Apurer/petcare-reminders/internal/platform/temporal/activities/reminders"
	reminderworkflows "github.com/Apurer/petcare-reminders/internal/platform/temporal/workflows/reminders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCompletionWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCompletionWorkflows)(nil)
)

// TemporalCompletionWorkflows starts reminder completion workflows on a Temporal cluster.
type TemporalCompletionWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCompletionWorkflows wires a Temporal client into the orchestrator.
func NewTemporalCompletionWorkflows(c client.Client) *TemporalCompletionWorkflows {
	return &TemporalCompletionWorkflows{client: c, taskQueue: reminderworkflows.ReminderCompletionTaskQueue}
}

// SetCompleted runs the completion workflow and waits for its result.
func (o *TemporalCompletionWorkflows) SetCompleted(ctx context.Context, input ports.CompletionInput) (*ports.CompletionResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal completion workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCompletionWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		reminderworkflows.ReminderCompletionWorkflowName,
		reminderworkflows.ReminderCompletionWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var result ports.CompletionResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &result, nil
}

// InlineCompletionWorkflows executes both completion steps in process, useful for tests or dev fallbacks.
type InlineCompletionWorkflows struct {
	service ports.Service
}

// NewInlineCompletionWorkflows wraps the reminders service for synchronous execution.
func NewInlineCompletionWorkflows(service ports.Service) *InlineCompletionWorkflows {
	return &InlineCompletionWorkflows{service: service}
}

// SetCompleted completes the reminder and projects the follow-up of a completed recurring reminder.
func (o *InlineCompletionWorkflows) SetCompleted(ctx context.Context, input ports.CompletionInput) (*ports.CompletionResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline completion workflows not configured")
	}
	result, err := o.service.Complete(ctx, input.ReminderID, input.Completed)
	if err != nil {
		return nil, err
	}
	if !ports.NeedsProjection(input, result) {
		return result, nil
	}
	next, err := o.service.ProjectNext(ctx, input.ReminderID)
	if err != nil {
		return result, fmt.Errorf("project next occurrence: %w", err)
	}
	result.Next = next
	return result, nil
}

// translateWorkflowError restores the sentinel errors that non-retryable activity failures carry by type.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case reminderactivities.ErrTypeNotFound:
		return fmt.Errorf("%w: %s", ports.ErrNotFound, appErr.Message())
	case reminderactivities.ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	default:
		return err
	}
}

// The completion flag is part of the id so that a complete and an uncomplete issued under the
// same trace do not collapse into one execution.
func buildCompletionWorkflowID(input ports.CompletionInput, traceComponent string) string {
	return fmt.Sprintf("reminder-completion-%s-%t-%s", input.ReminderID, input.Completed, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
