package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/collection"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/memory"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/application"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
	reminderactivities "github.com/Apurer/petcare-reminders/internal/platform/temporal/activities/reminders"
	reminderworkflows "github.com/Apurer/petcare-reminders/internal/platform/temporal/workflows/reminders"
)

func newInline(t *testing.T) (*InlineCompletionWorkflows, *application.Service, *collection.Repository) {
	t.Helper()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	repo := collection.NewRepository(memory.NewDocumentStore())
	svc := application.NewService(repo, application.WithClock(func() time.Time { return now }))
	return NewInlineCompletionWorkflows(svc), svc, repo
}

func addReminder(t *testing.T, svc *application.Service, recurring bool, interval string) *domain.Reminder {
	t.Helper()
	r, err := svc.AddReminder(context.Background(), ports.CreateReminderInput{
		UserID: "user-1", PetID: "pet-1", Type: "checkup", Title: "Dental check",
		DueDate: "2024-03-01", Recurring: recurring, RecurringInterval: interval,
	})
	require.NoError(t, err)
	return r
}

func TestInlineCompletion_ProjectsOnTransition(t *testing.T) {
	ctx := context.Background()
	orch, svc, repo := newInline(t)
	r := addReminder(t, svc, true, "weekly")

	result, err := orch.SetCompleted(ctx, ports.CompletionInput{ReminderID: r.ID, Completed: true})
	require.NoError(t, err)
	require.True(t, result.Transitioned)
	require.NotNil(t, result.Next)
	require.Equal(t, "2024-03-08", result.Next.DueDateString())
	require.True(t, result.Next.Recurring)
	require.Equal(t, domain.IntervalWeekly, result.Next.RecurringInterval)

	// Toggle off then on again: the same occurrence is never projected twice.
	_, err = orch.SetCompleted(ctx, ports.CompletionInput{ReminderID: r.ID, Completed: false})
	require.NoError(t, err)
	again, err := orch.SetCompleted(ctx, ports.CompletionInput{ReminderID: r.ID, Completed: true})
	require.NoError(t, err)
	require.Equal(t, result.Next.ID, again.Next.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestInlineCompletion_NonRecurringAndRepeats(t *testing.T) {
	ctx := context.Background()
	orch, svc, repo := newInline(t)
	r := addReminder(t, svc, false, "")

	result, err := orch.SetCompleted(ctx, ports.CompletionInput{ReminderID: r.ID, Completed: true})
	require.NoError(t, err)
	require.True(t, result.Transitioned)
	require.Nil(t, result.Next)

	repeat, err := orch.SetCompleted(ctx, ports.CompletionInput{ReminderID: r.ID, Completed: true})
	require.NoError(t, err)
	require.False(t, repeat.Transitioned)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestInlineCompletion_ProjectsWhenCompletionWasAlreadyPersisted(t *testing.T) {
	ctx := context.Background()
	orch, svc, repo := newInline(t)
	r := addReminder(t, svc, true, "monthly")
	_, err := svc.Complete(ctx, r.ID, true)
	require.NoError(t, err)

	result, err := orch.SetCompleted(ctx, ports.CompletionInput{ReminderID: r.ID, Completed: true})
	require.NoError(t, err)
	require.False(t, result.Transitioned)
	require.NotNil(t, result.Next)
	require.Equal(t, "2024-04-01", result.Next.DueDateString())

	repeat, err := orch.SetCompleted(ctx, ports.CompletionInput{ReminderID: r.ID, Completed: true})
	require.NoError(t, err)
	require.Equal(t, result.Next.ID, repeat.Next.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestInlineCompletion_UnknownID(t *testing.T) {
	orch, _, _ := newInline(t)
	_, err := orch.SetCompleted(context.Background(), ports.CompletionInput{ReminderID: "missing", Completed: true})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestTemporalCompletion_WaitsForResult(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	queued := mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
		return o.TaskQueue == reminderworkflows.ReminderCompletionTaskQueue
	})
	c.On("ExecuteWorkflow", mock.Anything, queued, reminderworkflows.ReminderCompletionWorkflowName, mock.Anything).Return(run, nil).Once()
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(*ports.CompletionResult)
		out.Transitioned = true
	}).Return(nil).Once()

	result, err := NewTemporalCompletionWorkflows(c).SetCompleted(context.Background(), ports.CompletionInput{ReminderID: "r-1", Completed: true})
	require.NoError(t, err)
	require.True(t, result.Transitioned)
	c.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestTemporalCompletion_AttachesToRunningExecution(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "req-1", "run-1")).Once()
	c.On("GetWorkflow", mock.Anything, mock.Anything, "run-1").Return(run).Once()
	run.On("Get", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := NewTemporalCompletionWorkflows(c).SetCompleted(context.Background(), ports.CompletionInput{ReminderID: "r-1", Completed: true})
	require.NoError(t, err)
	c.AssertExpectations(t)
}

func TestTemporalCompletion_NotConfigured(t *testing.T) {
	_, err := NewTemporalCompletionWorkflows(nil).SetCompleted(context.Background(), ports.CompletionInput{ReminderID: "r-1"})
	require.Error(t, err)
}

func TestTranslateWorkflowError(t *testing.T) {
	notFound := temporal.NewNonRetryableApplicationError("reminder not found", reminderactivities.ErrTypeNotFound, nil)
	require.ErrorIs(t, translateWorkflowError(notFound), ports.ErrNotFound)

	invalid := temporal.NewNonRetryableApplicationError("title is required", reminderactivities.ErrTypeInvalidInput, nil)
	require.ErrorIs(t, translateWorkflowError(invalid), application.ErrInvalidInput)

	other := errors.New("connection reset")
	require.Equal(t, other, translateWorkflowError(other))
}

func TestBuildCompletionWorkflowID(t *testing.T) {
	on := buildCompletionWorkflowID(ports.CompletionInput{ReminderID: "r-1", Completed: true}, "trace")
	off := buildCompletionWorkflowID(ports.CompletionInput{ReminderID: "r-1", Completed: false}, "trace")
	require.Equal(t, "reminder-completion-r-1-true-trace", on)
	require.NotEqual(t, on, off)
}
