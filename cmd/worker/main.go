package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/petcare-reminders/internal/app/api"
	platformobservability "github.com/Apurer/petcare-reminders/internal/platform/observability"
	reminderactivities "github.com/Apurer/petcare-reminders/internal/platform/temporal/activities/reminders"
	reminderworkflows "github.com/Apurer/petcare-reminders/internal/platform/temporal/workflows/reminders"
)

func main() {
	ctx := context.Background()
	const serviceName = "petcare-reminders-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service, cleanupStore := api.BuildService(ctx, cfg, instruments)
	defer cleanupStore()
	activities := reminderactivities.NewActivities(service)

	temporalClient, err := api.ConnectTemporal(cfg.Temporal, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, reminderworkflows.ReminderCompletionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(reminderworkflows.ReminderCompletionWorkflow, workflow.RegisterOptions{Name: reminderworkflows.ReminderCompletionWorkflowName})
	w.RegisterActivityWithOptions(activities.CompleteReminder, activity.RegisterOptions{Name: reminderactivities.CompleteReminderActivityName})
	w.RegisterActivityWithOptions(activities.ProjectNextReminder, activity.RegisterOptions{Name: reminderactivities.ProjectNextReminderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", reminderworkflows.ReminderCompletionTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
