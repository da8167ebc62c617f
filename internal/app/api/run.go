package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	remindersserver "github.com/Apurer/petcare-reminders/go"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/adoptions"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/collection"
	remindersobs "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/observability"
	remindersworkflows "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/workflows"
	remindersapp "github.com/Apurer/petcare-reminders/internal/domains/reminders/application"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
	platformobservability "github.com/Apurer/petcare-reminders/internal/platform/observability"
)

// Run boots the reminders HTTP API with observability, storage, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "petcare-reminders-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service, cleanupStore := BuildService(ctx, cfg, instruments)
	defer cleanupStore()

	var completions ports.WorkflowOrchestrator = remindersworkflows.NewInlineCompletionWorkflows(service)
	if temporalClient, err := ConnectTemporal(cfg.Temporal, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running completion inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		completions = remindersworkflows.NewTemporalCompletionWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	handlers := remindersserver.ApiHandleFunctions{
		ReminderAPI: remindersserver.NewReminderAPI(service, completions),
	}
	router := newHTTPRouter(serviceName, handlers)

	addr := cfg.Addr()
	logger.Info("Reminders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Reminders API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// newHTTPRouter installs the tracing middleware before the reminder routes so every route chain
// carries it.
func newHTTPRouter(serviceName string, handlers remindersserver.ApiHandleFunctions, opts ...otelgin.Option) *gin.Engine {
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName, opts...))
	return remindersserver.NewRouterWithGinEngine(engine, handlers)
}

// BuildService wires the instrumented reminders service over the configured document store.
// The worker process uses the same wiring for its activities.
func BuildService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (ports.Service, func()) {
	logger := instruments.EffectiveLogger()
	store, backend, cleanup := BuildDocumentStore(ctx, cfg.Storage, logger)
	core := remindersapp.NewService(
		collection.NewRepository(store, collection.WithKey(cfg.Storage.CollectionKey)),
		remindersapp.WithAdoptedPets(adoptions.NewStoreDirectory(store)),
		remindersapp.WithOwnershipCheck(cfg.Adoptions.EnforceOwnership),
	)
	logger.Info("reminders service configured", slog.String("storage", backend))
	return remindersobs.New(
		core,
		remindersobs.WithLogger(logger),
		remindersobs.WithTracer(instruments.Tracer("internal.reminders.application")),
		remindersobs.WithMeter(instruments.Meter("internal.reminders.application")),
	), cleanup
}
