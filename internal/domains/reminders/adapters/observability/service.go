package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/domain"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
)

const tracerName = "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/observability/service"

// Service decorates the reminders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// ListReminders returns a user's reminders with instrumentation.
func (s *Service) ListReminders(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	ctx, span := s.startSpan(ctx, "Service.ListReminders", attribute.String("user.id", userID))
	defer span.End()

	result, err := s.inner.ListReminders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list reminders", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("reminder.result.count", len(result)))
	s.logInfo(ctx, "listed reminders", slog.String("user.id", userID), slog.Int("count", len(result)))
	return result, nil
}

// ListRemindersByFilter narrows a user's reminders to one tab.
func (s *Service) ListRemindersByFilter(ctx context.Context, userID string, filter domain.Filter) ([]*domain.Reminder, error) {
	ctx, span := s.startSpan(ctx, "Service.ListRemindersByFilter",
		attribute.String("user.id", userID),
		attribute.String("reminder.filter", string(filter)),
	)
	defer span.End()

	result, err := s.inner.ListRemindersByFilter(ctx, userID, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to filter reminders", slog.String("user.id", userID), slog.String("filter", string(filter)))
	}
	span.SetAttributes(attribute.Int("reminder.result.count", len(result)))
	s.logInfo(ctx, "filtered reminders", slog.String("user.id", userID), slog.String("filter", string(filter)), slog.Int("count", len(result)))
	return result, nil
}

// GetReminder loads a single reminder.
func (s *Service) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	ctx, span := s.startSpan(ctx, "Service.GetReminder", attribute.String("reminder.id", id))
	defer span.End()

	result, err := s.inner.GetReminder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load reminder", slog.String("reminder.id", id))
	}
	return result, nil
}

// Summarize counts reminders per derived status.
func (s *Service) Summarize(ctx context.Context, userID string) (*ports.Summary, error) {
	ctx, span := s.startSpan(ctx, "Service.Summarize", attribute.String("user.id", userID))
	defer span.End()

	result, err := s.inner.Summarize(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to summarize reminders", slog.String("user.id", userID))
	}
	if result != nil {
		span.SetAttributes(
			attribute.Int("reminder.total", result.Total),
			attribute.Int("reminder.overdue", result.Counts[domain.StatusOverdue]),
		)
	}
	return result, nil
}

// ListAdoptedPets resolves the pets a user may target.
func (s *Service) ListAdoptedPets(ctx context.Context, userID string) ([]domain.AdoptedPet, error) {
	ctx, span := s.startSpan(ctx, "Service.ListAdoptedPets", attribute.String("user.id", userID))
	defer span.End()

	result, err := s.inner.ListAdoptedPets(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adopted pets", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

// AddReminder persists a new reminder with instrumentation.
func (s *Service) AddReminder(ctx context.Context, input ports.CreateReminderInput) (*domain.Reminder, error) {
	ctx, span := s.startSpan(ctx, "Service.AddReminder",
		attribute.String("user.id", input.UserID),
		attribute.String("pet.id", input.PetID),
		attribute.String("reminder.type", input.Type),
	)
	defer span.End()

	s.logInfo(ctx, "adding reminder", slog.String("user.id", input.UserID), slog.String("pet.id", input.PetID))
	result, err := s.inner.AddReminder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add reminder", slog.String("user.id", input.UserID))
	}
	s.metrics.recordCreated(ctx, result.Type)
	span.SetAttributes(attribute.String("reminder.id", result.ID))
	s.logInfo(ctx, "reminder added", slog.String("reminder.id", result.ID), slog.String("due_date", result.DueDateString()))
	return result, nil
}

// UpdateReminder merges a patch into a stored reminder.
func (s *Service) UpdateReminder(ctx context.Context, id string, patch ports.ReminderPatch) (*domain.Reminder, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateReminder", attribute.String("reminder.id", id))
	defer span.End()

	s.logInfo(ctx, "updating reminder", slog.String("reminder.id", id))
	result, err := s.inner.UpdateReminder(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update reminder", slog.String("reminder.id", id))
	}
	s.logInfo(ctx, "reminder updated", slog.String("reminder.id", result.ID), slog.String("due_date", result.DueDateString()))
	return result, nil
}

// DeleteReminder removes a reminder, counting only actual removals.
func (s *Service) DeleteReminder(ctx context.Context, id string) (bool, error) {
	ctx, span := s.startSpan(ctx, "Service.DeleteReminder", attribute.String("reminder.id", id))
	defer span.End()

	deleted, err := s.inner.DeleteReminder(ctx, id)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to delete reminder", slog.String("reminder.id", id))
	}
	span.SetAttributes(attribute.Bool("reminder.deleted", deleted))
	if deleted {
		s.metrics.recordDeleted(ctx)
		s.logInfo(ctx, "reminder deleted", slog.String("reminder.id", id))
	} else {
		s.logInfo(ctx, "reminder delete skipped, id unknown", slog.String("reminder.id", id))
	}
	return deleted, nil
}

// Complete flips the completion flag with instrumentation.
func (s *Service) Complete(ctx context.Context, id string, completed bool) (*ports.CompletionResult, error) {
	ctx, span := s.startSpan(ctx, "Service.Complete",
		attribute.String("reminder.id", id),
		attribute.Bool("reminder.completed", completed),
	)
	defer span.End()

	result, err := s.inner.Complete(ctx, id, completed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set reminder completion", slog.String("reminder.id", id))
	}
	span.SetAttributes(attribute.Bool("reminder.transitioned", result.Transitioned))
	if result.Transitioned {
		s.metrics.recordCompleted(ctx, result.Reminder.Type)
	}
	s.logInfo(ctx, "reminder completion set", slog.String("reminder.id", id), slog.Bool("completed", completed), slog.Bool("transitioned", result.Transitioned))
	return result, nil
}

// ProjectNext creates the follow-up of a recurring reminder with instrumentation.
func (s *Service) ProjectNext(ctx context.Context, id string) (*domain.Reminder, error) {
	ctx, span := s.startSpan(ctx, "Service.ProjectNext", attribute.String("reminder.id", id))
	defer span.End()

	next, err := s.inner.ProjectNext(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to project next reminder", slog.String("reminder.id", id))
	}
	s.metrics.recordProjected(ctx, next.RecurringInterval)
	span.SetAttributes(attribute.String("reminder.next.id", next.ID))
	s.logInfo(ctx, "reminder projected", slog.String("reminder.id", id), slog.String("next.id", next.ID), slog.String("next.due_date", next.DueDateString()))
	return next, nil
}

// GetReminderStatus derives the status without tracing; it is pure.
func (s *Service) GetReminderStatus(reminder *domain.Reminder) domain.Status {
	return s.inner.GetReminderStatus(reminder)
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	created   metric.Int64Counter
	completed metric.Int64Counter
	projected metric.Int64Counter
	deleted   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("reminders.service.created", metric.WithDescription("Number of reminders created"))
	completed, _ := m.Int64Counter("reminders.service.completed", metric.WithDescription("Number of reminders moved to completed"))
	projected, _ := m.Int64Counter("reminders.service.projected", metric.WithDescription("Number of recurring follow-ups projected"))
	deleted, _ := m.Int64Counter("reminders.service.deleted", metric.WithDescription("Number of reminders deleted"))
	return serviceMetrics{
		created:   created,
		completed: completed,
		projected: projected,
		deleted:   deleted,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, careType domain.CareType) {
	addCounter(ctx, m.created, 1, attribute.String("reminder.type", string(careType)))
}

func (m serviceMetrics) recordCompleted(ctx context.Context, careType domain.CareType) {
	addCounter(ctx, m.completed, 1, attribute.String("reminder.type", string(careType)))
}

func (m serviceMetrics) recordProjected(ctx context.Context, interval domain.Interval) {
	addCounter(ctx, m.projected, 1, attribute.String("reminder.interval", string(interval)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.deleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
