package api

import (
	"errors"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/petcare-reminders/internal/platform/observability"
)

// ConnectTemporal dials the Temporal frontend with OTel tracing and slog logging wired in.
func ConnectTemporal(cfg TemporalConfig, instruments *platformobservability.Instruments, component string) (client.Client, error) {
	if cfg.Disabled {
		return nil, errors.New("temporal disabled via configuration")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(component),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(instruments.EffectiveLogger()),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
