// Package workflows connects the binaries to Temporal. The API starts
// category reassignment workflows through it; the worker polls the same
// task queue.
package workflows

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/backoffice/pkg/config"
	"github.com/ghuser/backoffice/pkg/logger"
)

// TemporalClient is a connected Temporal client bound to one namespace and
// task queue.
type TemporalClient struct {
	Client    client.Client
	Namespace string
	TaskQueue string

	activityConcurrency int
	log                 logger.Logger
}

// NewTemporalClient dials TEMPORAL_HOST_PORT with the OTel tracing
// interceptor so workflow spans join the HTTP request trace.
// Call Close when the process shuts down.
func NewTemporalClient(ctx context.Context, cfg *config.Config, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal otel interceptor: %w", err)
	}

	log = log.With("component", "temporal", "task_queue", cfg.TemporalTaskQueue)
	c, err := client.DialContext(ctx, client.Options{
		HostPort:     cfg.TemporalHostPort,
		Namespace:    cfg.TemporalNamespace,
		Identity:     cfg.ServiceName,
		Logger:       temporalLogger{log: log},
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal server at %s: %w", cfg.TemporalHostPort, err)
	}
	log.InfoContext(ctx, "temporal client connected", "namespace", cfg.TemporalNamespace)

	return &TemporalClient{
		Client:              c,
		Namespace:           cfg.TemporalNamespace,
		TaskQueue:           cfg.TemporalTaskQueue,
		activityConcurrency: cfg.TemporalActivityConcurrency,
		log:                 log,
	}, nil
}

// NewWorker returns a worker polling the client's task queue. Register
// workflows and activities on it before calling Start.
func (tc *TemporalClient) NewWorker() worker.Worker {
	return worker.New(tc.Client, tc.TaskQueue, workerOptions(tc.activityConcurrency))
}

func workerOptions(activityConcurrency int) worker.Options {
	opts := worker.Options{}
	if activityConcurrency > 0 {
		opts.MaxConcurrentActivityExecutionSize = activityConcurrency
	}
	return opts
}

// Ping reports whether the frontend service answers a health check.
func (tc *TemporalClient) Ping(ctx context.Context) error {
	if _, err := tc.Client.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
		return fmt.Errorf("temporal health: %w", err)
	}
	return nil
}

// Close shuts down the client connection.
func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal client closed")
}

// temporalLogger adapts logger.Logger to the SDK's log.Logger and
// log.WithLogger interfaces.
type temporalLogger struct {
	log logger.Logger
}

var (
	_ temporallog.Logger     = temporalLogger{}
	_ temporallog.WithLogger = temporalLogger{}
)

func (l temporalLogger) Debug(msg string, keyvals ...any) { l.log.Debug(msg, keyvals...) }
func (l temporalLogger) Info(msg string, keyvals ...any)  { l.log.Info(msg, keyvals...) }
func (l temporalLogger) Warn(msg string, keyvals ...any)  { l.log.Warn(msg, keyvals...) }
func (l temporalLogger) Error(msg string, keyvals ...any) { l.log.Error(msg, keyvals...) }

func (l temporalLogger) With(keyvals ...any) temporallog.Logger {
	return temporalLogger{log: l.log.With(keyvals...)}
}
