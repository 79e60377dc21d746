package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/backoffice/pkg/app"
	"github.com/ghuser/backoffice/pkg/cache"
	"github.com/ghuser/backoffice/pkg/config"
	"github.com/ghuser/backoffice/pkg/database"
	"github.com/ghuser/backoffice/pkg/events"
	"github.com/ghuser/backoffice/pkg/logger"
	"github.com/ghuser/backoffice/pkg/telemetry"
	"github.com/ghuser/backoffice/pkg/workflows"
	menuWorkflows "github.com/ghuser/backoffice/services/menu/application/workflows"
	menuEvents "github.com/ghuser/backoffice/services/menu/domain/events"
	"github.com/ghuser/backoffice/services/menu/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Cancelled on SIGINT/SIGTERM; ends every subscription.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer tel.Shutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if cfg.UseTemporal() {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient

		w := startReassignmentWorker(appConfig)
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", cfg.TemporalTaskQueue)
	}

	<-ctx.Done()
	log.Info("shutting down worker...")

	// EventBus.Close (deferred) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// startReassignmentWorker builds the Temporal worker that runs category
// reassignment workflows against Postgres. Activities publish their events
// in the same transaction as the write they describe.
func startReassignmentWorker(a *app.Application) worker.Worker {
	w := a.TemporalClient.NewWorker()
	menuWorkflows.Register(w, &menuWorkflows.Activities{
		Items:      postgres.NewMenuItemRepository(a.Db, a.EventBus),
		Categories: postgres.NewCategoryRepository(a.Db, a.EventBus),
	})
	return w
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	summary := cache.NewSummaryCache(a.Redis)
	handlers := map[string]events.Handler{
		menuEvents.TopicMenuItemRecategorized: handleItemRecategorized(a, summary),
		menuEvents.TopicCategoryDeleted:       handleCategoryDeleted(a, summary),
	}

	topics := make([]string, 0, len(handlers))
	for topic, handler := range handlers {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}()
		topics = append(topics, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// supported reports whether this build understands msg's payload. Newer
// versions are acked and skipped so a rolling deploy does not wedge the queue.
func supported(ctx context.Context, a *app.Application, msg *message.Message) bool {
	v, err := events.Version(msg)
	if err == nil && v <= menuEvents.SchemaVersion {
		return true
	}
	a.Logger.WarnContext(ctx, "skipping event with unsupported version",
		"message_id", msg.UUID, "version", v, "error", err)
	return false
}

// handleItemRecategorized drops the restaurant's cached category summary.
// Handlers must be idempotent; the bus retries EVENT_MAX_RETRIES times.
func handleItemRecategorized(a *app.Application, summary *cache.SummaryCache) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		if !supported(ctx, a, msg) {
			return nil
		}
		evt, err := events.Decode[menuEvents.MenuItemRecategorizedEvent](msg)
		if err != nil {
			return err
		}
		invalidateSummary(ctx, a, summary, evt.RestaurantID, "item_id", evt.ItemID)
		return nil
	}
}

// handleCategoryDeleted drops the restaurant's cached category summary.
func handleCategoryDeleted(a *app.Application, summary *cache.SummaryCache) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		if !supported(ctx, a, msg) {
			return nil
		}
		evt, err := events.Decode[menuEvents.CategoryDeletedEvent](msg)
		if err != nil {
			return err
		}
		invalidateSummary(ctx, a, summary, evt.RestaurantID, "category_id", evt.CategoryID)
		return nil
	}
}

func invalidateSummary(ctx context.Context, a *app.Application, summary *cache.SummaryCache, restaurantID uuid.UUID, args ...any) {
	ctx = logger.WithRestaurant(ctx, restaurantID.String())
	if err := summary.Invalidate(ctx, restaurantID); err != nil {
		// Invalidation is best-effort; the summary TTL bounds staleness.
		a.Logger.WarnContext(ctx, "category summary invalidation failed", append(args, "error", err)...)
		return
	}
	a.Logger.InfoContext(ctx, "category summary invalidated", args...)
}
