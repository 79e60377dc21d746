package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/ghuser/backoffice/docs/swagger"
	"github.com/ghuser/backoffice/pkg/app"
	"github.com/ghuser/backoffice/pkg/cache"
	"github.com/ghuser/backoffice/pkg/config"
	"github.com/ghuser/backoffice/pkg/database"
	"github.com/ghuser/backoffice/pkg/events"
	"github.com/ghuser/backoffice/pkg/httpx"
	"github.com/ghuser/backoffice/pkg/logger"
	"github.com/ghuser/backoffice/pkg/snapshots"
	"github.com/ghuser/backoffice/pkg/telemetry"
	"github.com/ghuser/backoffice/pkg/workflows"
	menuApi "github.com/ghuser/backoffice/services/menu/application/api"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
	menuWorkflows "github.com/ghuser/backoffice/services/menu/application/workflows"
)

const shutdownTimeout = 30 * time.Second

// @title					Backoffice Menu API
// @version				1.0
// @description			Inventory-aware menu composition: stock levels, variation editing and guarded category deletion.
// @termsOfService			http://swagger.io/terms/
// @contact.name			API Support
// @contact.email			support@backoffice.example.com
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
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

	// Cancelled on SIGINT/SIGTERM; stops the outbox forwarder and the server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer tel.Shutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
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

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	// Snapshot export is optional; the endpoint answers 503 without a bucket.
	snapshotStore, err := snapshots.NewStore(ctx, cfg)
	if err != nil {
		log.Warn("snapshot storage unavailable, continuing without stock exports", "error", err)
		snapshotStore = nil
	} else {
		log.Info("snapshot storage ready", "bucket", snapshotStore.Bucket())
	}

	appConfig := &app.Application{
		Config:    cfg,
		Db:        pool,
		Logger:    log,
		EventBus:  eventBus,
		Redis:     redisClient,
		Snapshots: snapshotStore,
		Metrics:   tel.Menu,
	}

	var executor appsvcs.ReassignmentExecutor
	if cfg.UseTemporal() {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient
		executor = menuWorkflows.NewExecutor(temporalClient.Client, temporalClient.TaskQueue)
		log.Info("category reassignment runs on temporal", "task_queue", cfg.TemporalTaskQueue)
	}

	serverCfg := httpx.ServerConfig{
		Addr:               cfg.HTTPAddr,
		IsDevelopment:      cfg.Environment == config.EnvDevelopment,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout:     cfg.HTTPRequestTimeout,
		RateLimit:          cfg.HTTPRateLimit,
	}
	r := httpx.NewRouter(serverCfg,
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
		logger.Middleware(log),
	)

	checks := httpx.HealthChecks{
		Database: pool,
		Redis:    redisClient,
		EventBus: eventBus,
	}
	if snapshotStore != nil {
		checks.Snapshots = snapshotStore
	}
	if appConfig.TemporalClient != nil {
		checks.Temporal = appConfig.TemporalClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Handle("/metrics", tel.MetricsHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig, executor)
	})

	srv := httpx.NewServer(serverCfg, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application, executor appsvcs.ReassignmentExecutor) {
	menuApi.MenuRoutes(r, a, executor)
}
