package app

import (
	"github.com/ghuser/backoffice/pkg/cache"
	"github.com/ghuser/backoffice/pkg/config"
	"github.com/ghuser/backoffice/pkg/database"
	"github.com/ghuser/backoffice/pkg/events"
	"github.com/ghuser/backoffice/pkg/logger"
	"github.com/ghuser/backoffice/pkg/snapshots"
	"github.com/ghuser/backoffice/pkg/telemetry"
	"github.com/ghuser/backoffice/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route functions during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, request_id and restaurant_id are injected
// automatically:
//
//	app.Logger.InfoContext(ctx, "category deleted", "category_id", id)
//	app.Logger.ErrorContext(ctx, "transfer failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	Snapshots      *snapshots.Store          // nil when object storage is unavailable
	TemporalClient *workflows.TemporalClient // nil unless CATEGORY_GUARD_EXECUTOR=temporal
	Metrics        *telemetry.MenuMetrics
}
