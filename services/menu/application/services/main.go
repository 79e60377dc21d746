package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/pkg/app"
	"github.com/ghuser/backoffice/pkg/cache"
	"github.com/ghuser/backoffice/services/menu/infrastructure/persistence/postgres"
)

// IngredientCache is the read-through store consulted before the ingredient
// repository. *cache.IngredientCache implements it.
type IngredientCache interface {
	Get(ctx context.Context, restaurantID, ingredientID uuid.UUID) (*cache.CachedIngredient, error)
	Set(ctx context.Context, ing *cache.CachedIngredient) error
}

// SummaryCache stores per-restaurant category counts. *cache.SummaryCache implements it.
// Get reports the generation it read under; Set only lands for readers of
// that generation, so an Invalidate between the two wins.
type SummaryCache interface {
	Get(ctx context.Context, restaurantID uuid.UUID) ([]cache.CachedCategoryCount, int64, error)
	Set(ctx context.Context, restaurantID uuid.UUID, gen int64, rows []cache.CachedCategoryCount) error
	Invalidate(ctx context.Context, restaurantID uuid.UUID) error
}

// SnapshotStore persists exported reports. *snapshots.Store implements it.
type SnapshotStore interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Services is the application-layer service container for the menu bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Composer   *ComposerService
	Stock      *StockService
	Categories *CategoryService
	MenuItems  *MenuItemService
	Guard      *CategoryGuard
}

// New wires all menu application services with infrastructure from the
// Application container. executor runs approved reassignment plans; pass nil
// to run them in-process.
func New(a *app.Application, executor ReassignmentExecutor) *Services {
	ingredients := postgres.NewIngredientRepository(a.Db)
	items := postgres.NewMenuItemRepository(a.Db, a.EventBus)
	categories := postgres.NewCategoryRepository(a.Db, a.EventBus)

	var (
		ingredientCache IngredientCache
		summaryCache    SummaryCache
		locker          Locker
		snapshotStore   SnapshotStore
	)
	if a.Redis != nil {
		ingredientCache = cache.NewIngredientCache(a.Redis)
		summaryCache = cache.NewSummaryCache(a.Redis)
		locker = cache.NewCategoryLock(a.Redis, a.Config.CategoryLockTTL)
	}
	if a.Snapshots != nil {
		snapshotStore = a.Snapshots
	}
	if executor == nil {
		executor = NewInlineExecutor(items, categories)
	}

	return &Services{
		Composer:   NewComposerService(ingredients, items, ingredientCache, a.Logger),
		Stock:      NewStockService(ingredients, items, categories, summaryCache, snapshotStore, a.Logger),
		Categories: NewCategoryService(categories, summaryCache),
		MenuItems:  NewMenuItemService(items, summaryCache),
		Guard:      NewCategoryGuard(items, categories, executor, locker, summaryCache, a.Metrics, a.Logger),
	}
}
