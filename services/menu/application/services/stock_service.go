package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	pkgcache "github.com/ghuser/backoffice/pkg/cache"
	"github.com/ghuser/backoffice/pkg/logger"
	"github.com/ghuser/backoffice/pkg/snapshots"
	"github.com/ghuser/backoffice/services/menu/domain/models"
	"github.com/ghuser/backoffice/services/menu/domain/repositories"
	domainsvcs "github.com/ghuser/backoffice/services/menu/domain/services"
)

// IngredientStock is one classified ingredient.
type IngredientStock struct {
	Ingredient *models.Ingredient
	Severity   models.Severity
}

// VariationStock is the severity of one variation.
type VariationStock struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Severity models.Severity `json:"severity"`
}

// ItemStock is the severity rollup for one menu item.
type ItemStock struct {
	ID                    uuid.UUID        `json:"id"`
	Name                  string           `json:"name"`
	CategoryID            uuid.UUID        `json:"category_id"`
	IsInventoryControlled bool             `json:"is_inventory_controlled"`
	PriceRange            string           `json:"price_range"`
	Severity              models.Severity  `json:"severity"`
	Variations            []VariationStock `json:"variations"`
	// Problem is set instead of a meaningful severity when a tracked usage
	// points at an ingredient that no longer exists.
	Problem string `json:"problem,omitempty"`
}

// StockReport is the full stock picture of a restaurant.
type StockReport struct {
	RestaurantID uuid.UUID                  `json:"restaurant_id"`
	GeneratedAt  time.Time                  `json:"generated_at"`
	Items        []ItemStock                `json:"items"`
	Categories   []domainsvcs.CategoryCount `json:"categories"`
}

// SnapshotInfo describes a stored report.
type SnapshotInfo struct {
	Key         string
	GeneratedAt time.Time
	Items       int
}

// StockService answers stock severity questions over the live inventory.
type StockService struct {
	ingredients repositories.IngredientRepository
	items       repositories.MenuItemRepository
	categories  repositories.CategoryRepository
	summary     SummaryCache
	snapshots   SnapshotStore
	log         logger.Logger
	now         func() time.Time
}

// NewStockService returns a StockService. summary and snapshots may be nil.
func NewStockService(
	ingredients repositories.IngredientRepository,
	items repositories.MenuItemRepository,
	categories repositories.CategoryRepository,
	summary SummaryCache,
	snapshots SnapshotStore,
	log logger.Logger,
) *StockService {
	return &StockService{
		ingredients: ingredients,
		items:       items,
		categories:  categories,
		summary:     summary,
		snapshots:   snapshots,
		log:         log,
		now:         time.Now,
	}
}

// IngredientStock classifies one ingredient.
func (s *StockService) IngredientStock(ctx context.Context, restaurantID, ingredientID uuid.UUID) (*IngredientStock, error) {
	ing, err := s.ingredients.GetByID(ctx, restaurantID, ingredientID)
	if err != nil {
		return nil, err
	}
	return &IngredientStock{Ingredient: ing, Severity: domainsvcs.ClassifyIngredient(ing)}, nil
}

// ItemStock rolls severity up for one item. A dangling ingredient reference
// fails with ErrUnknownIngredient.
func (s *StockService) ItemStock(ctx context.Context, restaurantID, itemID uuid.UUID) (*ItemStock, error) {
	var (
		item *models.MenuItem
		inv  models.Inventory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		item, err = s.items.GetByID(gctx, restaurantID, itemID)
		return err
	})
	g.Go(func() error {
		ings, err := s.ingredients.ListByRestaurant(gctx, restaurantID)
		if err != nil {
			return fmt.Errorf("list ingredients: %w", err)
		}
		inv = models.NewInventory(ings)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stock, err := itemStock(inv, item)
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// Report computes every item's severity and the category counts. Items with a
// dangling reference are reported with Problem set rather than failing the report.
func (s *StockService) Report(ctx context.Context, restaurantID uuid.UUID) (*StockReport, error) {
	var (
		ings       []*models.Ingredient
		items      []*models.MenuItem
		categories []*models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if ings, err = s.ingredients.ListByRestaurant(gctx, restaurantID); err != nil {
			return fmt.Errorf("list ingredients: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if items, err = s.items.ListByRestaurant(gctx, restaurantID); err != nil {
			return fmt.Errorf("list menu items: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if categories, err = s.categories.ListByRestaurant(gctx, restaurantID); err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inv := models.NewInventory(ings)
	report := &StockReport{
		RestaurantID: restaurantID,
		GeneratedAt:  s.now().UTC(),
		Items:        make([]ItemStock, 0, len(items)),
		Categories:   domainsvcs.CategoryCounts(items, categories),
	}
	for _, item := range items {
		stock, err := itemStock(inv, item)
		if err != nil {
			stock = ItemStock{
				ID:                    item.ID,
				Name:                  item.Name,
				CategoryID:            item.CategoryID,
				IsInventoryControlled: item.IsInventoryControlled,
				PriceRange:            domainsvcs.PriceRange(item.Variations),
				Problem:               err.Error(),
			}
		}
		report.Items = append(report.Items, stock)
	}
	return report, nil
}

// CategorySummary returns item counts per category, served from Redis when cached.
func (s *StockService) CategorySummary(ctx context.Context, restaurantID uuid.UUID) ([]domainsvcs.CategoryCount, error) {
	var (
		gen  int64
		warm bool
	)
	if s.summary != nil {
		rows, cachedGen, err := s.summary.Get(ctx, restaurantID)
		if err == nil {
			out := make([]domainsvcs.CategoryCount, len(rows))
			for i, r := range rows {
				out[i] = domainsvcs.CategoryCount{Name: r.Name, Count: r.Count}
			}
			return out, nil
		}
		if errors.Is(err, redis.Nil) {
			gen, warm = cachedGen, true
		} else {
			s.log.WarnContext(ctx, "category summary cache read failed", "error", err)
		}
	}

	var (
		items      []*models.MenuItem
		categories []*models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if items, err = s.items.ListByRestaurant(gctx, restaurantID); err != nil {
			return fmt.Errorf("list menu items: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if categories, err = s.categories.ListByRestaurant(gctx, restaurantID); err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := domainsvcs.CategoryCounts(items, categories)
	if warm {
		rows := make([]pkgcache.CachedCategoryCount, len(counts))
		for i, c := range counts {
			rows[i] = pkgcache.CachedCategoryCount{Name: c.Name, Count: c.Count}
		}
		if err := s.summary.Set(context.WithoutCancel(ctx), restaurantID, gen, rows); err != nil {
			s.log.WarnContext(ctx, "category summary cache warm failed", "error", err)
		}
	}
	return counts, nil
}

// ExportSnapshot stores the current report as JSON in the snapshot bucket.
// Returns snapshots.ErrDisabled when no store is configured.
func (s *StockService) ExportSnapshot(ctx context.Context, restaurantID uuid.UUID) (*SnapshotInfo, error) {
	if s.snapshots == nil {
		return nil, snapshots.ErrDisabled
	}
	report, err := s.Report(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal stock report: %w", err)
	}

	key := snapshots.StockReportKey(restaurantID, report.GeneratedAt)
	if err := s.snapshots.Put(ctx, key, body); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "stock snapshot exported",
		"restaurant_id", restaurantID, "key", key, "items", len(report.Items))
	return &SnapshotInfo{Key: key, GeneratedAt: report.GeneratedAt, Items: len(report.Items)}, nil
}

func itemStock(inv models.Inventory, item *models.MenuItem) (ItemStock, error) {
	stock := ItemStock{
		ID:                    item.ID,
		Name:                  item.Name,
		CategoryID:            item.CategoryID,
		IsInventoryControlled: item.IsInventoryControlled,
		PriceRange:            domainsvcs.PriceRange(item.Variations),
		Variations:            make([]VariationStock, len(item.Variations)),
	}
	for i := range item.Variations {
		v := &item.Variations[i]
		sev, err := domainsvcs.VariationSeverity(inv, v)
		if err != nil {
			return ItemStock{}, fmt.Errorf("variation %s: %w", v.ID, err)
		}
		stock.Variations[i] = VariationStock{ID: v.ID, Name: v.Name, Severity: sev}
		stock.Severity = models.Worst(stock.Severity, sev)
	}
	return stock, nil
}
