package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/backoffice/pkg/cache"
	"github.com/ghuser/backoffice/pkg/logger"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
	"github.com/ghuser/backoffice/services/menu/domain/repositories"
	domainsvcs "github.com/ghuser/backoffice/services/menu/domain/services"
)

// UsageDraft is one ingredient line as edited by the user. Mode may be left
// empty, in which case it follows IngredientID.
type UsageDraft struct {
	Mode                 string
	IngredientID         string
	Name                 string
	Unit                 string
	QuantityUsed         string
	QuantityOriginalText string
}

// VariationDraft is an unsaved variation. A blank or non-numeric Price is kept
// as "no price"; a blank Cost is zero.
type VariationDraft struct {
	ID     uuid.UUID
	Name   string
	Price  string
	Cost   string
	Usages []UsageDraft
}

// UsageLine is one rendered ingredient line of a preview.
type UsageLine struct {
	Usage    models.IngredientUsage
	Display  string
	Severity *models.Severity // nil for custom usages
}

// VariationPreview is the derived state of a composed draft.
type VariationPreview struct {
	Variation  *models.Variation
	Lines      []UsageLine
	PriceRange string
	Severity   models.Severity
	// Problem is the validation message that would block a save, or "".
	Problem string
}

// ComposerService turns drafts into variations through the VariationComposer,
// resolving ingredient references via a read-through cache.
type ComposerService struct {
	ingredients repositories.IngredientRepository
	items       repositories.MenuItemRepository
	cache       IngredientCache
	log         logger.Logger
}

// NewComposerService returns a ComposerService. cache may be nil.
func NewComposerService(
	ingredients repositories.IngredientRepository,
	items repositories.MenuItemRepository,
	cache IngredientCache,
	log logger.Logger,
) *ComposerService {
	return &ComposerService{ingredients: ingredients, items: items, cache: cache, log: log}
}

// Preview composes draft and reports display strings, price range, severity
// and any validation problem. Reference and quantity errors fail the call.
func (s *ComposerService) Preview(ctx context.Context, restaurantID uuid.UUID, draft VariationDraft) (*VariationPreview, error) {
	lookup := s.lookup(restaurantID)
	composer, err := s.compose(ctx, lookup, draft)
	if err != nil {
		return nil, err
	}
	v := composer.Variation()

	preview := &VariationPreview{
		Variation:  v,
		Lines:      make([]UsageLine, len(v.Usages)),
		PriceRange: domainsvcs.PriceRange([]models.Variation{*v}),
	}
	for i, u := range v.Usages {
		preview.Lines[i] = UsageLine{Usage: u, Display: domainsvcs.FormatQuantityDisplay(u)}
		sev, tracked, err := domainsvcs.IngredientSeverity(lookup.seen, u)
		if err != nil {
			return nil, fmt.Errorf("usage %d: %w", i+1, err)
		}
		if tracked {
			preview.Lines[i].Severity = &sev
		}
	}
	if preview.Severity, err = domainsvcs.VariationSeverity(lookup.seen, v); err != nil {
		return nil, err
	}
	if err := composer.Validate(); err != nil {
		preview.Problem = err.Error()
	}
	return preview, nil
}

// SaveVariations composes and validates every draft and replaces the item's
// variations. Nothing is written unless all drafts are valid.
func (s *ComposerService) SaveVariations(ctx context.Context, restaurantID, itemID uuid.UUID, drafts []VariationDraft) (*models.MenuItem, error) {
	item, err := s.items.GetByID(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	lookup := s.lookup(restaurantID)
	variations := make([]models.Variation, 0, len(drafts))
	for i, d := range drafts {
		composer, err := s.compose(ctx, lookup, d)
		if err != nil {
			return nil, fmt.Errorf("variation %d: %w", i+1, err)
		}
		if err := composer.Validate(); err != nil {
			return nil, fmt.Errorf("variation %d: %w", i+1, err)
		}
		variations = append(variations, *composer.Variation())
	}

	item.Variations = variations
	if err := s.items.UpdateVariations(ctx, item); err != nil {
		return nil, fmt.Errorf("save variations: %w", err)
	}
	s.log.InfoContext(ctx, "variations saved",
		"restaurant_id", restaurantID, "item_id", itemID, "variations", len(variations))
	return item, nil
}

// compose replays draft through a VariationComposer in field order.
func (s *ComposerService) compose(ctx context.Context, lookup domainsvcs.IngredientLookup, draft VariationDraft) (*domainsvcs.VariationComposer, error) {
	v := &models.Variation{ID: draft.ID, Name: draft.Name}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if price, err := decimal.NewFromString(strings.TrimSpace(draft.Price)); err == nil {
		v.Price = decimal.NewNullDecimal(price)
	}
	if c := strings.TrimSpace(draft.Cost); c != "" {
		cost, err := decimal.NewFromString(c)
		if err != nil {
			return nil, fmt.Errorf("%w: cost must be a number", menudomain.ErrValidation)
		}
		v.Cost = cost
	}

	composer := domainsvcs.NewVariationComposer(v, lookup)
	for _, u := range draft.Usages {
		i := composer.AddUsage()
		if err := applyUsage(ctx, composer, i, u); err != nil {
			return nil, fmt.Errorf("usage %d: %w", i+1, err)
		}
	}
	return composer, nil
}

func applyUsage(ctx context.Context, c *domainsvcs.VariationComposer, i int, u UsageDraft) error {
	mode := models.UsageModeCustom
	if u.IngredientID != "" {
		mode = models.UsageModeTracked
	}
	if u.Mode != "" {
		parsed, err := models.ParseUsageMode(u.Mode)
		if err != nil {
			return err
		}
		if parsed == models.UsageModeCustom && u.IngredientID != "" {
			return menudomain.ErrInvalidIngredientUsage
		}
		mode = parsed
	}

	set := func(field domainsvcs.UsageField, value string) error {
		return c.UpdateUsage(ctx, i, field, value)
	}
	if mode == models.UsageModeTracked {
		if u.IngredientID == "" {
			return set(domainsvcs.FieldMode, string(models.UsageModeTracked))
		}
		if err := set(domainsvcs.FieldIngredientRef, u.IngredientID); err != nil {
			return err
		}
	} else {
		for _, f := range []struct {
			field domainsvcs.UsageField
			value string
		}{
			{domainsvcs.FieldName, u.Name},
			{domainsvcs.FieldUnit, u.Unit},
			{domainsvcs.FieldQuantityOriginalText, u.QuantityOriginalText},
		} {
			if err := set(f.field, f.value); err != nil {
				return err
			}
		}
	}
	return set(domainsvcs.FieldQuantityUsed, u.QuantityUsed)
}

// lookup returns an ingredient resolver scoped to one restaurant that
// remembers every ingredient it resolved.
func (s *ComposerService) lookup(restaurantID uuid.UUID) *ingredientLookup {
	return &ingredientLookup{svc: s, restaurantID: restaurantID, seen: models.Inventory{}}
}

type ingredientLookup struct {
	svc          *ComposerService
	restaurantID uuid.UUID
	seen         models.Inventory
}

// Lookup serves from Redis first. On a miss or cache error it reads Postgres
// and warms the cache best-effort.
func (l *ingredientLookup) Lookup(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	if ing, ok := l.seen[id]; ok {
		return ing, nil
	}
	s := l.svc

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, l.restaurantID, id)
		if err == nil {
			ing := &models.Ingredient{
				ID:             cached.ID,
				RestaurantID:   cached.RestaurantID,
				Name:           cached.Name,
				Unit:           cached.Unit,
				QuantityOnHand: cached.QuantityOnHand,
				Threshold:      cached.Threshold,
			}
			l.seen[id] = ing
			return ing, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "ingredient cache read failed", "ingredient_id", id, "error", err)
		}
	}

	ing, err := s.ingredients.GetByID(ctx, l.restaurantID, id)
	if err != nil {
		return nil, err
	}
	l.seen[id] = ing

	if s.cache != nil {
		if err := s.cache.Set(context.WithoutCancel(ctx), &pkgcache.CachedIngredient{
			ID:             ing.ID,
			RestaurantID:   ing.RestaurantID,
			Name:           ing.Name,
			Unit:           ing.Unit,
			QuantityOnHand: ing.QuantityOnHand,
			Threshold:      ing.Threshold,
		}); err != nil {
			s.log.WarnContext(ctx, "ingredient cache warm failed", "ingredient_id", id, "error", err)
		}
	}
	return ing, nil
}
