package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// IngredientLookup resolves an ingredient reference. Implementations return
// menudomain.ErrIngredientNotFound on a miss; any other error is treated as
// an opaque collaborator failure.
type IngredientLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
}

// IngredientLookupFunc adapts a function to IngredientLookup.
type IngredientLookupFunc func(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)

// Lookup calls f(ctx, id).
func (f IngredientLookupFunc) Lookup(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	return f(ctx, id)
}

// UsageField names an editable IngredientUsage field.
type UsageField string

const (
	FieldMode                 UsageField = "mode"
	FieldIngredientRef        UsageField = "ingredient_ref"
	FieldName                 UsageField = "name"
	FieldUnit                 UsageField = "unit"
	FieldQuantityUsed         UsageField = "quantity_used"
	FieldQuantityOriginalText UsageField = "quantity_original_text"
)

// VariationComposer edits one Variation's usage list during an editing
// session. It owns the working copy; nothing is persisted until the caller
// saves the Variation it returns.
type VariationComposer struct {
	variation   *models.Variation
	ingredients IngredientLookup
}

// NewVariationComposer starts an editing session over v.
func NewVariationComposer(v *models.Variation, ingredients IngredientLookup) *VariationComposer {
	return &VariationComposer{variation: v, ingredients: ingredients}
}

// Variation returns the working copy.
func (c *VariationComposer) Variation() *models.Variation {
	return c.variation
}

// AddUsage appends an empty Custom usage and returns its index.
func (c *VariationComposer) AddUsage() int {
	c.variation.Usages = append(c.variation.Usages, models.IngredientUsage{})
	return len(c.variation.Usages) - 1
}

// RemoveUsage deletes the usage at i, preserving the order of the rest.
func (c *VariationComposer) RemoveUsage(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.variation.Usages = append(c.variation.Usages[:i], c.variation.Usages[i+1:]...)
	return nil
}

// UpdateUsage sets one field of the usage at i from its form value.
//
// FieldMode and FieldIngredientRef go through the usage's binding
// transitions; an empty ingredient reference clears the selection. The other
// fields are set directly. On error the usage is left unchanged.
func (c *VariationComposer) UpdateUsage(ctx context.Context, i int, field UsageField, value string) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	u := &c.variation.Usages[i]

	switch field {
	case FieldMode:
		mode, err := models.ParseUsageMode(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		if mode == models.UsageModeCustom {
			u.SwitchToCustom()
			return nil
		}
		if !u.IsTracked() {
			return menudomain.ErrIngredientRefRequired
		}
		return nil

	case FieldIngredientRef:
		value = strings.TrimSpace(value)
		if value == "" {
			u.ClearTrackedSelection()
			return nil
		}
		ing, err := c.resolve(ctx, value)
		if err != nil {
			return err
		}
		return u.SwitchToTracked(ing)

	case FieldName:
		return u.SetName(value)

	case FieldUnit:
		return u.SetUnit(value)

	case FieldQuantityUsed:
		q, err := ParseQuantity(value)
		if err != nil {
			return err
		}
		return u.SetQuantityUsed(q)

	case FieldQuantityOriginalText:
		return u.SetQuantityOriginalText(value)

	default:
		return fmt.Errorf("%w: %q", menudomain.ErrUnknownUsageField, field)
	}
}

// Validate checks the variation is ready to save.
func (c *VariationComposer) Validate() error {
	return ValidateVariation(c.variation)
}

func (c *VariationComposer) resolve(ctx context.Context, ref string) (*models.Ingredient, error) {
	id, err := uuid.Parse(ref)
	if err != nil || id == uuid.Nil {
		return nil, fmt.Errorf("%w: %q", menudomain.ErrUnknownIngredient, ref)
	}
	ing, err := c.ingredients.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, menudomain.ErrIngredientNotFound) {
			return nil, fmt.Errorf("%w: %s", menudomain.ErrUnknownIngredient, id)
		}
		return nil, fmt.Errorf("lookup ingredient %s: %w", id, err)
	}
	if ing == nil {
		return nil, fmt.Errorf("%w: %s", menudomain.ErrUnknownIngredient, id)
	}
	return ing, nil
}

func (c *VariationComposer) checkIndex(i int) error {
	if i < 0 || i >= len(c.variation.Usages) {
		return fmt.Errorf("%w: %d (have %d)", menudomain.ErrIndexOutOfRange, i, len(c.variation.Usages))
	}
	return nil
}

// ValidateVariation enforces save-time rules in order: a non-blank name, at
// least one usage, then non-negative price and cost. Usage-level invariants
// are enforced when the usage is edited, not here.
func ValidateVariation(v *models.Variation) error {
	if v == nil || strings.TrimSpace(v.Name) == "" {
		return menudomain.ErrNameRequired
	}
	if len(v.Usages) == 0 {
		return menudomain.ErrIngredientsRequired
	}
	if v.Cost.IsNegative() || (v.Price.Valid && v.Price.Decimal.IsNegative()) {
		return menudomain.ErrNegativeAmount
	}
	return nil
}

// ParseQuantity parses a form quantity. Blank means zero.
func ParseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	q, err := decimal.NewFromString(s)
	if err != nil || q.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", menudomain.ErrInvalidQuantity, s)
	}
	return q, nil
}
