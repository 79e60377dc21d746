package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
)

// UsageMode tags an IngredientUsage as a free-form entry or a tracked inventory binding.
type UsageMode string

const (
	UsageModeCustom  UsageMode = "custom"
	UsageModeTracked UsageMode = "tracked"
)

// ParseUsageMode validates a wire mode name.
func ParseUsageMode(s string) (UsageMode, error) {
	switch UsageMode(s) {
	case UsageModeCustom, UsageModeTracked:
		return UsageMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", menudomain.ErrInvalidMode, s)
	}
}

// IngredientUsage is one ingredient line of a Variation.
//
// The mode tag is the presence of an ingredient reference: a usage is Tracked
// exactly when ingredientID is set. Fields are unexported so the only way to
// change the tag is through SwitchToCustom, SwitchToTracked and
// ClearTrackedSelection. The zero value is an empty Custom usage.
type IngredientUsage struct {
	ingredientID         uuid.UUID
	name                 string
	unit                 string
	quantityUsed         decimal.Decimal
	quantityOriginalText string
}

// NewCustomUsage builds a free-form usage.
func NewCustomUsage(name, unit string, quantityUsed decimal.Decimal, originalText string) (IngredientUsage, error) {
	if quantityUsed.IsNegative() {
		return IngredientUsage{}, menudomain.ErrInvalidQuantity
	}
	return IngredientUsage{
		name:                 name,
		unit:                 unit,
		quantityUsed:         quantityUsed,
		quantityOriginalText: originalText,
	}, nil
}

// NewTrackedUsage builds a usage bound to ing, copying its name and unit.
func NewTrackedUsage(ing *Ingredient, quantityUsed decimal.Decimal) (IngredientUsage, error) {
	if quantityUsed.IsNegative() {
		return IngredientUsage{}, menudomain.ErrInvalidQuantity
	}
	var u IngredientUsage
	u.quantityUsed = quantityUsed
	if err := u.SwitchToTracked(ing); err != nil {
		return IngredientUsage{}, err
	}
	return u, nil
}

// Mode reports the usage tag.
func (u IngredientUsage) Mode() UsageMode {
	if u.ingredientID != uuid.Nil {
		return UsageModeTracked
	}
	return UsageModeCustom
}

// IsTracked reports whether the usage counts toward inventory aggregation.
// It is derived from the mode and has no independent setter.
func (u IngredientUsage) IsTracked() bool {
	return u.ingredientID != uuid.Nil
}

// IngredientID returns the bound ingredient; ok is false for Custom usages.
func (u IngredientUsage) IngredientID() (id uuid.UUID, ok bool) {
	return u.ingredientID, u.ingredientID != uuid.Nil
}

func (u IngredientUsage) Name() string { return u.name }
func (u IngredientUsage) Unit() string { return u.unit }
func (u IngredientUsage) QuantityUsed() decimal.Decimal { return u.quantityUsed }
func (u IngredientUsage) QuantityOriginalText() string { return u.quantityOriginalText }

// SwitchToCustom unbinds the usage. Name and unit copied from a previously
// bound ingredient are kept and become free text. Always succeeds.
func (u *IngredientUsage) SwitchToCustom() {
	u.ingredientID = uuid.Nil
}

// SwitchToTracked binds the usage to ing, overwriting name and unit with the
// ingredient's. A nil ingredient is an unresolved reference and leaves the
// usage untouched.
func (u *IngredientUsage) SwitchToTracked(ing *Ingredient) error {
	if ing == nil || ing.ID == uuid.Nil {
		return menudomain.ErrUnknownIngredient
	}
	u.ingredientID = ing.ID
	u.name = ing.Name
	u.unit = ing.Unit
	u.quantityOriginalText = ""
	return nil
}

// ClearTrackedSelection drops the ingredient binding and its copied name and
// unit, leaving an empty untracked usage. No-op for Custom usages.
func (u *IngredientUsage) ClearTrackedSelection() {
	if !u.IsTracked() {
		return
	}
	u.ingredientID = uuid.Nil
	u.name = ""
	u.unit = ""
}

// SetName edits a Custom usage's name.
func (u *IngredientUsage) SetName(name string) error {
	if u.IsTracked() {
		return menudomain.ErrTrackedFieldReadOnly
	}
	u.name = name
	return nil
}

// SetUnit edits a Custom usage's unit.
func (u *IngredientUsage) SetUnit(unit string) error {
	if u.IsTracked() {
		return menudomain.ErrTrackedFieldReadOnly
	}
	u.unit = unit
	return nil
}

// SetQuantityOriginalText edits the free-form amount of a Custom usage.
func (u *IngredientUsage) SetQuantityOriginalText(text string) error {
	if u.IsTracked() {
		return menudomain.ErrTrackedFieldReadOnly
	}
	u.quantityOriginalText = text
	return nil
}

// SetQuantityUsed sets the numeric amount for either mode.
func (u *IngredientUsage) SetQuantityUsed(q decimal.Decimal) error {
	if q.IsNegative() {
		return menudomain.ErrInvalidQuantity
	}
	u.quantityUsed = q
	return nil
}

type usageJSON struct {
	Mode                 UsageMode       `json:"mode"`
	IngredientID         *uuid.UUID      `json:"ingredient_id,omitempty"`
	Name                 string          `json:"name"`
	Unit                 string          `json:"unit"`
	QuantityUsed         decimal.Decimal `json:"quantity_used"`
	QuantityOriginalText string          `json:"quantity_original_text,omitempty"`
}

// MarshalJSON encodes the usage with an explicit mode tag.
func (u IngredientUsage) MarshalJSON() ([]byte, error) {
	w := usageJSON{
		Mode:                 u.Mode(),
		Name:                 u.name,
		Unit:                 u.unit,
		QuantityUsed:         u.quantityUsed,
		QuantityOriginalText: u.quantityOriginalText,
	}
	if id, ok := u.IngredientID(); ok {
		w.IngredientID = &id
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a stored usage. A tracked tag without a reference, or
// a custom tag with one, is rejected. Stored tracked name and unit are kept as
// the snapshot taken at save time.
func (u *IngredientUsage) UnmarshalJSON(b []byte) error {
	var w usageJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	mode, err := ParseUsageMode(string(w.Mode))
	if err != nil {
		return err
	}
	hasRef := w.IngredientID != nil && *w.IngredientID != uuid.Nil
	if (mode == UsageModeTracked) != hasRef {
		return menudomain.ErrInvalidIngredientUsage
	}
	if w.QuantityUsed.IsNegative() {
		return menudomain.ErrInvalidQuantity
	}
	*u = IngredientUsage{
		name:         w.Name,
		unit:         w.Unit,
		quantityUsed: w.QuantityUsed,
	}
	if hasRef {
		u.ingredientID = *w.IngredientID
	} else {
		u.quantityOriginalText = w.QuantityOriginalText
	}
	return nil
}
