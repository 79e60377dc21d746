package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variation is a sellable version of a MenuItem (size, portion, recipe) with
// its own ordered ingredient list.
type Variation struct {
	ID     uuid.UUID           `json:"id"`
	Name   string              `json:"name"`
	Price  decimal.NullDecimal `json:"price"` // invalid when unset or non-numeric
	Cost   decimal.Decimal     `json:"cost"`
	Usages []IngredientUsage   `json:"usages"`
}

// NewVariation returns an empty variation with a generated ID.
func NewVariation(name string) *Variation {
	return &Variation{ID: uuid.New(), Name: name}
}

// TrackedUsages returns the usages counted toward inventory, in list order.
func (v *Variation) TrackedUsages() []IngredientUsage {
	var out []IngredientUsage
	for _, u := range v.Usages {
		if u.IsTracked() {
			out = append(out, u)
		}
	}
	return out
}
