package models

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
)

// Ingredient is a tracked inventory record. It is owned by the inventory
// store and read-only to menu composition.
type Ingredient struct {
	ID             uuid.UUID
	RestaurantID   uuid.UUID
	Name           string
	Unit           string
	QuantityOnHand decimal.Decimal // >= 0
	Threshold      decimal.Decimal // >= 0
}

// Inventory is an in-memory snapshot of a restaurant's ingredients keyed by ID.
type Inventory map[uuid.UUID]*Ingredient

// NewInventory indexes the given ingredients by ID.
func NewInventory(ingredients []*Ingredient) Inventory {
	inv := make(Inventory, len(ingredients))
	for _, ing := range ingredients {
		inv[ing.ID] = ing
	}
	return inv
}

// Lookup resolves id against the snapshot. Returns ErrIngredientNotFound on a miss.
func (inv Inventory) Lookup(_ context.Context, id uuid.UUID) (*Ingredient, error) {
	ing, ok := inv[id]
	if !ok {
		return nil, menudomain.ErrIngredientNotFound
	}
	return ing, nil
}
