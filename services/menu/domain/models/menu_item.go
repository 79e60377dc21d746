package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is the aggregate root of menu composition.
type MenuItem struct {
	ID                    uuid.UUID
	RestaurantID          uuid.UUID // tenant scope, always filter by this in queries
	Name                  string
	CategoryID            uuid.UUID // uuid.Nil when uncategorized
	Variations            []Variation
	IsInventoryControlled bool
	UpdatedAt             time.Time
}

// InCategory reports whether the item references categoryID.
func (m *MenuItem) InCategory(categoryID uuid.UUID) bool {
	return categoryID != uuid.Nil && m.CategoryID == categoryID
}
