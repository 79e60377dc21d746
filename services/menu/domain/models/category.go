package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
)

const maxCategoryNameLength = 100

// CategoryName is a value object for a trimmed, non-empty category name.
type CategoryName string

// NewCategoryName trims s and enforces 1 <= len <= 100.
func NewCategoryName(s string) (CategoryName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", menudomain.ErrInvalidCategoryName
	}
	if len(s) > maxCategoryNameLength {
		return "", fmt.Errorf("%w: must not exceed %d characters", menudomain.ErrValidation, maxCategoryNameLength)
	}
	return CategoryName(s), nil
}

// String returns the underlying string value.
func (n CategoryName) String() string {
	return string(n)
}

// Category groups menu items. Names are unique per restaurant.
type Category struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         CategoryName
	CreatedAt    time.Time
}

// NewCategory constructs a Category with a generated ID.
func NewCategory(restaurantID uuid.UUID, name CategoryName) *Category {
	return &Category{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
}
