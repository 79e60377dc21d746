package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// IngredientRepository reads inventory records. Menu composition never
// writes ingredients.
type IngredientRepository interface {
	// GetByID returns ErrIngredientNotFound when no ingredient matches.
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Ingredient, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Ingredient, error)
}

// MenuItemRepository is the persistence interface for the MenuItem aggregate.
// The domain layer owns this interface; infrastructure implements it.
type MenuItemRepository interface {
	// ListByRestaurant returns every item of the restaurant ordered by name, then ID.
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error)

	// GetByID returns ErrMenuItemNotFound when no item matches.
	GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error)

	// UpdateCategory repoints one item at categoryID and publishes a
	// MenuItemRecategorizedEvent in the same transaction.
	UpdateCategory(ctx context.Context, restaurantID, itemID, categoryID uuid.UUID) error

	// UpdateVariations replaces the item's variation list.
	UpdateVariations(ctx context.Context, item *models.MenuItem) error

	// Delete returns ErrMenuItemNotFound when no item matches.
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

// CategoryRepository is the persistence interface for categories.
type CategoryRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Category, error)

	// Save inserts a new category. Returns ErrCategoryAlreadyExists on a
	// duplicate name within the restaurant.
	Save(ctx context.Context, c *models.Category) error

	// Delete removes a category and publishes a CategoryDeletedEvent. Returns
	// ErrCategoryNotFound when absent and ErrCategoryInUse while items still
	// reference it.
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}
