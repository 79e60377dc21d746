// Package menutest provides in-memory menu collaborators for tests. The store
// records every write in call order and can be told to fail specific writes.
package menutest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// Store holds ingredients, menu items and categories for every restaurant.
type Store struct {
	mu          sync.Mutex
	ingredients []*models.Ingredient
	items       []*models.MenuItem
	categories  []*models.Category
	calls       []string

	// UpdateCategoryErr fails UpdateCategory for the given item IDs.
	UpdateCategoryErr map[uuid.UUID]error
	// DeleteCategoryErr fails every category delete when set.
	DeleteCategoryErr error
	// ListItemsErr fails ListByRestaurant on the item repository when set.
	ListItemsErr error
	// IngredientReads counts GetByID calls on the ingredient repository.
	IngredientReads int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{UpdateCategoryErr: map[uuid.UUID]error{}}
}

// AddIngredient stores ing and returns it.
func (s *Store) AddIngredient(ing *models.Ingredient) *models.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients = append(s.ingredients, ing)
	return ing
}

// AddItem stores item and returns it. Items are listed in insertion order.
func (s *Store) AddItem(item *models.MenuItem) *models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return item
}

// AddCategory stores c and returns it.
func (s *Store) AddCategory(c *models.Category) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
	return c
}

// Calls returns the recorded writes in order, e.g. "transfer <item> -> <category>".
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Item returns a copy of the stored item, or nil.
func (s *Store) Item(id uuid.UUID) *models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			cp := *it
			return &cp
		}
	}
	return nil
}

// HasCategory reports whether the category is still stored.
func (s *Store) HasCategory(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.categories, func(c *models.Category) bool { return c.ID == id })
}

// Ingredients returns the store as a repositories.IngredientRepository.
func (s *Store) Ingredients() *IngredientRepo { return &IngredientRepo{s: s} }

// MenuItems returns the store as a repositories.MenuItemRepository.
func (s *Store) MenuItems() *MenuItemRepo { return &MenuItemRepo{s: s} }

// Categories returns the store as a repositories.CategoryRepository.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// IngredientRepo is the ingredient view of a Store.
type IngredientRepo struct{ s *Store }

func (r *IngredientRepo) GetByID(_ context.Context, restaurantID, id uuid.UUID) (*models.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.IngredientReads++
	for _, ing := range r.s.ingredients {
		if ing.RestaurantID == restaurantID && ing.ID == id {
			cp := *ing
			return &cp, nil
		}
	}
	return nil, menudomain.ErrIngredientNotFound
}

func (r *IngredientRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]*models.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Ingredient
	for _, ing := range r.s.ingredients {
		if ing.RestaurantID == restaurantID {
			cp := *ing
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MenuItemRepo is the menu item view of a Store.
type MenuItemRepo struct{ s *Store }

func (r *MenuItemRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ListItemsErr != nil {
		return nil, r.s.ListItemsErr
	}
	var out []*models.MenuItem
	for _, it := range r.s.items {
		if it.RestaurantID == restaurantID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MenuItemRepo) GetByID(_ context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.RestaurantID == restaurantID && it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, menudomain.ErrMenuItemNotFound
}

func (r *MenuItemRepo) UpdateCategory(_ context.Context, restaurantID, itemID, categoryID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.calls = append(r.s.calls, fmt.Sprintf("transfer %s -> %s", itemID, categoryID))
	if err := r.s.UpdateCategoryErr[itemID]; err != nil {
		return err
	}
	if !slices.ContainsFunc(r.s.categories, func(c *models.Category) bool {
		return c.RestaurantID == restaurantID && c.ID == categoryID
	}) {
		return menudomain.ErrCategoryNotFound
	}
	for _, it := range r.s.items {
		if it.RestaurantID == restaurantID && it.ID == itemID {
			it.CategoryID = categoryID
			return nil
		}
	}
	return menudomain.ErrMenuItemNotFound
}

func (r *MenuItemRepo) UpdateVariations(_ context.Context, item *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.calls = append(r.s.calls, "update_variations "+item.ID.String())
	for _, it := range r.s.items {
		if it.RestaurantID == item.RestaurantID && it.ID == item.ID {
			it.Variations = slices.Clone(item.Variations)
			return nil
		}
	}
	return menudomain.ErrMenuItemNotFound
}

func (r *MenuItemRepo) Delete(_ context.Context, restaurantID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.calls = append(r.s.calls, "delete_item "+id.String())
	n := len(r.s.items)
	r.s.items = slices.DeleteFunc(r.s.items, func(it *models.MenuItem) bool {
		return it.RestaurantID == restaurantID && it.ID == id
	})
	if len(r.s.items) == n {
		return menudomain.ErrMenuItemNotFound
	}
	return nil
}

// CategoryRepo is the category view of a Store.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Category
	for _, c := range r.s.categories {
		if c.RestaurantID == restaurantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *CategoryRepo) Save(_ context.Context, c *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.RestaurantID == c.RestaurantID && existing.Name == c.Name {
			return menudomain.ErrCategoryAlreadyExists
		}
	}
	cp := *c
	r.s.categories = append(r.s.categories, &cp)
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, restaurantID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.calls = append(r.s.calls, "delete_category "+id.String())
	if r.s.DeleteCategoryErr != nil {
		return r.s.DeleteCategoryErr
	}
	if slices.ContainsFunc(r.s.items, func(it *models.MenuItem) bool {
		return it.RestaurantID == restaurantID && it.CategoryID == id
	}) {
		return menudomain.ErrCategoryInUse
	}
	n := len(r.s.categories)
	r.s.categories = slices.DeleteFunc(r.s.categories, func(c *models.Category) bool {
		return c.RestaurantID == restaurantID && c.ID == id
	})
	if len(r.s.categories) == n {
		return menudomain.ErrCategoryNotFound
	}
	return nil
}
