package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/pkg/database"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

const selectIngredients = `SELECT id, restaurant_id, name, unit, quantity_on_hand, threshold FROM ingredients`

// IngredientRepository implements repositories.IngredientRepository against PostgreSQL.
type IngredientRepository struct {
	db *database.Database
}

// NewIngredientRepository returns an IngredientRepository backed by the given pool.
func NewIngredientRepository(db *database.Database) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// GetByID retrieves an ingredient scoped to the restaurant. Returns ErrIngredientNotFound if absent.
func (r *IngredientRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.Ingredient, error) {
	row := r.db.DB().QueryRowContext(ctx, selectIngredients+` WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	ing, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menudomain.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("query ingredient: %w", err)
	}
	return ing, nil
}

// ListByRestaurant returns all ingredients of the restaurant ordered by name.
func (r *IngredientRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Ingredient, error) {
	rows, err := r.db.DB().QueryContext(ctx, selectIngredients+` WHERE restaurant_id = $1 ORDER BY name, id`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIngredient(s scanner) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.Scan(&ing.ID, &ing.RestaurantID, &ing.Name, &ing.Unit, &ing.QuantityOnHand, &ing.Threshold); err != nil {
		return nil, err
	}
	return &ing, nil
}
