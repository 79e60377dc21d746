package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/pkg/database"
	"github.com/ghuser/backoffice/pkg/events"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	domainevents "github.com/ghuser/backoffice/services/menu/domain/events"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

const selectMenuItems = `SELECT id, restaurant_id, name, category_id, variations, is_inventory_controlled, updated_at FROM menu_items`

// MenuItemRepository implements repositories.MenuItemRepository against PostgreSQL.
// Variations are stored as a JSONB document on the item row.
type MenuItemRepository struct {
	db  *database.Database
	bus EventPublisher
	now func() time.Time
}

// NewMenuItemRepository returns a MenuItemRepository. bus may be nil, in
// which case no recategorization events are published.
func NewMenuItemRepository(db *database.Database, bus EventPublisher) *MenuItemRepository {
	return &MenuItemRepository{db: db, bus: bus, now: time.Now}
}

// ListByRestaurant returns every item of the restaurant ordered by name, then ID.
func (r *MenuItemRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	rows, err := r.db.DB().QueryContext(ctx, selectMenuItems+` WHERE restaurant_id = $1 ORDER BY name, id`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return out, nil
}

// GetByID retrieves one item scoped to the restaurant. Returns ErrMenuItemNotFound if absent.
func (r *MenuItemRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*models.MenuItem, error) {
	row := r.db.DB().QueryRowContext(ctx, selectMenuItems+` WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menudomain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("query menu item: %w", err)
	}
	return item, nil
}

// UpdateCategory repoints the item and publishes a MenuItemRecategorizedEvent
// in the same transaction. Returns ErrMenuItemNotFound if the item is gone and
// ErrCategoryNotFound if the destination does not exist in the restaurant.
func (r *MenuItemRepository) UpdateCategory(ctx context.Context, restaurantID, itemID, categoryID uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var from uuid.NullUUID
		err := tx.QueryRowContext(ctx,
			`SELECT category_id FROM menu_items WHERE restaurant_id = $1 AND id = $2 FOR UPDATE`,
			restaurantID, itemID,
		).Scan(&from)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return menudomain.ErrMenuItemNotFound
			}
			return fmt.Errorf("lock menu item: %w", err)
		}

		now := r.now().UTC()
		if _, err := tx.ExecContext(ctx,
			`UPDATE menu_items SET category_id = $3, updated_at = $4 WHERE restaurant_id = $1 AND id = $2`,
			restaurantID, itemID, categoryID, now,
		); err != nil {
			if pgCode(err) == pgForeignKeyViolation {
				return menudomain.ErrCategoryNotFound
			}
			return fmt.Errorf("update menu item category: %w", err)
		}

		if r.bus == nil {
			return nil
		}
		evt := domainevents.MenuItemRecategorizedEvent{
			EventID:        uuid.New(),
			Version:        domainevents.SchemaVersion,
			RestaurantID:   restaurantID,
			ItemID:         itemID,
			FromCategoryID: from.UUID,
			ToCategoryID:   categoryID,
			OccurredAt:     now,
		}
		msg, err := events.NewJSONMessage(evt.EventID, evt.Version, evt)
		if err != nil {
			return err
		}
		if err := r.bus.PublishTx(ctx, tx, domainevents.TopicMenuItemRecategorized, msg); err != nil {
			return fmt.Errorf("publish item recategorized: %w", err)
		}
		return nil
	})
}

// UpdateVariations replaces the item's variation list. Returns ErrMenuItemNotFound if absent.
func (r *MenuItemRepository) UpdateVariations(ctx context.Context, item *models.MenuItem) error {
	doc, err := json.Marshal(item.Variations)
	if err != nil {
		return fmt.Errorf("marshal variations: %w", err)
	}
	item.UpdatedAt = r.now().UTC()
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE menu_items SET variations = $3, updated_at = $4 WHERE restaurant_id = $1 AND id = $2`,
		item.RestaurantID, item.ID, string(doc), item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update variations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update variations: %w", err)
	}
	if n == 0 {
		return menudomain.ErrMenuItemNotFound
	}
	return nil
}

// Delete removes one item. Returns ErrMenuItemNotFound if absent.
func (r *MenuItemRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM menu_items WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id,
	)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if n == 0 {
		return menudomain.ErrMenuItemNotFound
	}
	return nil
}

func scanMenuItem(s scanner) (*models.MenuItem, error) {
	var (
		item       models.MenuItem
		categoryID uuid.NullUUID
		doc        []byte
	)
	if err := s.Scan(&item.ID, &item.RestaurantID, &item.Name, &categoryID, &doc, &item.IsInventoryControlled, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.CategoryID = categoryID.UUID
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &item.Variations); err != nil {
			return nil, fmt.Errorf("decode variations of %s: %w", item.ID, err)
		}
	}
	return &item, nil
}
