package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/pkg/database"
	"github.com/ghuser/backoffice/pkg/events"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	domainevents "github.com/ghuser/backoffice/services/menu/domain/events"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db  *database.Database
	bus EventPublisher
	now func() time.Time
}

// NewCategoryRepository returns a CategoryRepository. bus may be nil.
func NewCategoryRepository(db *database.Database, bus EventPublisher) *CategoryRepository {
	return &CategoryRepository{db: db, bus: bus, now: time.Now}
}

// ListByRestaurant returns the restaurant's categories ordered by name.
func (r *CategoryRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Category, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, restaurant_id, name, created_at FROM categories WHERE restaurant_id = $1 ORDER BY name, id`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.Category
	for rows.Next() {
		var (
			c    models.Category
			name string
		)
		if err := rows.Scan(&c.ID, &c.RestaurantID, &name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Name = models.CategoryName(name)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// Save inserts a new category. Returns ErrCategoryAlreadyExists on a
// case-insensitive name clash within the restaurant.
func (r *CategoryRepository) Save(ctx context.Context, c *models.Category) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO categories (id, restaurant_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.RestaurantID, c.Name.String(), c.CreatedAt,
	)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return menudomain.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Delete removes the category and publishes a CategoryDeletedEvent in the
// same transaction. The menu_items foreign key is ON DELETE RESTRICT, so a
// category that still has items fails with ErrCategoryInUse.
func (r *CategoryRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM categories WHERE restaurant_id = $1 AND id = $2`,
			restaurantID, id,
		)
		if err != nil {
			if pgCode(err) == pgForeignKeyViolation {
				return menudomain.ErrCategoryInUse
			}
			return fmt.Errorf("delete category: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if n == 0 {
			return menudomain.ErrCategoryNotFound
		}

		if r.bus == nil {
			return nil
		}
		evt := domainevents.CategoryDeletedEvent{
			EventID:      uuid.New(),
			Version:      domainevents.SchemaVersion,
			RestaurantID: restaurantID,
			CategoryID:   id,
			OccurredAt:   r.now().UTC(),
		}
		msg, err := events.NewJSONMessage(evt.EventID, evt.Version, evt)
		if err != nil {
			return err
		}
		if err := r.bus.PublishTx(ctx, tx, domainevents.TopicCategoryDeleted, msg); err != nil {
			return fmt.Errorf("publish category deleted: %w", err)
		}
		return nil
	})
}
