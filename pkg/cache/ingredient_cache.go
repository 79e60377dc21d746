package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// IngredientCacheTTL bounds how stale a cached stock level may be.
	// Ingredients are written outside this service, so entries are never
	// invalidated and expire on this TTL only.
	IngredientCacheTTL = time.Minute

	ingredientCacheKeyPrefix = "ingredient"
)

// CachedIngredient is the read model stored in Redis for ingredient lookups
// made while composing variations. Fields are stored as a Redis hash.
type CachedIngredient struct {
	ID             uuid.UUID
	RestaurantID   uuid.UUID
	Name           string
	Unit           string
	QuantityOnHand decimal.Decimal
	Threshold      decimal.Decimal
}

// IngredientCache provides read-through storage for ingredient records.
// Keys are scoped by restaurantID to prevent cross-tenant data leakage.
// Key format: "{namespace}:ingredient:{restaurantID}:{ingredientID}"
type IngredientCache struct {
	client *RedisClient
}

// NewIngredientCache creates a new IngredientCache backed by the given RedisClient.
func NewIngredientCache(r *RedisClient) *IngredientCache {
	return &IngredientCache{client: r}
}

// Get retrieves a cached ingredient by restaurant + ingredient ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *IngredientCache) Get(ctx context.Context, restaurantID, ingredientID uuid.UUID) (*CachedIngredient, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(restaurantID, ingredientID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}
	return decodeIngredient(vals)
}

// Set writes a cached ingredient as a Redis hash with IngredientCacheTTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *IngredientCache) Set(ctx context.Context, ing *CachedIngredient) error {
	key := c.key(ing.RestaurantID, ing.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key, encodeIngredient(ing)...)
	pipe.Expire(ctx, key, IngredientCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// key builds the Redis key: "ingredient:{restaurantID}:{ingredientID}"
func (c *IngredientCache) key(restaurantID, ingredientID uuid.UUID) string {
	return c.client.Key(ingredientCacheKeyPrefix, restaurantID.String(), ingredientID.String())
}

func encodeIngredient(ing *CachedIngredient) []any {
	return []any{
		"id", ing.ID.String(),
		"restaurant_id", ing.RestaurantID.String(),
		"name", ing.Name,
		"unit", ing.Unit,
		"quantity_on_hand", ing.QuantityOnHand.String(),
		"threshold", ing.Threshold.String(),
	}
}

func decodeIngredient(vals map[string]string) (*CachedIngredient, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	rid, err := uuid.Parse(vals["restaurant_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse restaurant_id: %w", err)
	}
	qty, err := decimal.NewFromString(vals["quantity_on_hand"])
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity_on_hand: %w", err)
	}
	threshold, err := decimal.NewFromString(vals["threshold"])
	if err != nil {
		return nil, fmt.Errorf("cache parse threshold: %w", err)
	}
	return &CachedIngredient{
		ID:             id,
		RestaurantID:   rid,
		Name:           vals["name"],
		Unit:           vals["unit"],
		QuantityOnHand: qty,
		Threshold:      threshold,
	}, nil
}
