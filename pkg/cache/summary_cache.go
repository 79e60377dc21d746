package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SummaryCacheTTL bounds how long rows live; freshness comes from
	// Invalidate, called on every write that changes category counts.
	SummaryCacheTTL = 10 * time.Minute

	summaryCacheKeyPrefix = "category_summary"
	summaryCacheGenPrefix = "category_summary_gen"
)

// CachedCategoryCount is one row of a cached category summary.
type CachedCategoryCount struct {
	Name  string
	Count int
}

// SummaryCache stores per-restaurant category counts as a Redis hash of
// category name to item count. Each restaurant has a generation counter;
// Invalidate bumps it, and rows are always read and written under a
// generation, so a Set computed before an Invalidate lands on a key nobody
// reads and expires with SummaryCacheTTL.
// Key format: "{namespace}:category_summary:{restaurantID}:{generation}"
// Generation: "{namespace}:category_summary_gen:{restaurantID}"
type SummaryCache struct {
	client *RedisClient
}

// NewSummaryCache creates a new SummaryCache backed by the given RedisClient.
func NewSummaryCache(r *RedisClient) *SummaryCache {
	return &SummaryCache{client: r}
}

// Get returns the cached rows sorted by name together with the generation
// they were read under. On a miss it returns redis.Nil and the generation a
// following Set must use.
func (c *SummaryCache) Get(ctx context.Context, restaurantID uuid.UUID) ([]CachedCategoryCount, int64, error) {
	gen, err := c.generation(ctx, restaurantID)
	if err != nil {
		return nil, 0, err
	}
	vals, err := c.client.Client().HGetAll(ctx, c.key(restaurantID, gen)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, gen, redis.Nil
	}
	rows, err := decodeSummary(vals)
	if err != nil {
		return nil, 0, err
	}
	return rows, gen, nil
}

// Set replaces the cached summary for generation gen. An empty summary is
// not cached.
func (c *SummaryCache) Set(ctx context.Context, restaurantID uuid.UUID, gen int64, rows []CachedCategoryCount) error {
	if len(rows) == 0 {
		return nil
	}
	key := c.key(restaurantID, gen)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeSummary(rows)...)
	pipe.Expire(ctx, key, SummaryCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate moves restaurantID to a new generation.
func (c *SummaryCache) Invalidate(ctx context.Context, restaurantID uuid.UUID) error {
	if err := c.client.Client().Incr(ctx, c.genKey(restaurantID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *SummaryCache) generation(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	gen, err := c.client.Client().Get(ctx, c.genKey(restaurantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

func (c *SummaryCache) key(restaurantID uuid.UUID, gen int64) string {
	return c.client.Key(summaryCacheKeyPrefix, restaurantID.String(), strconv.FormatInt(gen, 10))
}

func (c *SummaryCache) genKey(restaurantID uuid.UUID) string {
	return c.client.Key(summaryCacheGenPrefix, restaurantID.String())
}

func encodeSummary(rows []CachedCategoryCount) []any {
	args := make([]any, 0, len(rows)*2)
	for _, r := range rows {
		args = append(args, r.Name, strconv.Itoa(r.Count))
	}
	return args
}

func decodeSummary(vals map[string]string) ([]CachedCategoryCount, error) {
	rows := make([]CachedCategoryCount, 0, len(vals))
	for name, raw := range vals {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("cache parse count for %q: %w", name, err)
		}
		rows = append(rows, CachedCategoryCount{Name: name, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}
