package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/backoffice/pkg/cache"
)

type fakeIngredientCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*pkgcache.CachedIngredient
	getErr  error
	hits    int
}

func newFakeIngredientCache() *fakeIngredientCache {
	return &fakeIngredientCache{entries: map[uuid.UUID]*pkgcache.CachedIngredient{}}
}

func (c *fakeIngredientCache) Get(_ context.Context, restaurantID, id uuid.UUID) (*pkgcache.CachedIngredient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	e, ok := c.entries[id]
	if !ok || e.RestaurantID != restaurantID {
		return nil, redis.Nil
	}
	c.hits++
	return e, nil
}

func (c *fakeIngredientCache) Set(_ context.Context, ing *pkgcache.CachedIngredient) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ing.ID] = ing
	return nil
}

// fakeSummaryCache keeps only the rows of the current generation, like the
// Redis implementation's readers see them.
type fakeSummaryCache struct {
	mu            sync.Mutex
	rows          map[uuid.UUID][]pkgcache.CachedCategoryCount
	gens          map[uuid.UUID]int64
	invalidations int
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{
		rows: map[uuid.UUID][]pkgcache.CachedCategoryCount{},
		gens: map[uuid.UUID]int64{},
	}
}

func (c *fakeSummaryCache) Get(_ context.Context, restaurantID uuid.UUID) ([]pkgcache.CachedCategoryCount, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[restaurantID]
	rows, ok := c.rows[restaurantID]
	if !ok {
		return nil, gen, redis.Nil
	}
	return rows, gen, nil
}

func (c *fakeSummaryCache) Set(_ context.Context, restaurantID uuid.UUID, gen int64, rows []pkgcache.CachedCategoryCount) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gens[restaurantID] {
		c.rows[restaurantID] = rows
	}
	return nil
}

func (c *fakeSummaryCache) Invalidate(_ context.Context, restaurantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rows, restaurantID)
	c.gens[restaurantID]++
	c.invalidations++
	return nil
}

type fakeSnapshotStore struct {
	objects map[string][]byte
	err     error
}

func (s *fakeSnapshotStore) Put(_ context.Context, key string, body []byte) error {
	if s.err != nil {
		return s.err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = body
	return nil
}
