package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const categoryLockKeyPrefix = "lock:category_delete"

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock taken over by another caller is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CategoryLock is a single-flight lock per (restaurant, category) held for the
// lifetime of one deletion. It is a SET NX with a TTL so a crashed holder
// cannot block the category forever.
// Key format: "{namespace}:lock:category_delete:{restaurantID}:{categoryID}"
type CategoryLock struct {
	client *RedisClient
	ttl    time.Duration
}

// NewCategoryLock creates a CategoryLock whose entries expire after ttl.
func NewCategoryLock(r *RedisClient, ttl time.Duration) *CategoryLock {
	return &CategoryLock{client: r, ttl: ttl}
}

// TryLock acquires the lock. ok is false when another holder has it. The
// returned release function is safe to call once the lock has expired.
func (l *CategoryLock) TryLock(ctx context.Context, restaurantID, categoryID uuid.UUID) (release func(context.Context) error, ok bool, err error) {
	key := l.key(restaurantID, categoryID)
	token := uuid.NewString()

	err = l.client.Client().SetArgs(ctx, key, token, redis.SetArgs{Mode: "NX", TTL: l.ttl}).Err()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lock acquire: %w", err)
	}

	release = func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client.Client(), []string{key}, token).Err(); err != nil {
			return fmt.Errorf("lock release: %w", err)
		}
		return nil
	}
	return release, true, nil
}

func (l *CategoryLock) key(restaurantID, categoryID uuid.UUID) string {
	return l.client.Key(categoryLockKeyPrefix, restaurantID.String(), categoryID.String())
}
