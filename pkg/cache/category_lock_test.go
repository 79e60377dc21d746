package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCategoryLock_Key(t *testing.T) {
	rid := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	cid := uuid.MustParse("660e8400-e29b-41d4-a716-446655440000")
	got := (&CategoryLock{}).key(rid, cid)
	want := "lock:category_delete:550e8400-e29b-41d4-a716-446655440000:660e8400-e29b-41d4-a716-446655440000"
	if got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestCategoryLockIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	lock := NewCategoryLock(rc, time.Minute)
	rid, cid := uuid.New(), uuid.New()

	release, ok, err := lock.TryLock(ctx, rid, cid)
	if err != nil || !ok {
		t.Fatalf("first TryLock = (%v, %v), want (true, nil)", ok, err)
	}

	if _, ok, err := lock.TryLock(ctx, rid, cid); err != nil || ok {
		t.Fatalf("second TryLock = (%v, %v), want (false, nil)", ok, err)
	}

	otherRelease, ok, err := lock.TryLock(ctx, rid, uuid.New())
	if err != nil || !ok {
		t.Fatalf("lock on another category = (%v, %v), want (true, nil)", ok, err)
	}
	_ = otherRelease(ctx)

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	release, ok, err = lock.TryLock(ctx, rid, cid)
	if err != nil || !ok {
		t.Fatalf("TryLock after release = (%v, %v), want (true, nil)", ok, err)
	}
	_ = release(ctx)
}
