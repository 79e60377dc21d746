package menutest

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Locker is an in-process single-flight lock keyed by (restaurant, category).
type Locker struct {
	mu   sync.Mutex
	held map[[2]uuid.UUID]bool
}

// NewLocker returns an unlocked Locker.
func NewLocker() *Locker {
	return &Locker{held: map[[2]uuid.UUID]bool{}}
}

func (l *Locker) TryLock(_ context.Context, restaurantID, categoryID uuid.UUID) (func(context.Context) error, bool, error) {
	key := [2]uuid.UUID{restaurantID, categoryID}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, true, nil
}

// Held reports whether the lock for (restaurant, category) is taken.
func (l *Locker) Held(restaurantID, categoryID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[[2]uuid.UUID{restaurantID, categoryID}]
}
