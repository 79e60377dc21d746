package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the menu context.
const (
	TopicMenuItemRecategorized = "menu.item.recategorized"
	TopicCategoryDeleted       = "menu.category.deleted"
)

// SchemaVersion is the payload version written by this build. Consumers
// skip messages with a newer version.
const SchemaVersion = 1

// MenuItemRecategorizedEvent is published when an item is repointed at a
// different category, one event per transfer step of a category deletion.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicMenuItemRecategorized).
type MenuItemRecategorizedEvent struct {
	EventID        uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version        int       `json:"version"`  // Schema version; increment on breaking changes
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	ItemID         uuid.UUID `json:"item_id"`
	FromCategoryID uuid.UUID `json:"from_category_id"` // uuid.Nil when previously uncategorized
	ToCategoryID   uuid.UUID `json:"to_category_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// CategoryDeletedEvent is published after a category row is removed.
type CategoryDeletedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	Version      int       `json:"version"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	CategoryID   uuid.UUID `json:"category_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
