package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/services/menu/domain/events"
)

func TestMenuItemRecategorizedEvent_JSONRoundTrip(t *testing.T) {
	original := events.MenuItemRecategorizedEvent{
		EventID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		Version:        1,
		RestaurantID:   uuid.MustParse("660e8400-e29b-41d4-a716-446655440000"),
		ItemID:         uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		FromCategoryID: uuid.MustParse("770e8400-e29b-41d4-a716-446655440000"),
		ToCategoryID:   uuid.MustParse("880e8400-e29b-41d4-a716-446655440000"),
		OccurredAt:     time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded events.MenuItemRecategorizedEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if decoded != original {
		t.Errorf("decoded %+v, want %+v", decoded, original)
	}
}

func TestEvents_JSONFieldNames(t *testing.T) {
	tests := []struct {
		name   string
		evt    any
		fields []string
	}{
		{
			"recategorized",
			events.MenuItemRecategorizedEvent{EventID: uuid.New(), Version: 1, OccurredAt: time.Now().UTC()},
			[]string{"event_id", "version", "restaurant_id", "item_id", "from_category_id", "to_category_id", "occurred_at"},
		},
		{
			"category deleted",
			events.CategoryDeletedEvent{EventID: uuid.New(), Version: 1, OccurredAt: time.Now().UTC()},
			[]string{"event_id", "version", "restaurant_id", "category_id", "occurred_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.evt)
			if err != nil {
				t.Fatalf("json.Marshal failed: %v", err)
			}
			var raw map[string]interface{}
			if err := json.Unmarshal(data, &raw); err != nil {
				t.Fatalf("unmarshal to map failed: %v", err)
			}
			for _, field := range tt.fields {
				if _, ok := raw[field]; !ok {
					t.Errorf("expected JSON field %q not found in: %s", field, data)
				}
			}
		})
	}
}

func TestTopics_Values(t *testing.T) {
	if events.TopicMenuItemRecategorized != "menu.item.recategorized" {
		t.Errorf("unexpected topic %q", events.TopicMenuItemRecategorized)
	}
	if events.TopicCategoryDeleted != "menu.category.deleted" {
		t.Errorf("unexpected topic %q", events.TopicCategoryDeleted)
	}
}
