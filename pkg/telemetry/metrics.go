package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/backoffice/services/menu"

// Outcome values recorded on menu.category_deletions.
const (
	OutcomeDeleted    = "deleted"
	OutcomeBlocked    = "blocked"
	OutcomeInProgress = "in_progress"
	OutcomeFailed     = "failed"
)

// MenuMetrics holds the menu service counters. A nil *MenuMetrics records nothing.
type MenuMetrics struct {
	deletions metric.Int64Counter
	transfers metric.Int64Counter
}

// NewMenuMetricsWithProvider registers the counters on mp.
func NewMenuMetricsWithProvider(mp metric.MeterProvider) (*MenuMetrics, error) {
	meter := mp.Meter(meterName)

	deletions, err := meter.Int64Counter("menu.category_deletions",
		metric.WithDescription("Category deletion attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create deletions counter: %w", err)
	}
	transfers, err := meter.Int64Counter("menu.category_transfers",
		metric.WithDescription("Menu items moved to another category before a deletion"),
	)
	if err != nil {
		return nil, fmt.Errorf("create transfers counter: %w", err)
	}
	return &MenuMetrics{deletions: deletions, transfers: transfers}, nil
}

// RecordDeletion counts one deletion attempt with the given outcome.
func (m *MenuMetrics) RecordDeletion(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.deletions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordTransfers counts n completed item transfers.
func (m *MenuMetrics) RecordTransfers(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.transfers.Add(ctx, int64(n))
}
