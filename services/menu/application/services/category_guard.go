package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/pkg/logger"
	"github.com/ghuser/backoffice/pkg/telemetry"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
	"github.com/ghuser/backoffice/services/menu/domain/repositories"
	domainsvcs "github.com/ghuser/backoffice/services/menu/domain/services"
)

// GuardState is a step of one category deletion.
type GuardState string

const (
	StateIdle             GuardState = "idle"
	StateChecking         GuardState = "checking"
	StateSafeToDelete     GuardState = "safe_to_delete"
	StateRequiresTransfer GuardState = "requires_transfer"
	StateTransferring     GuardState = "transferring"
	StateDeleting         GuardState = "deleting"
	StateDone             GuardState = "done"
	StateFailed           GuardState = "failed"
)

// PreviewSize is how many affected items a deletion check lists by name.
const PreviewSize = 5

// Locker grants one deletion at a time per (restaurant, category).
// *cache.CategoryLock implements it.
type Locker interface {
	TryLock(ctx context.Context, restaurantID, categoryID uuid.UUID) (release func(context.Context) error, ok bool, err error)
}

// ReassignmentPlan is an approved deletion: move ItemIDs to DestinationID in
// order, then delete CategoryID. DestinationID is uuid.Nil when ItemIDs is empty.
type ReassignmentPlan struct {
	RestaurantID  uuid.UUID   `json:"restaurant_id"`
	CategoryID    uuid.UUID   `json:"category_id"`
	DestinationID uuid.UUID   `json:"destination_id"`
	ItemIDs       []uuid.UUID `json:"item_ids"`
}

// ReassignmentExecutor carries out a plan and reports how many items it moved.
// Errors are *TransferError or wrap ErrDeleteFailed.
type ReassignmentExecutor interface {
	Execute(ctx context.Context, plan ReassignmentPlan) (transferred int, err error)
}

// DeletionCheck is the outcome of the Checking step.
type DeletionCheck struct {
	RestaurantID uuid.UUID
	Category     *models.Category
	State        GuardState // StateSafeToDelete or StateRequiresTransfer
	Affected     []*models.MenuItem
	Destinations []*models.Category
}

// Blocked reports whether items need a new home but no other category exists.
func (c *DeletionCheck) Blocked() bool {
	return c.State == StateRequiresTransfer && len(c.Destinations) == 0
}

// Preview returns the first PreviewSize affected items and how many more there are.
func (c *DeletionCheck) Preview() (shown []*models.MenuItem, remaining int) {
	if len(c.Affected) <= PreviewSize {
		return c.Affected, 0
	}
	return c.Affected[:PreviewSize], len(c.Affected) - PreviewSize
}

// DeletionResult reports a completed deletion.
type DeletionResult struct {
	CategoryID    uuid.UUID
	DestinationID uuid.UUID
	State         GuardState
	Transferred   int
}

// CategoryGuard deletes categories without leaving menu items pointing at a
// deleted category. Items are moved to a caller-chosen destination first.
type CategoryGuard struct {
	items      repositories.MenuItemRepository
	categories repositories.CategoryRepository
	executor   ReassignmentExecutor
	locker     Locker
	summary    SummaryCache
	metrics    *telemetry.MenuMetrics
	log        logger.Logger
}

// NewCategoryGuard returns a CategoryGuard. locker, summary and metrics may be nil;
// without a locker concurrent deletions of one category are not serialized.
func NewCategoryGuard(
	items repositories.MenuItemRepository,
	categories repositories.CategoryRepository,
	executor ReassignmentExecutor,
	locker Locker,
	summary SummaryCache,
	metrics *telemetry.MenuMetrics,
	log logger.Logger,
) *CategoryGuard {
	return &CategoryGuard{
		items:      items,
		categories: categories,
		executor:   executor,
		locker:     locker,
		summary:    summary,
		metrics:    metrics,
		log:        log,
	}
}

// Check lists the restaurant's items and categories and partitions the items
// on their raw category reference. It takes no lock and changes nothing.
func (g *CategoryGuard) Check(ctx context.Context, restaurantID, categoryID uuid.UUID) (*DeletionCheck, error) {
	g.transition(ctx, restaurantID, categoryID, StateChecking)

	categories, err := g.categories.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var target *models.Category
	for _, c := range categories {
		if c.ID == categoryID {
			target = c
			break
		}
	}
	if target == nil {
		return nil, menudomain.ErrCategoryNotFound
	}

	items, err := g.items.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	check := &DeletionCheck{
		RestaurantID: restaurantID,
		Category:     target,
		State:        StateSafeToDelete,
		Affected:     domainsvcs.AffectedItems(items, categoryID),
	}
	if len(check.Affected) > 0 {
		check.State = StateRequiresTransfer
		check.Destinations = domainsvcs.Destinations(categories, categoryID)
	}
	g.transition(ctx, restaurantID, categoryID, check.State, "affected", len(check.Affected))
	return check, nil
}

// Delete runs the full workflow under the category's single-flight lock:
// check, then move every affected item to destinationID one at a time, then
// delete the category. destinationID is ignored when no items are affected.
//
// A second call for the same category while one is running fails with
// ErrDeletionInProgress. Cancelling ctx after the plan is approved does not
// stop the transfers or the delete. A failure part way leaves earlier transfers in place
// and the category undeleted; calling Delete again starts over from the check.
func (g *CategoryGuard) Delete(ctx context.Context, restaurantID, categoryID, destinationID uuid.UUID) (*DeletionResult, error) {
	if g.locker != nil {
		release, ok, err := g.locker.TryLock(ctx, restaurantID, categoryID)
		if err != nil {
			return nil, fmt.Errorf("acquire category lock: %w", err)
		}
		if !ok {
			g.metrics.RecordDeletion(ctx, telemetry.OutcomeInProgress)
			return nil, menudomain.ErrDeletionInProgress
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				g.log.WarnContext(ctx, "category lock release failed",
					"category_id", categoryID, "error", err)
			}
		}()
	}

	check, err := g.Check(ctx, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}

	plan := ReassignmentPlan{RestaurantID: restaurantID, CategoryID: categoryID}
	if check.State == StateRequiresTransfer {
		if check.Blocked() {
			g.metrics.RecordDeletion(ctx, telemetry.OutcomeBlocked)
			return nil, menudomain.ErrGuardBlocked
		}
		if err := domainsvcs.CheckDestination(check.Destinations, destinationID); err != nil {
			return nil, err
		}
		plan.DestinationID = destinationID
		plan.ItemIDs = make([]uuid.UUID, len(check.Affected))
		for i, item := range check.Affected {
			plan.ItemIDs[i] = item.ID
		}
		g.transition(ctx, restaurantID, categoryID, StateTransferring,
			"destination_id", destinationID, "items", len(plan.ItemIDs))
	} else {
		g.transition(ctx, restaurantID, categoryID, StateDeleting)
	}

	// Once approved, the run outlives the caller: a cancelled request must not
	// stop it between transfers.
	transferred, err := g.executor.Execute(context.WithoutCancel(ctx), plan)
	g.metrics.RecordTransfers(ctx, transferred)
	if transferred > 0 || err == nil {
		g.invalidateSummary(ctx, restaurantID)
	}
	if err != nil {
		g.metrics.RecordDeletion(ctx, telemetry.OutcomeFailed)
		g.log.ErrorContext(ctx, "category deletion failed",
			"category_id", categoryID,
			"state", StateFailed,
			"transferred", transferred,
			"error", err,
		)
		telemetry.ReportError(ctx, err, map[string]string{
			"restaurant_id": restaurantID.String(),
			"category_id":   categoryID.String(),
			"guard_state":   string(StateFailed),
		})
		return nil, err
	}

	g.metrics.RecordDeletion(ctx, telemetry.OutcomeDeleted)
	g.transition(ctx, restaurantID, categoryID, StateDone, "transferred", transferred)
	return &DeletionResult{
		CategoryID:    categoryID,
		DestinationID: plan.DestinationID,
		State:         StateDone,
		Transferred:   transferred,
	}, nil
}

func (g *CategoryGuard) transition(ctx context.Context, restaurantID, categoryID uuid.UUID, state GuardState, args ...any) {
	g.log.InfoContext(ctx, "category guard",
		append([]any{"restaurant_id", restaurantID, "category_id", categoryID, "state", state}, args...)...)
}

func (g *CategoryGuard) invalidateSummary(ctx context.Context, restaurantID uuid.UUID) {
	if g.summary == nil {
		return
	}
	if err := g.summary.Invalidate(context.WithoutCancel(ctx), restaurantID); err != nil {
		g.log.WarnContext(ctx, "category summary invalidation failed", "error", err)
	}
}

// InlineExecutor runs a plan in-process against the repositories.
type InlineExecutor struct {
	items      repositories.MenuItemRepository
	categories repositories.CategoryRepository
}

// NewInlineExecutor returns an InlineExecutor.
func NewInlineExecutor(items repositories.MenuItemRepository, categories repositories.CategoryRepository) *InlineExecutor {
	return &InlineExecutor{items: items, categories: categories}
}

// Execute moves the plan's items sequentially and deletes the category once
// all of them moved.
func (e *InlineExecutor) Execute(ctx context.Context, plan ReassignmentPlan) (int, error) {
	return domainsvcs.ExecuteReassignment(plan.ItemIDs,
		func(itemID uuid.UUID) error {
			return e.items.UpdateCategory(ctx, plan.RestaurantID, itemID, plan.DestinationID)
		},
		func() error {
			return e.categories.Delete(ctx, plan.RestaurantID, plan.CategoryID)
		},
	)
}
