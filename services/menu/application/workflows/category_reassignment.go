// Package workflows runs category reassignment as a durable Temporal workflow
// so a deletion survives an API process restart half way through its transfers.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/repositories"
	domainsvcs "github.com/ghuser/backoffice/services/menu/domain/services"
)

// Application error types returned by CategoryReassignmentWorkflow.
const (
	ErrTypeTransferFailed = "TransferFailed"
	ErrTypeDeleteFailed   = "DeleteFailed"
)

const activityTimeout = 30 * time.Second

// ReassignmentResult is the workflow's successful outcome.
type ReassignmentResult struct {
	Transferred int `json:"transferred"`
}

// failureDetail travels with a failed workflow so the caller can rebuild the domain error.
type failureDetail struct {
	Index       int       `json:"index"`
	ItemID      uuid.UUID `json:"item_id"`
	Transferred int       `json:"transferred"`
	Cause       string    `json:"cause"`
}

// TransferItemInput moves one item.
type TransferItemInput struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	ItemID       uuid.UUID `json:"item_id"`
	CategoryID   uuid.UUID `json:"category_id"`
}

// DeleteCategoryInput deletes one category.
type DeleteCategoryInput struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	CategoryID   uuid.UUID `json:"category_id"`
}

// Activities performs the workflow's side effects against the repositories.
type Activities struct {
	Items      repositories.MenuItemRepository
	Categories repositories.CategoryRepository
}

// TransferItem repoints one item at the destination category.
func (a *Activities) TransferItem(ctx context.Context, in TransferItemInput) error {
	return a.Items.UpdateCategory(ctx, in.RestaurantID, in.ItemID, in.CategoryID)
}

// DeleteCategory deletes the emptied category.
func (a *Activities) DeleteCategory(ctx context.Context, in DeleteCategoryInput) error {
	return a.Categories.Delete(ctx, in.RestaurantID, in.CategoryID)
}

// CategoryReassignmentWorkflow moves the plan's items one activity at a time
// and deletes the category once all moved. Activities run exactly once; a
// failure ends the workflow with a non-retryable application error.
func CategoryReassignmentWorkflow(ctx workflow.Context, plan appsvcs.ReassignmentPlan) (ReassignmentResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: activityTimeout,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})
	log := workflow.GetLogger(ctx)

	var a *Activities
	transferred, err := domainsvcs.ExecuteReassignment(plan.ItemIDs,
		func(itemID uuid.UUID) error {
			return workflow.ExecuteActivity(ctx, a.TransferItem, TransferItemInput{
				RestaurantID: plan.RestaurantID,
				ItemID:       itemID,
				CategoryID:   plan.DestinationID,
			}).Get(ctx, nil)
		},
		func() error {
			return workflow.ExecuteActivity(ctx, a.DeleteCategory, DeleteCategoryInput{
				RestaurantID: plan.RestaurantID,
				CategoryID:   plan.CategoryID,
			}).Get(ctx, nil)
		},
	)
	if err != nil {
		log.Error("category reassignment failed", "category_id", plan.CategoryID, "transferred", transferred, "error", err)
		return ReassignmentResult{}, toApplicationError(err, transferred)
	}
	return ReassignmentResult{Transferred: transferred}, nil
}

func toApplicationError(err error, transferred int) error {
	var te *menudomain.TransferError
	if errors.As(err, &te) {
		return temporal.NewNonRetryableApplicationError(te.Error(), ErrTypeTransferFailed, nil, failureDetail{
			Index:       te.Index,
			ItemID:      te.ItemID,
			Transferred: te.Transferred,
			Cause:       causeMessage(te.Err),
		})
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeDeleteFailed, nil, failureDetail{
		Index:       -1,
		Transferred: transferred,
		Cause:       causeMessage(err),
	})
}

// FromWorkflowError turns a failed workflow's error back into the domain
// error the inline executor would have returned.
func FromWorkflowError(err error) (transferred int, _ error) {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return 0, fmt.Errorf("category reassignment workflow: %w", err)
	}
	var d failureDetail
	if appErr.HasDetails() {
		if derr := appErr.Details(&d); derr != nil {
			return 0, fmt.Errorf("decode workflow failure: %w", derr)
		}
	}
	switch appErr.Type() {
	case ErrTypeTransferFailed:
		return d.Transferred, &menudomain.TransferError{
			Index:       d.Index,
			ItemID:      d.ItemID,
			Transferred: d.Transferred,
			Err:         errors.New(d.Cause),
		}
	case ErrTypeDeleteFailed:
		return d.Transferred, fmt.Errorf("%w: %s", menudomain.ErrDeleteFailed, d.Cause)
	default:
		return 0, fmt.Errorf("category reassignment workflow: %w", err)
	}
}

// causeMessage is the message of the activity's own error, without the
// activity and wrapping context around it.
func causeMessage(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return innermost(appErr).Error()
	}
	return innermost(err).Error()
}

func innermost(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// WorkflowID is one per category so Temporal rejects a second concurrent run.
func WorkflowID(restaurantID, categoryID uuid.UUID) string {
	return fmt.Sprintf("category-reassignment-%s-%s", restaurantID, categoryID)
}

// Register adds the workflow and its activities to w.
func Register(w worker.Worker, acts *Activities) {
	w.RegisterWorkflow(CategoryReassignmentWorkflow)
	w.RegisterActivity(acts)
}

// Executor runs reassignment plans as Temporal workflows and waits for them.
// It satisfies services.ReassignmentExecutor.
type Executor struct {
	client    client.Client
	taskQueue string
}

// NewExecutor returns an Executor starting workflows on taskQueue.
func NewExecutor(c client.Client, taskQueue string) *Executor {
	return &Executor{client: c, taskQueue: taskQueue}
}

// Execute starts the workflow for plan and blocks until it finishes or ctx ends.
func (e *Executor) Execute(ctx context.Context, plan appsvcs.ReassignmentPlan) (int, error) {
	run, err := e.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        WorkflowID(plan.RestaurantID, plan.CategoryID),
		TaskQueue: e.taskQueue,
	}, CategoryReassignmentWorkflow, plan)
	if err != nil {
		return 0, fmt.Errorf("start category reassignment: %w", err)
	}

	var res ReassignmentResult
	if err := run.Get(ctx, &res); err != nil {
		return FromWorkflowError(err)
	}
	return res.Transferred, nil
}
