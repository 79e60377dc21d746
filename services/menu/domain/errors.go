package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Classification sentinels for the menu domain. Every concrete error below
// wraps exactly one of these, so callers can branch with errors.Is() on the
// class without knowing the specific cause.
var (
	// ErrValidation blocks a save until the user edits the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrReference indicates a dangling or invalid ingredient selection.
	ErrReference = errors.New("invalid ingredient reference")

	// ErrIndexOutOfRange indicates a usage index outside the variation's usage list.
	ErrIndexOutOfRange = errors.New("usage index out of range")

	// ErrGuardBlocked indicates a category with items cannot be deleted because
	// no other category exists to receive them.
	ErrGuardBlocked = errors.New("category deletion blocked: no destination category available")

	// ErrTransferFailed indicates an item transfer failed mid-sequence.
	ErrTransferFailed = errors.New("category transfer failed")

	// ErrDeleteFailed indicates the final category delete failed after all transfers succeeded.
	ErrDeleteFailed = errors.New("category delete failed")
)

// Validation causes.
var (
	ErrNameRequired        = fmt.Errorf("%w: name required", ErrValidation)
	ErrIngredientsRequired = fmt.Errorf("%w: ingredients required", ErrValidation)
	ErrNegativeAmount      = fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	ErrInvalidQuantity     = fmt.Errorf("%w: quantity must be a non-negative number", ErrValidation)
	ErrInvalidMode         = fmt.Errorf("%w: mode must be custom or tracked", ErrValidation)
	ErrUnknownUsageField   = fmt.Errorf("%w: unknown usage field", ErrValidation)
	ErrInvalidCategoryName = fmt.Errorf("%w: category name required", ErrValidation)
)

// Reference causes.
var (
	ErrUnknownIngredient      = fmt.Errorf("%w: ingredient not found", ErrReference)
	ErrIngredientRefRequired  = fmt.Errorf("%w: ingredient reference required for tracked usage", ErrReference)
	ErrTrackedFieldReadOnly   = fmt.Errorf("%w: field is owned by the tracked ingredient", ErrReference)
	ErrInvalidIngredientUsage = fmt.Errorf("%w: usage mode and ingredient reference disagree", ErrReference)
)

// Lookup and guard sentinels.
var (
	// ErrIngredientNotFound is returned by ingredient collaborators on a miss.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrMenuItemNotFound indicates the requested menu item does not exist.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryAlreadyExists indicates a category with the same name exists in the restaurant.
	ErrCategoryAlreadyExists = errors.New("category already exists")

	// ErrCategoryInUse is returned by storage when menu items still reference the category.
	ErrCategoryInUse = errors.New("category still referenced by menu items")

	// ErrInvalidDestination indicates the chosen destination is the source
	// category or not part of the remaining category set.
	ErrInvalidDestination = errors.New("invalid destination category")

	// ErrDeletionInProgress indicates another deletion of the same category is running.
	ErrDeletionInProgress = errors.New("category deletion already in progress")
)

// TransferError reports which step of the sequential transfer failed.
// Items before Index were moved and stay moved; the category was not deleted.
type TransferError struct {
	Index       int       // zero-based position of the failing item
	ItemID      uuid.UUID // item whose update failed
	Transferred int       // number of items moved before the failure
	Err         error     // collaborator error, opaque
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: item %s (step %d, %d transferred): %v",
		ErrTransferFailed, e.ItemID, e.Index+1, e.Transferred, e.Err)
}

// Is matches ErrTransferFailed so callers need not know the concrete type.
func (e *TransferError) Is(target error) bool {
	return target == ErrTransferFailed
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
