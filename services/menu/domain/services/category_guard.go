package services

import (
	"fmt"

	"github.com/google/uuid"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
)

// AffectedItems returns the items whose category reference equals categoryID,
// in list order. Membership is the raw reference; names are never compared.
func AffectedItems(items []*models.MenuItem, categoryID uuid.UUID) []*models.MenuItem {
	var out []*models.MenuItem
	for _, item := range items {
		if item.InCategory(categoryID) {
			out = append(out, item)
		}
	}
	return out
}

// Destinations returns every category except categoryID, in list order.
func Destinations(categories []*models.Category, categoryID uuid.UUID) []*models.Category {
	var out []*models.Category
	for _, c := range categories {
		if c.ID != categoryID {
			out = append(out, c)
		}
	}
	return out
}

// CheckDestination verifies destinationID is one of the destinations. The
// source category is never among them.
func CheckDestination(destinations []*models.Category, destinationID uuid.UUID) error {
	if destinationID == uuid.Nil {
		return fmt.Errorf("%w: destination required", menudomain.ErrInvalidDestination)
	}
	for _, c := range destinations {
		if c.ID == destinationID {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", menudomain.ErrInvalidDestination, destinationID)
}

// ExecuteReassignment moves every item with transfer, one at a time in order,
// then calls deleteCategory. The first transfer error stops the run with a
// *TransferError; earlier transfers are not undone and the category is kept.
// A deleteCategory error is wrapped in ErrDeleteFailed. Nothing is retried.
func ExecuteReassignment(itemIDs []uuid.UUID, transfer func(itemID uuid.UUID) error, deleteCategory func() error) (transferred int, err error) {
	for i, id := range itemIDs {
		if err := transfer(id); err != nil {
			return transferred, &menudomain.TransferError{
				Index:       i,
				ItemID:      id,
				Transferred: transferred,
				Err:         err,
			}
		}
		transferred++
	}
	if err := deleteCategory(); err != nil {
		return transferred, fmt.Errorf("%w: %w", menudomain.ErrDeleteFailed, err)
	}
	return transferred, nil
}
