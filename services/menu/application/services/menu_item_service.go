package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/services/menu/domain/repositories"
)

// MenuItemService handles menu item operations that are not composition.
type MenuItemService struct {
	repo    repositories.MenuItemRepository
	summary SummaryCache
}

// NewMenuItemService returns a MenuItemService. summary may be nil.
func NewMenuItemService(repo repositories.MenuItemRepository, summary SummaryCache) *MenuItemService {
	return &MenuItemService{repo: repo, summary: summary}
}

// Delete removes an item. Returns ErrMenuItemNotFound if absent.
func (s *MenuItemService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, restaurantID, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if s.summary != nil {
		_ = s.summary.Invalidate(context.WithoutCancel(ctx), restaurantID)
	}
	return nil
}
