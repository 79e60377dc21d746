package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/services/menu/domain/models"
	"github.com/ghuser/backoffice/services/menu/domain/repositories"
)

// CategoryService creates and lists categories. Deletion goes through CategoryGuard.
type CategoryService struct {
	repo    repositories.CategoryRepository
	summary SummaryCache
}

// NewCategoryService returns a CategoryService. summary may be nil.
func NewCategoryService(repo repositories.CategoryRepository, summary SummaryCache) *CategoryService {
	return &CategoryService{repo: repo, summary: summary}
}

// Create validates and persists a category. Returns ErrCategoryAlreadyExists
// when the restaurant already has one with that name.
func (s *CategoryService) Create(ctx context.Context, restaurantID uuid.UUID, name string) (*models.Category, error) {
	categoryName, err := models.NewCategoryName(name)
	if err != nil {
		return nil, err
	}

	c := models.NewCategory(restaurantID, categoryName)
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	if s.summary != nil {
		_ = s.summary.Invalidate(context.WithoutCancel(ctx), restaurantID)
	}
	return c, nil
}

// List returns the restaurant's categories.
func (s *CategoryService) List(ctx context.Context, restaurantID uuid.UUID) ([]*models.Category, error) {
	categories, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
