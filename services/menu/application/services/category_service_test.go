package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
	"github.com/ghuser/backoffice/services/menu/internal/menutest"
)

func TestCategoryService_Create(t *testing.T) {
	store := menutest.NewStore()
	summary := newFakeSummaryCache()
	svc := NewCategoryService(store.Categories(), summary)
	rid := uuid.New()
	ctx := context.Background()

	c, err := svc.Create(ctx, rid, "  Desserts ")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryName("Desserts"), c.Name)
	assert.Equal(t, 1, summary.invalidations)

	_, err = svc.Create(ctx, rid, "Desserts")
	assert.ErrorIs(t, err, menudomain.ErrCategoryAlreadyExists)

	_, err = svc.Create(ctx, rid, "   ")
	assert.ErrorIs(t, err, menudomain.ErrValidation)

	list, err := svc.List(ctx, rid)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
