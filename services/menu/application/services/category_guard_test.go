package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/backoffice/pkg/logger"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
	"github.com/ghuser/backoffice/services/menu/domain/models"
	"github.com/ghuser/backoffice/services/menu/internal/menutest"
)

type guardFixture struct {
	rid     uuid.UUID
	store   *menutest.Store
	locker  *menutest.Locker
	summary *fakeSummaryCache
	guard   *CategoryGuard
}

func newGuardFixture() *guardFixture {
	store := menutest.NewStore()
	locker := menutest.NewLocker()
	summary := newFakeSummaryCache()
	executor := NewInlineExecutor(store.MenuItems(), store.Categories())
	return &guardFixture{
		rid:     uuid.New(),
		store:   store,
		locker:  locker,
		summary: summary,
		guard:   NewCategoryGuard(store.MenuItems(), store.Categories(), executor, locker, summary, nil, logger.Nop()),
	}
}

func (f *guardFixture) category(name string) *models.Category {
	return f.store.AddCategory(models.NewCategory(f.rid, models.CategoryName(name)))
}

func (f *guardFixture) item(name string, categoryID uuid.UUID) *models.MenuItem {
	return f.store.AddItem(&models.MenuItem{ID: uuid.New(), RestaurantID: f.rid, Name: name, CategoryID: categoryID})
}

func transferCall(itemID, categoryID uuid.UUID) string {
	return fmt.Sprintf("transfer %s -> %s", itemID, categoryID)
}

func TestCategoryGuard_Check(t *testing.T) {
	f := newGuardFixture()
	ctx := context.Background()
	src := f.category("Old")
	dst := f.category("New")
	f.item("Soup", dst.ID)

	check, err := f.guard.Check(ctx, f.rid, src.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSafeToDelete, check.State)
	assert.Empty(t, check.Affected)
	assert.Empty(t, check.Destinations)

	var ids []uuid.UUID
	for i := range 7 {
		ids = append(ids, f.item(fmt.Sprintf("Dish %d", i), src.ID).ID)
	}
	check, err = f.guard.Check(ctx, f.rid, src.ID)
	require.NoError(t, err)
	assert.Equal(t, StateRequiresTransfer, check.State)
	require.Len(t, check.Affected, 7)
	require.Len(t, check.Destinations, 1)
	assert.Equal(t, dst.ID, check.Destinations[0].ID)
	assert.False(t, check.Blocked())

	shown, remaining := check.Preview()
	require.Len(t, shown, PreviewSize)
	assert.Equal(t, 2, remaining)
	for i, item := range shown {
		assert.Equal(t, ids[i], item.ID)
	}

	_, err = f.guard.Check(ctx, f.rid, uuid.New())
	assert.ErrorIs(t, err, menudomain.ErrCategoryNotFound)

	assert.Empty(t, f.store.Calls(), "Check must not write")
}

func TestCategoryGuard_DeleteTransfersInOrder(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Specials")
	dst := f.category("Mains")
	a := f.item("A", src.ID)
	b := f.item("B", src.ID)
	other := f.item("Other", dst.ID)
	c := f.item("C", src.ID)

	res, err := f.guard.Delete(context.Background(), f.rid, src.ID, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, 3, res.Transferred)
	assert.Equal(t, dst.ID, res.DestinationID)

	assert.Equal(t, []string{
		transferCall(a.ID, dst.ID),
		transferCall(b.ID, dst.ID),
		transferCall(c.ID, dst.ID),
		"delete_category " + src.ID.String(),
	}, f.store.Calls())

	for _, id := range []uuid.UUID{a.ID, b.ID, c.ID, other.ID} {
		assert.Equal(t, dst.ID, f.store.Item(id).CategoryID)
	}
	assert.False(t, f.store.HasCategory(src.ID))
	assert.False(t, f.locker.Held(f.rid, src.ID), "lock must be released")
	assert.Equal(t, 1, f.summary.invalidations)
}

func TestCategoryGuard_TransferFailureStopsRun(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Specials")
	dst := f.category("Mains")
	a := f.item("A", src.ID)
	b := f.item("B", src.ID)
	c := f.item("C", src.ID)
	boom := errors.New("connection reset")
	f.store.UpdateCategoryErr[b.ID] = boom

	res, err := f.guard.Delete(context.Background(), f.rid, src.ID, dst.ID)
	require.Error(t, err)
	assert.Nil(t, res)

	var te *menudomain.TransferError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.Index)
	assert.Equal(t, b.ID, te.ItemID)
	assert.Equal(t, 1, te.Transferred)
	assert.ErrorIs(t, err, menudomain.ErrTransferFailed)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{transferCall(a.ID, dst.ID), transferCall(b.ID, dst.ID)}, f.store.Calls())
	assert.Equal(t, dst.ID, f.store.Item(a.ID).CategoryID, "earlier transfer stays")
	assert.Equal(t, src.ID, f.store.Item(b.ID).CategoryID)
	assert.Equal(t, src.ID, f.store.Item(c.ID).CategoryID)
	assert.True(t, f.store.HasCategory(src.ID), "category must be kept")
	assert.False(t, f.locker.Held(f.rid, src.ID))

	// A fresh run starts over from the check and only moves what is left.
	delete(f.store.UpdateCategoryErr, b.ID)
	res, err = f.guard.Delete(context.Background(), f.rid, src.ID, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Transferred)
	assert.False(t, f.store.HasCategory(src.ID))
}

func TestCategoryGuard_DeleteFailureAfterTransfers(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Specials")
	dst := f.category("Mains")
	a := f.item("A", src.ID)
	boom := errors.New("timeout")
	f.store.DeleteCategoryErr = boom

	_, err := f.guard.Delete(context.Background(), f.rid, src.ID, dst.ID)
	assert.ErrorIs(t, err, menudomain.ErrDeleteFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, dst.ID, f.store.Item(a.ID).CategoryID, "items stay repointed")
	assert.True(t, f.store.HasCategory(src.ID))
	assert.Equal(t, 1, f.summary.invalidations, "counts changed even though the delete failed")
}

func TestCategoryGuard_SafeDelete(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Empty")
	f.category("Mains")

	res, err := f.guard.Delete(context.Background(), f.rid, src.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Transferred)
	assert.Equal(t, uuid.Nil, res.DestinationID)
	assert.Equal(t, []string{"delete_category " + src.ID.String()}, f.store.Calls())
}

func TestCategoryGuard_Blocked(t *testing.T) {
	f := newGuardFixture()
	only := f.category("Everything")
	f.item("A", only.ID)

	check, err := f.guard.Check(context.Background(), f.rid, only.ID)
	require.NoError(t, err)
	assert.True(t, check.Blocked())

	_, err = f.guard.Delete(context.Background(), f.rid, only.ID, uuid.New())
	assert.ErrorIs(t, err, menudomain.ErrGuardBlocked)
	assert.Empty(t, f.store.Calls(), "transfer must never start")
	assert.True(t, f.store.HasCategory(only.ID))
}

func TestCategoryGuard_InvalidDestination(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Specials")
	f.category("Mains")
	f.item("A", src.ID)

	for name, dest := range map[string]uuid.UUID{
		"source":  src.ID,
		"unknown": uuid.New(),
		"missing": uuid.Nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.guard.Delete(context.Background(), f.rid, src.ID, dest)
			assert.ErrorIs(t, err, menudomain.ErrInvalidDestination)
		})
	}
	assert.Empty(t, f.store.Calls())
}

func TestCategoryGuard_SingleFlight(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Specials")
	f.category("Mains")
	ctx := context.Background()

	release, ok, err := f.locker.TryLock(ctx, f.rid, src.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.guard.Delete(ctx, f.rid, src.ID, uuid.Nil)
	assert.ErrorIs(t, err, menudomain.ErrDeletionInProgress)
	assert.Empty(t, f.store.Calls())

	require.NoError(t, release(ctx))
	_, err = f.guard.Delete(ctx, f.rid, src.ID, uuid.Nil)
	assert.NoError(t, err)
}

func TestCategoryGuard_CollaboratorFailureIsOpaque(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Specials")
	boom := errors.New("db down")
	f.store.ListItemsErr = boom

	_, err := f.guard.Delete(context.Background(), f.rid, src.ID, uuid.Nil)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, menudomain.ErrTransferFailed)
	assert.False(t, f.locker.Held(f.rid, src.ID))
}

// cancellingItems cancels the caller's context after the first transfer and
// fails any later call made with a cancelled context.
type cancellingItems struct {
	*menutest.MenuItemRepo
	cancel context.CancelFunc
}

func (r *cancellingItems) UpdateCategory(ctx context.Context, restaurantID, itemID, categoryID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.MenuItemRepo.UpdateCategory(ctx, restaurantID, itemID, categoryID); err != nil {
		return err
	}
	r.cancel()
	return nil
}

func TestCategoryGuard_DeleteSurvivesCallerCancellation(t *testing.T) {
	f := newGuardFixture()
	src := f.category("Specials")
	dst := f.category("Mains")
	a := f.item("A", src.ID)
	b := f.item("B", src.ID)
	c := f.item("C", src.ID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	items := &cancellingItems{MenuItemRepo: f.store.MenuItems(), cancel: cancel}
	executor := NewInlineExecutor(items, f.store.Categories())
	guard := NewCategoryGuard(items, f.store.Categories(), executor, f.locker, f.summary, nil, logger.Nop())

	res, err := guard.Delete(ctx, f.rid, src.ID, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Transferred)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	for _, id := range []uuid.UUID{a.ID, b.ID, c.ID} {
		assert.Equal(t, dst.ID, f.store.Item(id).CategoryID)
	}
	assert.False(t, f.store.HasCategory(src.ID))
	assert.False(t, f.locker.Held(f.rid, src.ID))
	assert.Equal(t, 1, f.summary.invalidations)
}
