package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/backoffice/pkg/logger"
	"github.com/ghuser/backoffice/services/menu/application/api"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
	"github.com/ghuser/backoffice/services/menu/domain/models"
	domainsvcs "github.com/ghuser/backoffice/services/menu/domain/services"
	"github.com/ghuser/backoffice/services/menu/internal/menutest"
)

type fixture struct {
	rid    uuid.UUID
	store  *menutest.Store
	router http.Handler
}

func newFixture() *fixture {
	store := menutest.NewStore()
	ingredients, items, categories := store.Ingredients(), store.MenuItems(), store.Categories()
	log := logger.Nop()
	svcs := &appsvcs.Services{
		Composer:   appsvcs.NewComposerService(ingredients, items, nil, log),
		Stock:      appsvcs.NewStockService(ingredients, items, categories, nil, nil, log),
		Categories: appsvcs.NewCategoryService(categories, nil),
		MenuItems:  appsvcs.NewMenuItemService(items, nil),
		Guard: appsvcs.NewCategoryGuard(items, categories,
			appsvcs.NewInlineExecutor(items, categories), menutest.NewLocker(), nil, nil, log),
	}

	r := chi.NewRouter()
	api.Register(r, svcs)
	return &fixture{rid: uuid.New(), store: store, router: r}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/restaurants/"+f.rid.String()+path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, "/restaurants/"+f.rid.String()+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) ingredient(q, th int64) *models.Ingredient {
	return f.store.AddIngredient(&models.Ingredient{
		ID:             uuid.New(),
		RestaurantID:   f.rid,
		Name:           "Flour",
		Unit:           "g",
		QuantityOnHand: decimal.NewFromInt(q),
		Threshold:      decimal.NewFromInt(th),
	})
}

func (f *fixture) category(name string) *models.Category {
	return f.store.AddCategory(models.NewCategory(f.rid, models.CategoryName(name)))
}

func (f *fixture) item(name string, categoryID uuid.UUID, variations ...models.Variation) *models.MenuItem {
	return f.store.AddItem(&models.MenuItem{
		ID:           uuid.New(),
		RestaurantID: f.rid,
		Name:         name,
		CategoryID:   categoryID,
		Variations:   variations,
	})
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), rr.Body.String())
	return v
}

func TestRestaurantScope_RejectsInvalidID(t *testing.T) {
	f := newFixture()
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/restaurants/not-a-uuid/stock/report", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetIngredientStock(t *testing.T) {
	f := newFixture()
	ing := f.ingredient(105, 100)

	rr := f.do(t, http.MethodGet, "/ingredients/"+ing.ID.String()+"/stock", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decode[map[string]any](t, rr)
	assert.Equal(t, "warning", body["severity"])
	assert.Equal(t, "105", body["quantity_on_hand"])

	rr = f.do(t, http.MethodGet, "/ingredients/"+uuid.NewString()+"/stock", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, http.MethodGet, "/ingredients/abc/stock", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostVariationPreview(t *testing.T) {
	f := newFixture()
	low := f.ingredient(1, 10)

	rr := f.do(t, http.MethodPost, "/variations/preview", `{
		"name": "Large",
		"price": "7.5",
		"usages": [
			{"ingredient_id": "`+low.ID.String()+`", "quantity_used": "200"},
			{"name": "parsley", "quantity_original_text": "a handful"}
		]
	}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decode[map[string]any](t, rr)
	assert.Equal(t, "$7.50", body["price_range"])
	assert.Equal(t, "critical", body["severity"])
	assert.NotContains(t, body, "problem")

	lines := body["lines"].([]any)
	require.Len(t, lines, 2)
	first, second := lines[0].(map[string]any), lines[1].(map[string]any)
	assert.Equal(t, "200 g", first["display"])
	assert.Equal(t, "Flour", first["name"])
	assert.Equal(t, "critical", first["severity"])
	assert.Equal(t, "a handful", second["display"])
	assert.NotContains(t, second, "severity")
}

func TestPostVariationPreview_ReportsProblem(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodPost, "/variations/preview", `{"name": "", "usages": []}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decode[map[string]any](t, rr)
	assert.NotEmpty(t, body["problem"])
	assert.Equal(t, domainsvcs.NoPrice, body["price_range"])
}

func TestPostVariationPreview_Errors(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"negative quantity", `{"name":"x","usages":[{"name":"a","quantity_used":"-1"}]}`, http.StatusUnprocessableEntity},
		{"bad mode", `{"name":"x","usages":[{"mode":"both"}]}`, http.StatusUnprocessableEntity},
		{"unknown ingredient", `{"name":"x","usages":[{"ingredient_id":"` + uuid.NewString() + `"}]}`, http.StatusUnprocessableEntity},
		{"tracked without ingredient", `{"name":"x","usages":[{"mode":"tracked"}]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodPost, "/variations/preview", tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestPutVariations(t *testing.T) {
	f := newFixture()
	ing := f.ingredient(500, 10)
	item := f.item("Pancakes", uuid.Nil)

	rr := f.do(t, http.MethodPut, "/menu-items/"+item.ID.String()+"/variations", `{"variations": [
		{"name": "Short stack", "price": "6", "cost": "1.20",
		 "usages": [{"ingredient_id": "`+ing.ID.String()+`", "quantity_used": "150"}]}
	]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	saved := f.store.Item(item.ID)
	require.Len(t, saved.Variations, 1)
	assert.Equal(t, "Short stack", saved.Variations[0].Name)
	id, ok := saved.Variations[0].Usages[0].IngredientID()
	assert.True(t, ok)
	assert.Equal(t, ing.ID, id)
}

func TestPutVariations_InvalidDraftWritesNothing(t *testing.T) {
	f := newFixture()
	item := f.item("Pancakes", uuid.Nil)

	rr := f.do(t, http.MethodPut, "/menu-items/"+item.ID.String()+"/variations", `{"variations": [
		{"name": "Ok", "usages": [{"name": "egg", "unit": "pc", "quantity_used": "1"}]},
		{"name": "No usages", "usages": []}
	]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())
	assert.Empty(t, f.store.Calls())

	rr = f.do(t, http.MethodPut, "/menu-items/"+uuid.NewString()+"/variations", `{"variations": []}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetMenuItemStock(t *testing.T) {
	f := newFixture()
	ok := f.ingredient(500, 10)
	usage, err := models.NewTrackedUsage(ok, decimal.NewFromInt(1))
	require.NoError(t, err)
	item := f.item("Bread", uuid.Nil, models.Variation{ID: uuid.New(), Name: "Loaf", Usages: []models.IngredientUsage{usage}})

	rr := f.do(t, http.MethodGet, "/menu-items/"+item.ID.String()+"/stock", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decode[map[string]any](t, rr)
	assert.Equal(t, "good", body["severity"])

	dangling, err := models.NewTrackedUsage(&models.Ingredient{ID: uuid.New(), Name: "gone"}, decimal.NewFromInt(1))
	require.NoError(t, err)
	broken := f.item("Ghost", uuid.Nil, models.Variation{ID: uuid.New(), Name: "x", Usages: []models.IngredientUsage{dangling}})
	rr = f.do(t, http.MethodGet, "/menu-items/"+broken.ID.String()+"/stock", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestDeleteMenuItem(t *testing.T) {
	f := newFixture()
	item := f.item("Soup", uuid.Nil)

	rr := f.do(t, http.MethodDelete, "/menu-items/"+item.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Nil(t, f.store.Item(item.ID))

	rr = f.do(t, http.MethodDelete, "/menu-items/"+item.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetStockReportAndSummary(t *testing.T) {
	f := newFixture()
	mains := f.category("Mains")
	f.item("Steak", mains.ID)
	f.item("Fries", uuid.Nil)

	rr := f.do(t, http.MethodGet, "/stock/report", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	report := decode[appsvcs.StockReport](t, rr)
	assert.Len(t, report.Items, 2)
	assert.Equal(t, f.rid, report.RestaurantID)

	rr = f.do(t, http.MethodGet, "/categories/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rows := decode[[]map[string]any](t, rr)
	require.Len(t, rows, 2)
	assert.Equal(t, "Mains", rows[0]["name"])
	assert.Equal(t, "Uncategorized", rows[1]["name"])
}

func TestPostStockSnapshot_Disabled(t *testing.T) {
	f := newFixture()
	rr := f.do(t, http.MethodPost, "/stock/snapshots", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestCategories_CreateAndList(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodPost, "/categories", `{"name": "  Desserts "}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[map[string]any](t, rr)
	assert.Equal(t, "Desserts", created["name"])

	rr = f.do(t, http.MethodPost, "/categories", `{"name": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = f.do(t, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]map[string]any](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, created["id"], list[0]["id"])
}

func TestCategoryDeletion_Flow(t *testing.T) {
	f := newFixture()
	old := f.category("Old")
	dst := f.category("New")
	var moved []uuid.UUID
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		moved = append(moved, f.item(name, old.ID).ID)
	}

	rr := f.do(t, http.MethodGet, "/categories/"+old.ID.String()+"/deletion", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	check := decode[map[string]any](t, rr)
	assert.Equal(t, "requires_transfer", check["state"])
	assert.Equal(t, false, check["blocked"])
	assert.EqualValues(t, 7, check["affected_count"])
	assert.Len(t, check["preview"], 5)
	assert.EqualValues(t, 2, check["remaining"])
	assert.Len(t, check["destinations"], 1)

	rr = f.do(t, http.MethodDelete, "/categories/"+old.ID.String(), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "destination is required")

	rr = f.do(t, http.MethodDelete, "/categories/"+old.ID.String()+"?destination_id=nope", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodDelete, "/categories/"+old.ID.String()+"?destination_id="+old.ID.String(), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "source is not a destination")

	rr = f.do(t, http.MethodDelete, "/categories/"+old.ID.String()+"?destination_id="+dst.ID.String(), "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decode[map[string]any](t, rr)
	assert.Equal(t, "done", res["state"])
	assert.EqualValues(t, 7, res["transferred"])
	assert.Equal(t, dst.ID.String(), res["destination_id"])

	assert.False(t, f.store.HasCategory(old.ID))
	for _, id := range moved {
		assert.Equal(t, dst.ID, f.store.Item(id).CategoryID)
	}

	rr = f.do(t, http.MethodGet, "/categories/"+old.ID.String()+"/deletion", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCategoryDeletion_BlockedAndFailures(t *testing.T) {
	f := newFixture()
	only := f.category("Only")
	f.item("Lonely", only.ID)

	rr := f.do(t, http.MethodGet, "/categories/"+only.ID.String()+"/deletion", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["blocked"])

	rr = f.do(t, http.MethodDelete, "/categories/"+only.ID.String(), "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	dst := f.category("Other")
	stuck := f.item("Stuck", only.ID)
	f.store.UpdateCategoryErr[stuck.ID] = errors.New("connection reset")

	rr = f.do(t, http.MethodDelete, "/categories/"+only.ID.String()+"?destination_id="+dst.ID.String(), "")
	assert.Equal(t, http.StatusBadGateway, rr.Code, rr.Body.String())
	assert.True(t, f.store.HasCategory(only.ID))
}

func TestCategoryDeletion_SafeDelete(t *testing.T) {
	f := newFixture()
	empty := f.category("Empty")

	rr := f.do(t, http.MethodDelete, "/categories/"+empty.ID.String(), "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decode[map[string]any](t, rr)
	assert.EqualValues(t, 0, res["transferred"])
	assert.NotContains(t, res, "destination_id")
	assert.False(t, f.store.HasCategory(empty.ID))
}
