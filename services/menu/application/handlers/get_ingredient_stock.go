package handlers

import (
	"net/http"

	"github.com/ghuser/backoffice/pkg/errhttp"
	"github.com/ghuser/backoffice/pkg/httpx"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
)

// GetIngredientStockHandler handles GET /ingredients/{ingredientID}/stock.
type GetIngredientStockHandler struct {
	svc *appsvcs.Services
}

// NewGetIngredientStockHandler returns a GetIngredientStockHandler backed by the given services.
func NewGetIngredientStockHandler(svc *appsvcs.Services) *GetIngredientStockHandler {
	return &GetIngredientStockHandler{svc: svc}
}

// Execute classifies one ingredient.
//
//	@Summary		Ingredient stock level
//	@Description	Classifies an ingredient's on-hand quantity against its reorder threshold
//	@Tags			stock
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Param			ingredientID	path		string	true	"Ingredient ID"
//	@Success		200				{object}	IngredientStockResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/ingredients/{ingredientID}/stock [get]
func (h *GetIngredientStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ingredientID, ok := pathID(w, r, "ingredientID")
	if !ok {
		return
	}

	stock, err := h.svc.Stock.IngredientStock(r.Context(), restaurantID(r), ingredientID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	ing := stock.Ingredient
	httpx.JSON(w, http.StatusOK, IngredientStockResponse{
		ID:             ing.ID,
		Name:           ing.Name,
		Unit:           ing.Unit,
		QuantityOnHand: ing.QuantityOnHand.String(),
		Threshold:      ing.Threshold.String(),
		Severity:       stock.Severity,
	})
}
