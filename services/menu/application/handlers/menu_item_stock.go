package handlers

import (
	"net/http"

	"github.com/ghuser/backoffice/pkg/errhttp"
	"github.com/ghuser/backoffice/pkg/httpx"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
)

// GetMenuItemStockHandler handles GET /menu-items/{itemID}/stock.
type GetMenuItemStockHandler struct {
	svc *appsvcs.Services
}

// NewGetMenuItemStockHandler returns a GetMenuItemStockHandler backed by the given services.
func NewGetMenuItemStockHandler(svc *appsvcs.Services) *GetMenuItemStockHandler {
	return &GetMenuItemStockHandler{svc: svc}
}

// Execute returns the stock rollup of one menu item.
//
//	@Summary		Menu item stock level
//	@Description	Worst stock severity across the item's variations. Custom ingredient lines never affect the result.
//	@Tags			stock
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Param			itemID			path		string	true	"Menu item ID"
//	@Success		200				{object}	services.ItemStock
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/menu-items/{itemID}/stock [get]
func (h *GetMenuItemStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	stock, err := h.svc.Stock.ItemStock(r.Context(), restaurantID(r), itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stock)
}

// DeleteMenuItemHandler handles DELETE /menu-items/{itemID}.
type DeleteMenuItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteMenuItemHandler returns a DeleteMenuItemHandler backed by the given services.
func NewDeleteMenuItemHandler(svc *appsvcs.Services) *DeleteMenuItemHandler {
	return &DeleteMenuItemHandler{svc: svc}
}

// Execute deletes a menu item.
//
//	@Summary		Delete menu item
//	@Tags			menu-items
//	@Param			restaurantID	path	string	true	"Restaurant ID"
//	@Param			itemID			path	string	true	"Menu item ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/menu-items/{itemID} [delete]
func (h *DeleteMenuItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.svc.MenuItems.Delete(r.Context(), restaurantID(r), itemID); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
