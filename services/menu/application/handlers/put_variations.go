package handlers

import (
	"net/http"

	"github.com/ghuser/backoffice/pkg/errhttp"
	"github.com/ghuser/backoffice/pkg/httpx"
	pkgvalidator "github.com/ghuser/backoffice/pkg/validator"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
)

// PutVariationsHandler handles PUT /menu-items/{itemID}/variations requests.
type PutVariationsHandler struct {
	svc *appsvcs.Services
}

// NewPutVariationsHandler returns a PutVariationsHandler backed by the given services.
func NewPutVariationsHandler(svc *appsvcs.Services) *PutVariationsHandler {
	return &PutVariationsHandler{svc: svc}
}

// Execute replaces an item's variations.
//
//	@Summary		Save variations
//	@Description	Validates every variation draft and replaces the menu item's variations. Nothing is written if any draft fails.
//	@Tags			variations
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		string					true	"Restaurant ID"
//	@Param			itemID			path		string					true	"Menu item ID"
//	@Param			request			body		SaveVariationsRequest	true	"Variations"
//	@Success		200				{object}	MenuItemVariationsResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/menu-items/{itemID}/variations [put]
func (h *PutVariationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[SaveVariationsRequest](w, r)
	if !ok {
		return
	}

	drafts := make([]appsvcs.VariationDraft, len(req.Variations))
	for i, v := range req.Variations {
		drafts[i] = v.draft()
	}

	item, err := h.svc.Composer.SaveVariations(r.Context(), restaurantID(r), itemID, drafts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, MenuItemVariationsResponse{
		ID:         item.ID,
		Name:       item.Name,
		Variations: item.Variations,
		UpdatedAt:  item.UpdatedAt,
	})
}
