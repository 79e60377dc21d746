package handlers

import (
	"net/http"

	"github.com/ghuser/backoffice/pkg/errhttp"
	"github.com/ghuser/backoffice/pkg/httpx"
	pkgvalidator "github.com/ghuser/backoffice/pkg/validator"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
)

// PostVariationPreviewHandler handles POST /variations/preview requests.
type PostVariationPreviewHandler struct {
	svc *appsvcs.Services
}

// NewPostVariationPreviewHandler returns a PostVariationPreviewHandler backed by the given services.
func NewPostVariationPreviewHandler(svc *appsvcs.Services) *PostVariationPreviewHandler {
	return &PostVariationPreviewHandler{svc: svc}
}

// Execute composes a draft without saving it.
//
//	@Summary		Preview variation
//	@Description	Composes a variation draft and returns its display lines, price range and stock severity. Validation problems are reported in the problem field rather than failing the request.
//	@Tags			variations
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		string				true	"Restaurant ID"
//	@Param			request			body		VariationRequest	true	"Variation draft"
//	@Success		200				{object}	VariationPreviewResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/variations/preview [post]
func (h *PostVariationPreviewHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[VariationRequest](w, r)
	if !ok {
		return
	}

	preview, err := h.svc.Composer.Preview(r.Context(), restaurantID(r), req.draft())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, newVariationPreviewResponse(preview))
}
