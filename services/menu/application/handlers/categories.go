package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/pkg/errhttp"
	"github.com/ghuser/backoffice/pkg/httpx"
	pkgvalidator "github.com/ghuser/backoffice/pkg/validator"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
)

// PostCategoryHandler handles POST /categories requests.
type PostCategoryHandler struct {
	svc *appsvcs.Services
}

// NewPostCategoryHandler returns a PostCategoryHandler backed by the given services.
func NewPostCategoryHandler(svc *appsvcs.Services) *PostCategoryHandler {
	return &PostCategoryHandler{svc: svc}
}

// Execute creates a category.
//
//	@Summary		Create category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			restaurantID	path		string					true	"Restaurant ID"
//	@Param			request			body		CreateCategoryRequest	true	"Category creation request"
//	@Success		201				{object}	CategoryResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/categories [post]
func (h *PostCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateCategoryRequest](w, r)
	if !ok {
		return
	}

	c, err := h.svc.Categories.Create(r.Context(), restaurantID(r), req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newCategoryResponse(c))
}

// ListCategoriesHandler handles GET /categories.
type ListCategoriesHandler struct {
	svc *appsvcs.Services
}

// NewListCategoriesHandler returns a ListCategoriesHandler backed by the given services.
func NewListCategoriesHandler(svc *appsvcs.Services) *ListCategoriesHandler {
	return &ListCategoriesHandler{svc: svc}
}

// Execute lists the restaurant's categories.
//
//	@Summary		List categories
//	@Tags			categories
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Success		200				{array}		CategoryResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/categories [get]
func (h *ListCategoriesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories.List(r.Context(), restaurantID(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = newCategoryResponse(c)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// GetCategoryDeletionHandler handles GET /categories/{categoryID}/deletion.
type GetCategoryDeletionHandler struct {
	svc *appsvcs.Services
}

// NewGetCategoryDeletionHandler returns a GetCategoryDeletionHandler backed by the given services.
func NewGetCategoryDeletionHandler(svc *appsvcs.Services) *GetCategoryDeletionHandler {
	return &GetCategoryDeletionHandler{svc: svc}
}

// Execute reports what deleting a category would involve.
//
//	@Summary		Check category deletion
//	@Description	Lists the menu items still in the category (first five plus a remaining count) and the categories they can be moved to.
//	@Tags			categories
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Param			categoryID		path		string	true	"Category ID"
//	@Success		200				{object}	DeletionCheckResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/categories/{categoryID}/deletion [get]
func (h *GetCategoryDeletionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}

	check, err := h.svc.Guard.Check(r.Context(), restaurantID(r), categoryID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newDeletionCheckResponse(check))
}

// DeleteCategoryHandler handles DELETE /categories/{categoryID}.
type DeleteCategoryHandler struct {
	svc *appsvcs.Services
}

// NewDeleteCategoryHandler returns a DeleteCategoryHandler backed by the given services.
func NewDeleteCategoryHandler(svc *appsvcs.Services) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{svc: svc}
}

// Execute deletes a category, first moving its items to destination_id.
//
//	@Summary		Delete category
//	@Description	Deletes the category. When menu items still reference it, destination_id is required and every item is moved there before the delete. A failed run can be retried with the same destination.
//	@Tags			categories
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Param			categoryID		path		string	true	"Category ID"
//	@Param			destination_id	query		string	false	"Category receiving the affected items"
//	@Success		200				{object}	DeletionResultResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/categories/{categoryID} [delete]
func (h *DeleteCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}

	destinationID := uuid.Nil
	if raw := r.URL.Query().Get("destination_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid destination_id"})
			return
		}
		destinationID = id
	}

	res, err := h.svc.Guard.Delete(r.Context(), restaurantID(r), categoryID, destinationID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := DeletionResultResponse{
		CategoryID:  res.CategoryID,
		State:       string(res.State),
		Transferred: res.Transferred,
	}
	if res.DestinationID != uuid.Nil {
		resp.DestinationID = &res.DestinationID
	}
	httpx.JSON(w, http.StatusOK, resp)
}
