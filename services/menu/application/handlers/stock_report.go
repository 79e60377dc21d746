package handlers

import (
	"net/http"

	"github.com/ghuser/backoffice/pkg/errhttp"
	"github.com/ghuser/backoffice/pkg/httpx"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
)

// GetStockReportHandler handles GET /stock/report.
type GetStockReportHandler struct {
	svc *appsvcs.Services
}

// NewGetStockReportHandler returns a GetStockReportHandler backed by the given services.
func NewGetStockReportHandler(svc *appsvcs.Services) *GetStockReportHandler {
	return &GetStockReportHandler{svc: svc}
}

// Execute builds the restaurant's stock report.
//
//	@Summary		Stock report
//	@Description	Stock severity of every menu item plus item counts per category. Items with dangling ingredient references carry a problem message.
//	@Tags			stock
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Success		200				{object}	services.StockReport
//	@Failure		400				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/stock/report [get]
func (h *GetStockReportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Stock.Report(r.Context(), restaurantID(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// PostStockSnapshotHandler handles POST /stock/snapshots.
type PostStockSnapshotHandler struct {
	svc *appsvcs.Services
}

// NewPostStockSnapshotHandler returns a PostStockSnapshotHandler backed by the given services.
func NewPostStockSnapshotHandler(svc *appsvcs.Services) *PostStockSnapshotHandler {
	return &PostStockSnapshotHandler{svc: svc}
}

// Execute exports the stock report to object storage.
//
//	@Summary		Export stock snapshot
//	@Tags			stock
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Success		201				{object}	SnapshotResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		503				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/stock/snapshots [post]
func (h *PostStockSnapshotHandler) Execute(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Stock.ExportSnapshot(r.Context(), restaurantID(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, SnapshotResponse{
		Key:         info.Key,
		GeneratedAt: info.GeneratedAt,
		Items:       info.Items,
	})
}

// GetCategorySummaryHandler handles GET /categories/summary.
type GetCategorySummaryHandler struct {
	svc *appsvcs.Services
}

// NewGetCategorySummaryHandler returns a GetCategorySummaryHandler backed by the given services.
func NewGetCategorySummaryHandler(svc *appsvcs.Services) *GetCategorySummaryHandler {
	return &GetCategorySummaryHandler{svc: svc}
}

// Execute returns item counts per category.
//
//	@Summary		Category summary
//	@Tags			categories
//	@Produce		json
//	@Param			restaurantID	path		string	true	"Restaurant ID"
//	@Success		200				{array}		services.CategoryCount
//	@Failure		400				{object}	ErrorResponse
//	@Router			/restaurants/{restaurantID}/categories/summary [get]
func (h *GetCategorySummaryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Stock.CategorySummary(r.Context(), restaurantID(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, counts)
}
