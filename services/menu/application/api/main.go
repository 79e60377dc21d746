package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/backoffice/pkg/app"
	"github.com/ghuser/backoffice/services/menu/application/handlers"
	appsvcs "github.com/ghuser/backoffice/services/menu/application/services"
)

// MenuRoutes registers menu endpoints on the provided chi router. executor
// runs approved category reassignments; nil runs them in-process.
func MenuRoutes(r chi.Router, a *app.Application, executor appsvcs.ReassignmentExecutor) {
	Register(r, appsvcs.New(a, executor))
}

// Register mounts the menu handlers backed by svcs under /restaurants/{restaurantID}.
func Register(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/restaurants/{restaurantID}", func(r chi.Router) {
		r.Use(handlers.RestaurantScope)

		r.Get("/ingredients/{ingredientID}/stock", handlers.NewGetIngredientStockHandler(svcs).Execute)

		r.Post("/variations/preview", handlers.NewPostVariationPreviewHandler(svcs).Execute)

		r.Route("/menu-items/{itemID}", func(r chi.Router) {
			r.Delete("/", handlers.NewDeleteMenuItemHandler(svcs).Execute)
			r.Get("/stock", handlers.NewGetMenuItemStockHandler(svcs).Execute)
			r.Put("/variations", handlers.NewPutVariationsHandler(svcs).Execute)
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/report", handlers.NewGetStockReportHandler(svcs).Execute)
			r.Post("/snapshots", handlers.NewPostStockSnapshotHandler(svcs).Execute)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handlers.NewListCategoriesHandler(svcs).Execute)
			r.Post("/", handlers.NewPostCategoryHandler(svcs).Execute)
			r.Get("/summary", handlers.NewGetCategorySummaryHandler(svcs).Execute)
			r.Get("/{categoryID}/deletion", handlers.NewGetCategoryDeletionHandler(svcs).Execute)
			r.Delete("/{categoryID}", handlers.NewDeleteCategoryHandler(svcs).Execute)
		})
	})
}
