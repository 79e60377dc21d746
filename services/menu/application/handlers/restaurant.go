package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/backoffice/pkg/httpx"
	"github.com/ghuser/backoffice/pkg/logger"
)

type restaurantKey struct{}

// RestaurantScope parses the {restaurantID} route parameter, rejects invalid
// values with 400 and stores the ID on the request context for handlers and
// log lines.
func RestaurantScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.URLParamUUID(r, "restaurantID")
		if err != nil {
			httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		ctx := context.WithValue(r.Context(), restaurantKey{}, id)
		ctx = logger.WithRestaurant(ctx, id.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func restaurantID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(restaurantKey{}).(uuid.UUID)
	return id
}

// pathID parses a UUID route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := httpx.URLParamUUID(r, name)
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return uuid.Nil, false
	}
	return id, true
}
