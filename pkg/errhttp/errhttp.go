// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/backoffice/pkg/httpx"
	"github.com/ghuser/backoffice/pkg/snapshots"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, whose
// message is not echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	httpx.JSONError(w, status, msg)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, menudomain.ErrMenuItemNotFound),
		errors.Is(err, menudomain.ErrCategoryNotFound),
		errors.Is(err, menudomain.ErrIngredientNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, menudomain.ErrCategoryAlreadyExists),
		errors.Is(err, menudomain.ErrGuardBlocked),
		errors.Is(err, menudomain.ErrDeletionInProgress),
		errors.Is(err, menudomain.ErrCategoryInUse):
		return http.StatusConflict // 409
	case errors.Is(err, menudomain.ErrValidation),
		errors.Is(err, menudomain.ErrReference),
		errors.Is(err, menudomain.ErrInvalidDestination):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, menudomain.ErrIndexOutOfRange):
		return http.StatusBadRequest // 400
	case errors.Is(err, menudomain.ErrTransferFailed),
		errors.Is(err, menudomain.ErrDeleteFailed):
		return http.StatusBadGateway // 502
	case errors.Is(err, snapshots.ErrDisabled):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
