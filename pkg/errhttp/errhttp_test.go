package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/backoffice/pkg/snapshots"
	menudomain "github.com/ghuser/backoffice/services/menu/domain"
)

func TestWriteError(t *testing.T) {
	transfer := &menudomain.TransferError{Index: 1, ItemID: uuid.New(), Transferred: 1, Err: errors.New("timeout")}
	internal := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"item not found", menudomain.ErrMenuItemNotFound, http.StatusNotFound, menudomain.ErrMenuItemNotFound.Error()},
		{"category not found", menudomain.ErrCategoryNotFound, http.StatusNotFound, menudomain.ErrCategoryNotFound.Error()},
		{"ingredient not found", fmt.Errorf("get stock: %w", menudomain.ErrIngredientNotFound), http.StatusNotFound, ""},
		{"duplicate category", menudomain.ErrCategoryAlreadyExists, http.StatusConflict, ""},
		{"guard blocked", menudomain.ErrGuardBlocked, http.StatusConflict, ""},
		{"deletion in progress", menudomain.ErrDeletionInProgress, http.StatusConflict, ""},
		{"category in use", menudomain.ErrCategoryInUse, http.StatusConflict, ""},
		{"missing name", menudomain.ErrNameRequired, http.StatusUnprocessableEntity, ""},
		{"no ingredients", menudomain.ErrIngredientsRequired, http.StatusUnprocessableEntity, ""},
		{"dangling ingredient", menudomain.ErrUnknownIngredient, http.StatusUnprocessableEntity, ""},
		{"bad destination", menudomain.ErrInvalidDestination, http.StatusUnprocessableEntity, ""},
		{"bad category name", fmt.Errorf("create: %w", menudomain.ErrInvalidCategoryName), http.StatusUnprocessableEntity, ""},
		{"index out of range", menudomain.ErrIndexOutOfRange, http.StatusBadRequest, ""},
		{"delete failed", fmt.Errorf("%w: %w", menudomain.ErrDeleteFailed, errors.New("timeout")), http.StatusBadGateway, ""},
		{"partial transfer", transfer, http.StatusBadGateway, transfer.Error()},
		{"snapshots disabled", snapshots.ErrDisabled, http.StatusServiceUnavailable, ""},
		{"internal error is hidden", internal, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)},
		{"wrapped internal error is hidden", fmt.Errorf("load menu: %w", internal), http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["error"])
			}
			assert.NotContains(t, body["error"], "10.0.0.5")
		})
	}
}
