package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/backoffice/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

var errDown = errors.New("down")

func healthy() httpx.HealthChecks {
	return httpx.HealthChecks{
		Database: &stubChecker{},
		Redis:    &stubChecker{},
		EventBus: &stubChecker{},
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(c *httpx.HealthChecks)
		wantStatus int
		want       map[string]string
	}{
		{
			name:       "required dependencies up, optional disabled",
			mutate:     func(*httpx.HealthChecks) {},
			wantStatus: http.StatusOK,
			want:       map[string]string{"status": "ok", "database": "ok", "snapshots": "disabled", "temporal": "disabled"},
		},
		{
			name:       "database down",
			mutate:     func(c *httpx.HealthChecks) { c.Database = &stubChecker{err: errDown} },
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "database": "unreachable", "redis": "ok"},
		},
		{
			name:       "redis down",
			mutate:     func(c *httpx.HealthChecks) { c.Redis = &stubChecker{err: errDown} },
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "redis": "unreachable"},
		},
		{
			name:       "event bus down",
			mutate:     func(c *httpx.HealthChecks) { c.EventBus = &stubChecker{err: errDown} },
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "event_bus": "unreachable"},
		},
		{
			name:       "snapshot bucket missing",
			mutate:     func(c *httpx.HealthChecks) { c.Snapshots = &stubChecker{err: errors.New("no such bucket")} },
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "snapshots": "unreachable"},
		},
		{
			name: "temporal enabled and up",
			mutate: func(c *httpx.HealthChecks) {
				c.Temporal = &stubChecker{}
			},
			wantStatus: http.StatusOK,
			want:       map[string]string{"status": "ok", "temporal": "ok"},
		},
		{
			name:       "temporal down",
			mutate:     func(c *httpx.HealthChecks) { c.Temporal = &stubChecker{err: errDown} },
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "temporal": "unreachable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := healthy()
			tt.mutate(&checks)

			rr := httptest.NewRecorder()
			httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

			var resp map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			for k, v := range tt.want {
				assert.Equal(t, v, resp[k], k)
			}
		})
	}
}
