package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// HealthChecker is satisfied by every infrastructure dependency with a Ping
// method: the database pool, RedisClient, EventBus, snapshots.Store and
// TemporalClient.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the dependencies probed by /health. Snapshots and
// Temporal are optional; a nil checker reports "disabled" and does not
// degrade the overall status.
type HealthChecks struct {
	Database  HealthChecker
	Redis     HealthChecker
	EventBus  HealthChecker
	Snapshots HealthChecker
	Temporal  HealthChecker
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	EventBus  string `json:"event_bus"`
	Snapshots string `json:"snapshots"`
	Temporal  string `json:"temporal"`
}

// HealthHandler probes all checkers concurrently. Any unreachable dependency
// turns the response into a 503 with status "degraded".
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		probes := []struct {
			checker HealthChecker
			out     *string
		}{
			{checks.Database, &resp.Database},
			{checks.Redis, &resp.Redis},
			{checks.EventBus, &resp.EventBus},
			{checks.Snapshots, &resp.Snapshots},
			{checks.Temporal, &resp.Temporal},
		}

		var g errgroup.Group
		for _, p := range probes {
			g.Go(func() error {
				*p.out = probeStatus(ctx, p.checker)
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		for _, p := range probes {
			if *p.out == "unreachable" {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}
		JSON(w, status, resp)
	}
}

func probeStatus(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return "disabled"
	}
	if err := c.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}
