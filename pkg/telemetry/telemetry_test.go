package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/backoffice/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:    "menu-test",
		ServiceVersion: "test",
		Environment:    config.EnvTesting,
	}
}

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/plain") {
		t.Fatalf("content-type = %q, want text/plain", ct)
	}
	return rr.Body.String()
}

func TestSetup_ExposesMenuCounters(t *testing.T) {
	ctx := context.Background()
	tel, err := Setup(ctx, testConfig())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})

	tel.Menu.RecordDeletion(ctx, OutcomeBlocked)
	tel.Menu.RecordTransfers(ctx, 3)

	body := scrape(t, tel.MetricsHandler)
	for _, want := range []string{
		"menu_category_deletions",
		`outcome="blocked"`,
		"menu_category_transfers",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestSetup_SeparateRegistries(t *testing.T) {
	ctx := context.Background()
	a, err := Setup(ctx, testConfig())
	if err != nil {
		t.Fatalf("Setup a: %v", err)
	}
	defer a.Shutdown(ctx)
	b, err := Setup(ctx, testConfig())
	if err != nil {
		t.Fatalf("Setup b: %v", err)
	}
	defer b.Shutdown(ctx)

	a.Menu.RecordDeletion(ctx, OutcomeFailed)
	if strings.Contains(scrape(t, b.MetricsHandler), `outcome="failed"`) {
		t.Fatal("second registry saw a counter recorded on the first")
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"http://collector:4318": true,
		"https://otel.internal": true,
		"collector:4318":        false,
		"localhost":             false,
	}
	for endpoint, want := range tests {
		if got := isURL(endpoint); got != want {
			t.Errorf("isURL(%q) = %v, want %v", endpoint, got, want)
		}
	}
}

func TestSetupSentry_EmptyDSN(t *testing.T) {
	if err := SetupSentry(testConfig()); err != nil {
		t.Fatalf("SetupSentry: %v", err)
	}
	// Without an initialized client this must not panic.
	ReportError(context.Background(), errors.New("boom"), map[string]string{"category_id": "x"})
	ReportError(context.Background(), nil, nil)
}
