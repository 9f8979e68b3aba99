package metric

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_Counters(t *testing.T) {
	r := New(nil)

	r.ConnectionsTotal.Inc()
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
	r.CommandsTotal.WithLabelValues("GET").Inc()

	if got := testutil.ToFloat64(r.ConnectionsTotal); got != 2 {
		t.Errorf("connections_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.ConnectionsActive); got != 1 {
		t.Errorf("connections_active = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.CommandsTotal.WithLabelValues("GET")); got != 1 {
		t.Errorf("commands_total{command=GET} = %v, want 1", got)
	}
}

func TestRegistry_KeyCountSampledOnScrape(t *testing.T) {
	keys := 0.0
	r := New(func() float64 { return keys })

	keys = 7
	if got := testutil.ToFloat64(r.KeysStored); got != 7 {
		t.Errorf("keys_stored = %v, want 7", got)
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	r := New(func() float64 { return 3 })
	r.CommandsTotal.WithLabelValues("SET").Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"keeva_commands_total", "keeva_keys_stored"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
