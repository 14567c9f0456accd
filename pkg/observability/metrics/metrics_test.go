package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistry_RegisterAndGather(t *testing.T) {
	r := NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter_total",
		Help: "test counter",
	})
	if err := r.Register(counter); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	counter.Inc()

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "test_counter_total" {
			found = true
		}
	}
	if !found {
		t.Error("registered counter missing from gathered families")
	}

	if !r.Unregister(counter) {
		t.Error("Unregister() = false for a registered collector")
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dup_counter_total",
		Help: "duplicate",
	})
	if err := r.Register(counter); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	if err := r.Register(counter); err == nil {
		t.Error("second Register() of the same collector must fail")
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	qm := NewQueryMetrics()
	r.MustRegister(qm.Collectors()...)
	qm.ObserveQuery("postgres", ModeWindow, 5*time.Millisecond, 10)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("handler status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "querykit_query_duration_seconds") {
		t.Error("exposition missing query duration metric")
	}
	if !strings.Contains(body, "querykit_query_rows") {
		t.Error("exposition missing query rows metric")
	}
	// Go runtime collectors come with the registry.
	if !strings.Contains(body, "go_goroutines") {
		t.Error("exposition missing runtime collectors")
	}
}

func TestQueryMetrics_Observe(t *testing.T) {
	r := NewRegistry()
	qm := NewQueryMetrics()
	r.MustRegister(qm.Collectors()...)

	qm.ObserveQuery("postgres", ModeWindow, 12*time.Millisecond, 10)
	qm.ObserveQuery("mysql", ModeFallback, 20*time.Millisecond, 5)
	qm.ObserveQuery("sqlite", ModeUnpaginated, time.Millisecond, 25)
	qm.ObserveError("postgres", ModeWindow)

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	byName := map[string]bool{}
	for _, mf := range families {
		byName[mf.GetName()] = true
	}
	for _, name := range []string{
		"querykit_query_duration_seconds",
		"querykit_query_rows",
		"querykit_query_errors_total",
	} {
		if !byName[name] {
			t.Errorf("metric %s not gathered", name)
		}
	}
}
