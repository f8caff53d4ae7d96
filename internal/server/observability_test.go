// Tests for the observability HTTP endpoints
package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

type fakeReadiness struct {
	err   error
	count int
}

func (f fakeReadiness) Available() bool      { return f.err == nil }
func (f fakeReadiness) Err() error           { return f.err }
func (f fakeReadiness) FullRecordCount() int { return f.count }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	h := NewHandler(prometheus.NewRegistry(), fakeReadiness{count: 3})

	rec := get(t, h, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestReady(t *testing.T) {
	h := NewHandler(prometheus.NewRegistry(), fakeReadiness{count: 12})

	rec := get(t, h, "/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"records":12`) {
		t.Errorf("Expected record count in body, got %s", rec.Body.String())
	}
}

func TestReadyUnavailable(t *testing.T) {
	h := NewHandler(prometheus.NewRegistry(), fakeReadiness{err: errors.New("decode error")})

	rec := get(t, h, "/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "decode error") {
		t.Errorf("Expected load error in body, got %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "predators_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	rec := get(t, NewHandler(reg, fakeReadiness{}), "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "predators_test_total 1") {
		t.Errorf("Expected counter in exposition, got %s", rec.Body.String())
	}
}
