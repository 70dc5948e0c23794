package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/v1/items", 200, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/items", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/items", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/items", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/items", "404")))
}

func TestHandlerExposesScanGauge(t *testing.T) {
	m := New()
	active := 3
	m.TrackActiveScanSessions(func() int { return active })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "souschef_scan_sessions_active 3")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.TrackActiveScanSessions(func() int { return 0 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
