package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveSync(t *testing.T) {
	syncedAt := time.Unix(1714557600, 0)

	testCases := []struct {
		name     string
		observe  func(m *Metrics)
		assertFn func(t *testing.T, m *Metrics)
	}{
		{
			name: "success updates stored gauge",
			observe: func(m *Metrics) {
				m.ObserveSync(ResultSuccess, 200*time.Millisecond, 10, syncedAt)
			},
			assertFn: func(t *testing.T, m *Metrics) {
				assert.Equal(t, float64(1), testutil.ToFloat64(m.syncTotal.WithLabelValues(ResultSuccess)))
				assert.Equal(t, float64(10), testutil.ToFloat64(m.tickersStored))
				assert.Equal(t, float64(1714557600), testutil.ToFloat64(m.lastSyncedAt))
			},
		},
		{
			name: "failure keeps previous gauges",
			observe: func(m *Metrics) {
				m.ObserveSync(ResultSuccess, time.Second, 7, syncedAt)
				m.ObserveSync(ResultFailure, time.Second, 0, time.Time{})
			},
			assertFn: func(t *testing.T, m *Metrics) {
				assert.Equal(t, float64(1), testutil.ToFloat64(m.syncTotal.WithLabelValues(ResultFailure)))
				assert.Equal(t, float64(1), testutil.ToFloat64(m.syncTotal.WithLabelValues(ResultSuccess)))
				assert.Equal(t, float64(7), testutil.ToFloat64(m.tickersStored))
				assert.Equal(t, float64(1714557600), testutil.ToFloat64(m.lastSyncedAt))
			},
		},
		{
			name: "publish errors",
			observe: func(m *Metrics) {
				m.IncPublishErrors()
				m.IncPublishErrors()
			},
			assertFn: func(t *testing.T, m *Metrics) {
				assert.Equal(t, float64(2), testutil.ToFloat64(m.publishErrors))
			},
		},
		{
			name: "http requests",
			observe: func(m *Metrics) {
				m.ObserveHTTP(http.MethodGet, "/tickers", http.StatusOK, 5*time.Millisecond)
				m.ObserveHTTP(http.MethodGet, "/tickers", http.StatusOK, 5*time.Millisecond)
				m.ObserveHTTP(http.MethodGet, "/fetch-data", http.StatusInternalServerError, time.Second)
			},
			assertFn: func(t *testing.T, m *Metrics) {
				assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/tickers", "200")))
				assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/fetch-data", "500")))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(DefaultConfig())
			tc.observe(m)
			tc.assertFn(t, m)
		})
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSync(ResultSuccess, time.Second, 1, time.Now())
		m.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Second)
		m.IncPublishErrors()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(DefaultConfig())
	m.ObserveSync(ResultSuccess, time.Second, 10, time.Now())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `hodlinfo_tickers_sync_total{result="success"} 1`))
	assert.True(t, strings.Contains(body, "hodlinfo_tickers_stored 10"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
