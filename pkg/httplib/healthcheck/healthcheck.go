package healthcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// LivenessPath answers as long as the process serves HTTP.
	LivenessPath = "/health"
	// ReadinessPath answers 200 only when every registered Checker passes.
	ReadinessPath = "/ready"
)

// Report is the result of one readiness check.
type Report interface {
	IsHealthy() bool
}

// Checker produces a readiness Report.
type Checker func(ctx context.Context) Report

// HealthCheck is the health check handler.
type HealthCheck struct {
	checkers map[string]Checker
	timeout  time.Duration
}

// New creates a HealthCheck whose readiness checks run with the given timeout.
func New(timeout time.Duration) *HealthCheck {
	return &HealthCheck{
		checkers: make(map[string]Checker),
		timeout:  timeout,
	}
}

// Register adds a named readiness checker.
func (hc *HealthCheck) Register(name string, checker Checker) *HealthCheck {
	hc.checkers[name] = checker
	return hc
}

// Handler is used to control the flow of GET /health and GET /ready
func (hc *HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		switch {
		case IsHealthCheckRequest(r):
			hc.ServeHTTP(w, r)
		case IsReadinessRequest(r):
			hc.ServeReady(w, r)
		default:
			h.ServeHTTP(w, r)
		}
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc *HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// ServeReady runs every checker and writes their reports as JSON.
func (hc *HealthCheck) ServeReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if hc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.timeout)
		defer cancel()
	}

	status := http.StatusOK
	reports := make(map[string]Report, len(hc.checkers))
	for name, check := range hc.checkers {
		report := check(ctx)
		if report == nil || !report.IsHealthy() {
			status = http.StatusServiceUnavailable
		}
		reports[name] = report
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reports)
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == LivenessPath
}

// IsReadinessRequest is used to check if the request is a readiness request
func IsReadinessRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == ReadinessPath
}
