// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/whitestar/lifeboat/pkg/metrics"
)

type healthResponse struct {
	Status             string `json:"status"`
	ModelKind          string `json:"model_kind,omitempty"`
	ProbabilityCapable bool   `json:"probability_capable"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	health HealthReporter
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(health HealthReporter) *HealthHandler {
	return &HealthHandler{health: health}
}

// HandleHealth handles GET /healthz requests. The service is healthy once
// the model is loaded; before that it reports 503 so orchestrators hold
// traffic back.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.health.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	kind, capable := h.health.ModelInfo()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:             "ok",
		ModelKind:          kind,
		ProbabilityCapable: capable,
	})
}

// MetricsHandler serves Prometheus metrics.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// Handler returns the scrape endpoint backed by our custom registry.
func (h *MetricsHandler) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
