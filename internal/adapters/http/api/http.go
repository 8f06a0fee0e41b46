// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/whitestar/lifeboat/internal/domain/passenger"
	"github.com/whitestar/lifeboat/internal/domain/types"
)

// Predictor runs the prediction pipeline for one passenger.
type Predictor interface {
	Predict(ctx context.Context, raw passenger.Raw) (types.Prediction, error)
}

// HealthReporter exposes readiness and loaded-model details.
type HealthReporter interface {
	Ready() bool
	ModelInfo() (kind string, probabilityCapable bool)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Predictor
	HealthReporter
}

// Server wires HTTP routes for the business API.
type Server struct {
	predictHandler *PredictHandler
	schemaHandler  *SchemaHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	metricsHandler *MetricsHandler
}

// NewServer creates a new API server with all handlers. maxBodyBytes caps
// the accepted request body size; zero or negative falls back to the
// handler default.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBodyBytes int64) *Server {
	return &Server{
		predictHandler: NewPredictHandler(deps, maxBodyBytes),
		schemaHandler:  NewSchemaHandler(),
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		metricsHandler: NewMetricsHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", withMetrics("healthz", s.healthHandler.HandleHealth))
	mux.HandleFunc("/stats", withMetrics("stats", s.statsHandler.HandleStats))
	mux.HandleFunc("/schema", withMetrics("schema", s.schemaHandler.HandleSchema))
	mux.HandleFunc("/predict", withMetrics("predict", s.predictHandler.HandlePredict))
	mux.Handle("/metrics", s.metricsHandler.Handler())
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
