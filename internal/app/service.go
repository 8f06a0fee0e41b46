// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/whitestar/lifeboat/internal/adapters/artifact"
	"github.com/whitestar/lifeboat/internal/domain/model"
	"github.com/whitestar/lifeboat/internal/domain/passenger"
	"github.com/whitestar/lifeboat/internal/domain/predict"
	"github.com/whitestar/lifeboat/internal/domain/types"
	"github.com/whitestar/lifeboat/internal/domain/validate"
	"github.com/whitestar/lifeboat/pkg/logger"
	"github.com/whitestar/lifeboat/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultModelPath          = "model.json"
	defaultFallbackConfidence = 0.8
)

// ErrNotStarted is returned when Predict is called before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns the loaded model and runs the prediction pipeline: validate,
// parse, predict, decorate. The model is loaded exactly once in Start and
// never replaced; after that the pipeline is read-only, so concurrent
// callers need no further coordination.
type Service struct {
	mu sync.RWMutex

	// Core components
	art    *artifact.Artifact
	engine *predict.Engine

	// Configuration
	modelPath          string
	fallbackConfidence float64
	injectedKind       string
	injected           model.Classifier

	// State
	started   bool
	startedAt time.Time
	loadMS    float64

	// Counters
	predictions         atomic.Int64
	survived            atomic.Int64
	didNotSurvive       atomic.Int64
	validationFailures  atomic.Int64
	predictionErrors    atomic.Int64
	confidenceFallbacks atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithModelPath names the artifact file loaded in Start.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithFallbackConfidence sets the confidence attached to predictions when
// the model exposes no class probabilities.
func WithFallbackConfidence(v float64) Option {
	return func(s *Service) {
		if v >= 0 && v <= 1 {
			s.fallbackConfidence = v
		}
	}
}

// WithModel injects an already-loaded model instead of reading an artifact
// from disk. Hosts that manage artifacts themselves, and tests, use this.
func WithModel(kind string, m model.Classifier) Option {
	return func(s *Service) {
		if m != nil {
			s.injectedKind = kind
			s.injected = m
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelPath:          defaultModelPath,
		fallbackConfidence: defaultFallbackConfidence,
		logger:             nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the model artifact and builds the prediction engine. Loading
// is attempted exactly once; a missing or corrupt artifact fails Start and
// the service never serves half-loaded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting prediction service...")

	if s.injected != nil {
		s.art = &artifact.Artifact{Kind: s.injectedKind, Model: s.injected}
	} else {
		loadStart := time.Now()
		art, err := artifact.Load(ctx, s.modelPath)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		s.art = art
		s.loadMS = float64(time.Since(loadStart).Microseconds()) / 1000.0
		metrics.UpdateModelLoadDuration(s.loadMS)
	}
	metrics.UpdateModelInfo(s.art.Kind, s.art.ProbabilityCapable())

	s.engine = predict.NewEngine(
		s.art.Model,
		predict.WithFallbackConfidence(s.fallbackConfidence),
	)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "prediction service started",
		logger.String("modelKind", s.art.Kind),
		logger.Bool("probabilityCapable", s.art.ProbabilityCapable()),
		logger.Float64("fallbackConfidence", s.fallbackConfidence),
	)

	return nil
}

// Stop shuts the service down. Stopping an unstarted service is a no-op.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping prediction service...")

	s.engine = nil
	s.art = nil
	s.started = false

	s.logger.Info(context.Background(), "prediction service stopped")
}

// Predict runs the full pipeline for one passenger: validate the raw input,
// parse it into typed attributes, invoke the model, and decorate the result
// with display strings. Validation failures come back as *validate.Error;
// model failures as predict.ErrPrediction.
func (s *Service) Predict(ctx context.Context, raw passenger.Raw) (types.Prediction, error) {
	s.mu.RLock()
	engine := s.engine
	started := s.started
	s.mu.RUnlock()

	if !started {
		return types.Prediction{}, ErrNotStarted
	}

	start := time.Now()

	if err := validate.Check(raw); err != nil {
		s.validationFailures.Add(1)
		metrics.RecordValidationFailure(failureReason(err))
		s.logger.Debug(ctx, "rejected input",
			logger.String("reason", validate.Reason(err)),
		)
		return types.Prediction{}, err
	}

	attrs, err := passenger.Parse(raw)
	if err != nil {
		// Categorical garbage that validation deliberately accepts is a
		// prediction-stage failure: the model could never consume it.
		s.predictionErrors.Add(1)
		metrics.RecordPredictionError()
		s.logger.Warn(ctx, "unparseable attributes", logger.Err(err))
		return types.Prediction{}, fmt.Errorf("%w: %w", predict.ErrPrediction, err)
	}

	res, err := engine.Predict(ctx, attrs)
	if err != nil {
		s.predictionErrors.Add(1)
		metrics.RecordPredictionError()
		s.logger.Error(ctx, "prediction failed", logger.Err(err))
		return types.Prediction{}, err
	}

	s.predictions.Add(1)
	if res.Survived {
		s.survived.Add(1)
	} else {
		s.didNotSurvive.Add(1)
	}
	if res.ConfidenceSource == predict.ConfidenceDefault {
		s.confidenceFallbacks.Add(1)
		metrics.RecordConfidenceFallback()
	}
	metrics.RecordPrediction(res.Survived)
	metrics.RecordConfidence(res.Confidence)
	metrics.RecordPredictionLatency(float64(time.Since(start).Microseconds()) / 1000.0)

	s.logger.Debug(ctx, "prediction produced",
		logger.Bool("survived", res.Survived),
		logger.Float64("confidence", res.Confidence),
		logger.String("confidenceSource", string(res.ConfidenceSource)),
	)

	return decorate(res, attrs), nil
}

// Ready reports whether the model is loaded and the pipeline can serve.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// ModelInfo returns the loaded artifact kind and probability capability.
func (s *Service) ModelInfo() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.art == nil {
		return "", false
	}
	return s.art.Kind, s.art.ProbabilityCapable()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":             s.started,
		"model_path":          s.modelPath,
		"fallback_confidence": s.fallbackConfidence,
	}

	if s.started {
		stats["model"] = map[string]interface{}{
			"kind":                s.art.Kind,
			"probability_capable": s.art.ProbabilityCapable(),
			"load_ms":             s.loadMS,
		}
		stats["uptime_seconds"] = time.Since(s.startedAt).Seconds()
		stats["predictions"] = s.predictions.Load()
		stats["survived"] = s.survived.Load()
		stats["did_not_survive"] = s.didNotSurvive.Load()
		stats["validation_failures"] = s.validationFailures.Load()
		stats["prediction_errors"] = s.predictionErrors.Load()
		stats["confidence_fallbacks"] = s.confidenceFallbacks.Load()
	}

	return stats
}

// decorate turns an engine result into the wire-facing prediction.
func decorate(res predict.Result, attrs passenger.Attributes) types.Prediction {
	label := types.LabelDidNotSurvive
	if res.Survived {
		label = types.LabelSurvived
	}
	return types.Prediction{
		Survived:         res.Survived,
		Label:            label,
		Confidence:       res.Confidence,
		ConfidenceSource: string(res.ConfidenceSource),
		Passenger: types.PassengerSummary{
			Class:           passenger.ClassName(attrs.Class),
			Sex:             passenger.SexName(attrs.Sex),
			Age:             attrs.Age,
			SiblingsSpouses: attrs.SiblingsSpouses,
			ParentsChildren: attrs.ParentsChildren,
			Fare:            attrs.Fare,
			EmbarkationPort: passenger.PortName(attrs.EmbarkationPort),
		},
	}
}

// failureReason maps a validation error to its metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, validate.ErrMissingField):
		return "missing_field"
	case errors.Is(err, validate.ErrInvalidAge):
		return "invalid_age"
	case errors.Is(err, validate.ErrInvalidFare):
		return "invalid_fare"
	default:
		return "unknown"
	}
}
