// Package predict runs the survival prediction flow against a loaded model.
package predict

import (
	"context"
	"fmt"

	"github.com/whitestar/lifeboat/internal/domain/model"
	"github.com/whitestar/lifeboat/internal/domain/passenger"
)

// Default prediction configuration constants.
const (
	defaultFallbackConfidence = 0.8
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithFallbackConfidence sets the confidence attached to predictions when
// the model exposes no usable class probabilities.
func WithFallbackConfidence(v float64) Option {
	return func(e *Engine) {
		if v >= 0 && v <= 1 {
			e.fallbackConfidence = v
		}
	}
}

// Source tells callers where a confidence score came from.
type Source string

// Confidence sources.
const (
	// ConfidenceFromModel marks scores derived from the model's own
	// class probabilities.
	ConfidenceFromModel Source = "model"
	// ConfidenceDefault marks scores that fell back to the configured
	// default because probabilities were unavailable.
	ConfidenceDefault Source = "default"
)

// Result contains the outcome of one prediction.
type Result struct {
	Survived         bool
	Confidence       float64
	ConfidenceSource Source
}

// Engine binds a classifier to the prediction flow. It performs no I/O and
// keeps no per-request state; a single Engine is safe for concurrent use
// when the underlying model is.
type Engine struct {
	model              model.Classifier
	fallbackConfidence float64
}

// NewEngine creates an engine bound to m for its lifetime.
func NewEngine(m model.Classifier, opts ...Option) *Engine {
	e := &Engine{
		model:              m,
		fallbackConfidence: defaultFallbackConfidence,
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Predict assembles the feature vector for attrs, invokes the model, and
// derives the confidence score. The whole operation fails with ErrPrediction
// when the model cannot produce a label; no partial Result is returned.
// Deterministic models yield identical Results for identical attributes.
func (e *Engine) Predict(ctx context.Context, attrs passenger.Attributes) (Result, error) {
	rows := [][]float64{attrs.Vector()}

	labels, err := e.model.Predict(ctx, rows)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	if len(labels) != 1 {
		return Result{}, fmt.Errorf("%w: model returned %d labels for one row", ErrPrediction, len(labels))
	}

	confidence, source := e.confidence(ctx, rows)
	return Result{
		Survived:         labels[0] == model.ClassSurvived,
		Confidence:       confidence,
		ConfidenceSource: source,
	}, nil
}

// confidence derives the score from class probabilities when the model
// exposes them. The capability is probed per call; a model without it, a
// failing PredictProba, or an empty probability row all resolve to the
// configured fallback, reported as ConfidenceDefault.
func (e *Engine) confidence(ctx context.Context, rows [][]float64) (float64, Source) {
	estimator, ok := e.model.(model.ProbabilityEstimator)
	if !ok {
		return e.fallbackConfidence, ConfidenceDefault
	}

	probs, err := estimator.PredictProba(ctx, rows)
	if err != nil || len(probs) == 0 || len(probs[0]) == 0 {
		return e.fallbackConfidence, ConfidenceDefault
	}

	// Max class probability of the first (only) row.
	best := probs[0][0]
	for _, p := range probs[0][1:] {
		if p > best {
			best = p
		}
	}
	return best, ConfidenceFromModel
}
