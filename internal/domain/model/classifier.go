// Package model defines the capabilities expected from trained classifiers.
package model

import "context"

// Class labels produced by survival classifiers.
const (
	ClassDidNotSurvive = 0
	ClassSurvived      = 1
)

// Classifier is the minimal capability every loaded model provides.
// Predict consumes feature rows and returns one class label per row.
type Classifier interface {
	Predict(ctx context.Context, rows [][]float64) ([]int, error)
}

// ProbabilityEstimator is the optional capability of exposing per-class
// probabilities. Implementations return one row per input row, indexed by
// class label. Callers discover it by type assertion on a Classifier.
type ProbabilityEstimator interface {
	PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error)
}
