package artifact

import (
	"context"
	"fmt"
	"math"

	"github.com/whitestar/lifeboat/internal/domain/model"
)

// LogisticRegression is a binary logistic classifier over the standard
// feature vector. When means and stds are present, features are
// standardized before the dot product, matching how the model was trained.
// It exposes class probabilities, indexed by class label.
type LogisticRegression struct {
	weights   []float64
	intercept float64
	means     []float64
	stds      []float64
}

func newLogistic(env envelope) (*LogisticRegression, error) {
	if len(env.Weights) != env.FeatureCount {
		return nil, wrapCorrupt("logistic model has %d weights, want %d", len(env.Weights), env.FeatureCount)
	}
	if len(env.Means) != len(env.Stds) {
		return nil, wrapCorrupt("logistic model has %d means but %d stds", len(env.Means), len(env.Stds))
	}
	if len(env.Means) > 0 {
		if len(env.Means) != env.FeatureCount {
			return nil, wrapCorrupt("logistic model has %d means, want %d", len(env.Means), env.FeatureCount)
		}
		for i, s := range env.Stds {
			if s == 0 {
				return nil, wrapCorrupt("logistic model std %d is zero", i)
			}
		}
	}
	return &LogisticRegression{
		weights:   env.Weights,
		intercept: env.Intercept,
		means:     env.Means,
		stds:      env.Stds,
	}, nil
}

// Predict classifies each feature row at the 0.5 probability threshold.
func (m *LogisticRegression) Predict(_ context.Context, rows [][]float64) ([]int, error) {
	labels := make([]int, len(rows))
	for i, row := range rows {
		p, err := m.probability(i, row)
		if err != nil {
			return nil, err
		}
		if p >= 0.5 {
			labels[i] = model.ClassSurvived
		} else {
			labels[i] = model.ClassDidNotSurvive
		}
	}
	return labels, nil
}

// PredictProba returns [P(did not survive), P(survived)] per row.
func (m *LogisticRegression) PredictProba(_ context.Context, rows [][]float64) ([][]float64, error) {
	probs := make([][]float64, len(rows))
	for i, row := range rows {
		p, err := m.probability(i, row)
		if err != nil {
			return nil, err
		}
		probs[i] = []float64{1 - p, p}
	}
	return probs, nil
}

func (m *LogisticRegression) probability(i int, row []float64) (float64, error) {
	if len(row) != len(m.weights) {
		return 0, fmt.Errorf("row %d has %d features, want %d", i, len(row), len(m.weights))
	}
	z := m.intercept
	for j, w := range m.weights {
		x := row[j]
		if len(m.means) > 0 {
			x = (x - m.means[j]) / m.stds[j]
		}
		z += w * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}
