// Package artifact loads trained model artifacts from disk.
//
// An artifact is a single JSON file with a "kind" discriminator. The read is
// scoped to Load: the file is opened, decoded, validated, and closed; nothing
// retains the handle and the returned model never changes afterwards.
package artifact

import (
	"context"
	"encoding/json"
	"os"

	"github.com/whitestar/lifeboat/internal/domain/model"
	"github.com/whitestar/lifeboat/internal/domain/passenger"
)

// Supported artifact kinds.
const (
	KindDecisionTree = "decision_tree"
	KindLogistic     = "logistic"
)

// Artifact couples a loaded model with its descriptive metadata.
type Artifact struct {
	Kind  string
	Model model.Classifier
}

// ProbabilityCapable reports whether the loaded model exposes class
// probabilities.
func (a *Artifact) ProbabilityCapable() bool {
	_, ok := a.Model.(model.ProbabilityEstimator)
	return ok
}

// envelope is the on-disk JSON layout. Kind selects which fields matter.
type envelope struct {
	Kind         string     `json:"kind"`
	FeatureCount int        `json:"feature_count"`
	Nodes        []treeNode `json:"nodes,omitempty"`
	Weights      []float64  `json:"weights,omitempty"`
	Intercept    float64    `json:"intercept,omitempty"`
	Means        []float64  `json:"means,omitempty"`
	Stds         []float64  `json:"stds,omitempty"`
}

// Load reads and validates the model artifact at path. A file that cannot
// be read fails with ErrUnavailable; a file that cannot be decoded into a
// usable model fails with ErrCorrupt. Context is accepted to satisfy the
// project-wide convention; the read itself is a single local file open.
func Load(_ context.Context, path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapUnavailable(path, err)
	}
	defer func() { _ = f.Close() }()

	var env envelope
	if err := json.NewDecoder(f).Decode(&env); err != nil {
		return nil, wrapCorrupt("decode %s: %v", path, err)
	}

	if env.FeatureCount != passenger.FeatureCount {
		return nil, wrapCorrupt("artifact trained for %d features, want %d", env.FeatureCount, passenger.FeatureCount)
	}

	switch env.Kind {
	case KindDecisionTree:
		tree, err := newDecisionTree(env)
		if err != nil {
			return nil, err
		}
		return &Artifact{Kind: env.Kind, Model: tree}, nil
	case KindLogistic:
		lr, err := newLogistic(env)
		if err != nil {
			return nil, err
		}
		return &Artifact{Kind: env.Kind, Model: lr}, nil
	default:
		return nil, wrapCorrupt("unknown artifact kind %q", env.Kind)
	}
}
