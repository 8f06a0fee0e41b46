package artifact

import (
	"context"
	"fmt"
)

// treeNode is one node of a flattened binary decision tree. Non-leaf nodes
// reference their children by index into the node array.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Class     int     `json:"class"`
	Leaf      bool    `json:"leaf"`
}

// DecisionTree is a flattened binary decision tree classifier. Traversal
// starts at node 0 and follows left when the feature value is at most the
// threshold. Leaves carry only a class label, so the tree exposes no class
// probabilities.
type DecisionTree struct {
	featureCount int
	nodes        []treeNode
}

func newDecisionTree(env envelope) (*DecisionTree, error) {
	if len(env.Nodes) == 0 {
		return nil, wrapCorrupt("decision tree has no nodes")
	}
	for i, n := range env.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= env.FeatureCount {
			return nil, wrapCorrupt("node %d references feature %d outside [0, %d)", i, n.Feature, env.FeatureCount)
		}
		if n.Left < 0 || n.Left >= len(env.Nodes) {
			return nil, wrapCorrupt("node %d references left child %d outside the node array", i, n.Left)
		}
		if n.Right < 0 || n.Right >= len(env.Nodes) {
			return nil, wrapCorrupt("node %d references right child %d outside the node array", i, n.Right)
		}
	}
	return &DecisionTree{
		featureCount: env.FeatureCount,
		nodes:        env.Nodes,
	}, nil
}

// Predict classifies each feature row by walking the tree.
func (t *DecisionTree) Predict(_ context.Context, rows [][]float64) ([]int, error) {
	labels := make([]int, len(rows))
	for i, row := range rows {
		if len(row) != t.featureCount {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), t.featureCount)
		}
		label, err := t.walk(row)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}

// walk follows the tree for one row. Steps are capped at the node count so
// a cyclic reference in a hand-edited artifact cannot loop forever.
func (t *DecisionTree) walk(row []float64) (int, error) {
	idx := 0
	for steps := 0; steps <= len(t.nodes); steps++ {
		n := t.nodes[idx]
		if n.Leaf {
			return n.Class, nil
		}
		if row[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0, fmt.Errorf("tree traversal exceeded %d steps", len(t.nodes))
}
