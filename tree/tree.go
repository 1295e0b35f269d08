package tree

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/feature"
)

// Tree represents a decision tree. It is composed of its root node,
// the label feature it is able to predict and the features it was
// allowed to ask about, in the order they were offered.
type Tree struct {
	Root     *Node
	Label    string
	Features []string
}

// New takes the root Node, the name of the label feature and the names of
// the candidate features and returns a tree.
func New(root *Node, label string, features []string) *Tree {
	return &Tree{root, label, features}
}

// Predict takes a sample and returns a prediction according to the tree and an
// error if the prediction could not be made. When the sample takes a value
// for a feature that the tree never saw at the node asking for it, the error
// is an *UnseenValueError.
func (t *Tree) Predict(s feature.Sample) (*Prediction, error) {
	if t == nil || t.Root == nil {
		return nil, errors.New("nil tree cannot predict samples")
	}
	return Predict(t.Root, s)
}

// Predict takes a node and a sample and walks from the node down to a leaf
// following the sample's values, returning the leaf's prediction.
func Predict(n *Node, s feature.Sample) (*Prediction, error) {
	for !n.IsLeaf() {
		v, err := s.ValueFor(n.SubtreeFeature)
		if err != nil {
			return nil, errors.Wrapf(err, "predicting sample: obtaining value for %s", n.SubtreeFeature)
		}
		st, ok := n.Subtree(v)
		if !ok {
			return nil, &UnseenValueError{Feature: n.SubtreeFeature, Value: v}
		}
		n = st
	}
	if n.Prediction == nil {
		return nil, ErrCannotPredictFromSample
	}
	return n.Prediction, nil
}

/*
Test takes a dataset and returns three values:
  - the prediction success rate of the tree over the given dataset for the label
  - the number of failing predictions because of ErrCannotPredictFromSample errors
  - an error if a prediction could not be made for reasons other than the tree not
    being able to do so. If this is not nil, the other values will be 0.0 and 0
    respectively
*/
func (t *Tree) Test(s dataset.Dataset) (float64, int, error) {
	if t == nil || t.Root == nil {
		return 0.0, 0, errors.New("nil tree cannot test samples")
	}
	count := s.Count()
	if count == 0 {
		return 0.0, 0, dataset.ErrEmptyDataset
	}
	var result float64
	var errCount int
	for _, r := range s.Records() {
		p, err := t.Predict(r)
		if err != nil {
			if !errors.Is(err, ErrCannotPredictFromSample) {
				return 0.0, 0, err
			}
			errCount++
			continue
		}
		if p.Label() == r[t.Label] {
			result += 1.0
		}
	}
	return result / float64(count), errCount, nil
}

// Traverse takes a bottomup boolean and an error-returning function that
// takes a node and its depth as parameters, and goes through the tree
// running the function with every traversed node. Traverse will call the
// function with a parent node before calling it for its children if
// bottomup is false, and call it after its children if bottomup is true.
// Children are visited in the order their values were first observed.
// If the call to the function returns an error, the traversing is aborted
// and the error is returned.
func (t *Tree) Traverse(bottomup bool, f func(n *Node, depth int) error) error {
	if t.Root == nil {
		return nil
	}
	return traverse(t.Root, 0, bottomup, f)
}

func traverse(n *Node, depth int, bottomup bool, f func(*Node, int) error) error {
	if !bottomup {
		if err := f(n, depth); err != nil {
			return err
		}
	}
	for _, st := range n.Subtrees() {
		if err := traverse(st, depth+1, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n, depth)
	}
	return nil
}

// Depth returns the number of decision nodes on the longest path from the
// root to a leaf.
func (t *Tree) Depth() int {
	var depth int
	t.Traverse(false, func(n *Node, d int) error {
		if n.IsLeaf() && d > depth {
			depth = d
		}
		return nil
	})
	return depth
}

// Size returns the number of nodes and of leaves in the tree.
func (t *Tree) Size() (nodes int, leaves int) {
	t.Traverse(false, func(n *Node, _ int) error {
		nodes++
		if n.IsLeaf() {
			leaves++
		}
		return nil
	})
	return
}

func (t *Tree) String() string {
	if t.Root == nil {
		return ""
	}
	return subtreeString(t.Root)
}

func subtreeString(n *Node) string {
	var result string
	if n.Criterion != nil {
		result = fmt.Sprintf("{ %v }\n", n.Criterion)
	} else {
		result = "{ root }\n"
	}
	if n.IsLeaf() {
		result = fmt.Sprintf("%s{ %s }\n", result, n.Label())
	} else {
		result = fmt.Sprintf("%s{ split on %s }\n", result, n.SubtreeFeature)
	}
	subtrees := n.Subtrees()
	if len(subtrees) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	}
	for i, st := range subtrees {
		for j, line := range strings.Split(subtreeString(st), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(subtrees)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
