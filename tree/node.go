package tree

import (
	"github.com/pkg/errors"

	"github.com/pbanos/acorn/feature"
)

/*
Node is a node of the tree. It is either a leaf, holding only a
prediction, or a decision node, which splits on SubtreeFeature and owns
a subtree per observed value of that feature.
*/
type Node struct {
	// The constraint this node imposes on samples: the criterion that applied
	// to the parent node's dataset produces this node's dataset. It is nil for
	// the root node.
	Criterion feature.Criterion
	// The feature on which nodes directly under this node impose a constraint.
	// It is the empty string for leaves.
	SubtreeFeature string
	// The prediction for samples that satisfied node constraints from the root
	// of the tree up to this node. For leaves its label is the class label.
	Prediction *Prediction

	subtrees []*Node
	index    map[string]*Node
}

/*
NewLeaf takes the criterion that leads to the node and a prediction and
returns a leaf node.
*/
func NewLeaf(c feature.Criterion, p *Prediction) *Node {
	return &Node{Criterion: c, Prediction: p}
}

/*
NewDecision takes the criterion that leads to the node, the feature the
node splits on and the prediction for the node's dataset and returns
a decision node without subtrees. Subtrees are attached with AddSubtree.
*/
func NewDecision(c feature.Criterion, subtreeFeature string, p *Prediction) *Node {
	return &Node{
		Criterion:      c,
		SubtreeFeature: subtreeFeature,
		Prediction:     p,
		index:          make(map[string]*Node),
	}
}

/*
IsLeaf returns whether the node is a leaf.
*/
func (n *Node) IsLeaf() bool {
	return n.SubtreeFeature == ""
}

/*
Label returns the label of the node's prediction, the class label for
leaves.
*/
func (n *Node) Label() string {
	if n.Prediction == nil {
		return ""
	}
	return n.Prediction.Label()
}

/*
AddSubtree takes a node whose criterion constrains the node's subtree
feature and attaches it under the criterion's value. It returns an error
if the node is a leaf, the criterion is missing or on another feature, or
a subtree for the same value already exists.
*/
func (n *Node) AddSubtree(st *Node) error {
	if n.IsLeaf() {
		return errors.Errorf("cannot add subtree to a leaf node")
	}
	if st.Criterion == nil {
		return errors.Errorf("subtree for feature %s has no criterion", n.SubtreeFeature)
	}
	if st.Criterion.Feature() != n.SubtreeFeature {
		return errors.Errorf("subtree criterion on feature %s under node splitting on %s", st.Criterion.Feature(), n.SubtreeFeature)
	}
	v := st.Criterion.Value()
	if _, ok := n.index[v]; ok {
		return errors.Errorf("duplicate subtree for %s is %s", n.SubtreeFeature, v)
	}
	n.index[v] = st
	n.subtrees = append(n.subtrees, st)
	return nil
}

/*
Subtree takes a value for the node's subtree feature and returns the
subtree for it and true, or nil and false if the value was not observed
when the node was grown.
*/
func (n *Node) Subtree(value string) (*Node, bool) {
	st, ok := n.index[value]
	return st, ok
}

/*
Subtrees returns the nodes directly under this node in the order their
values were first observed.
*/
func (n *Node) Subtrees() []*Node {
	return n.subtrees
}
