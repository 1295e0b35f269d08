/*
Package json exports trees as JSON documents.
*/
package json

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/pbanos/acorn/tree"
)

type jsonTree struct {
	Label    string    `json:"label"`
	Features []string  `json:"features"`
	Root     *jsonNode `json:"root"`
}

type jsonNode struct {
	Value      string          `json:"value,omitempty"`
	Feature    string          `json:"feature,omitempty"`
	Prediction *jsonPrediction `json:"pred,omitempty"`
	Subtrees   []*jsonNode     `json:"subtrees,omitempty"`
}

type jsonPrediction struct {
	Label         string             `json:"label"`
	Probabilities map[string]float64 `json:"probs,omitempty"`
	Weight        int                `json:"w,omitempty"`
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and
serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "label": a string with the name of the feature the tree predicts
* "features": an array with the names of the features the tree was grown with
* "root": the node at the root of the tree.
Every node is an object with the following fields:
* "value": the value of its parent's feature that leads to the node, absent on the root
* "feature": the feature the node splits on, absent on leaves
* "pred": the prediction of the node, with its "label", "probs" and weight "w"
* "subtrees": the array of children nodes, absent on leaves.
An error is returned if the tree cannot be serialized or written onto the io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	if t == nil || t.Root == nil {
		return errors.New("cannot serialize an empty tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&jsonTree{Label: t.Label, Features: t.Features, Root: toJSONNode(t.Root)})
	return errors.Wrap(err, "serializing tree")
}

/*
WriteJSONTreeToFile takes a pointer to a tree.Tree and a filepath and
writes the tree as JSON onto the file, creating or truncating it.
*/
func WriteJSONTreeToFile(t *tree.Tree, filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return errors.Wrapf(err, "creating tree file %s", filepath)
	}
	err = WriteJSONTree(t, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "writing tree file %s", filepath)
}

func toJSONNode(n *tree.Node) *jsonNode {
	jn := &jsonNode{Feature: n.SubtreeFeature}
	if n.Criterion != nil {
		jn.Value = n.Criterion.Value()
	}
	if p := n.Prediction; p != nil {
		jn.Prediction = &jsonPrediction{Label: p.Label(), Probabilities: p.Probabilities(), Weight: p.Weight()}
	}
	for _, st := range n.Subtrees() {
		jn.Subtrees = append(jn.Subtrees, toJSONNode(st))
	}
	return jn
}
