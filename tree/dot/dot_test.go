package dot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/acorn/feature"
	"github.com/pbanos/acorn/tree"
)

func leaf(f, v, label string) *tree.Node {
	return tree.NewLeaf(feature.NewCriterion(f, v), tree.NewPrediction(label, map[string]float64{label: 1}, 1))
}

func weatherTree(t *testing.T) *tree.Tree {
	root := tree.NewDecision(nil, "outlook", nil)
	require.NoError(t, root.AddSubtree(leaf("outlook", "sunny", "no")))
	rainy := tree.NewDecision(feature.NewCriterion("outlook", "rainy"), "windy", nil)
	require.NoError(t, rainy.AddSubtree(leaf("windy", "false", "yes")))
	require.NoError(t, rainy.AddSubtree(leaf("windy", "true", `"no"`)))
	require.NoError(t, root.AddSubtree(rainy))
	return tree.New(root, "play", []string{"outlook", "windy"})
}

const expected = `digraph DecisionTree {
    node [shape=ellipse, style=filled, fillcolor = lightgoldenrod];
    node0 [label="outlook"];
    node1 [label="Label: no"];
    node0 -> node1 [label="", xlabel="sunny", fontcolor=red];
    node2 [label="windy"];
    node3 [label="Label: yes"];
    node2 -> node3 [label="", xlabel="false", fontcolor=red];
    node4 [label="Label: \"no\""];
    node2 -> node4 [label="", xlabel="true", fontcolor=red];
    node0 -> node2 [label="", xlabel="rainy", fontcolor=red];
}
`

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, weatherTree(t)))
	assert.Equal(t, expected, buf.String())
}

func TestWrite_CounterRestartsOnEveryExport(t *testing.T) {
	tr := weatherTree(t)
	var first, second bytes.Buffer
	require.NoError(t, Write(&first, tr))
	require.NoError(t, Write(&second, tr))
	assert.Equal(t, first.String(), second.String())
}

func TestWrite_EmptyTree(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, nil))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree_output.dot")
	require.NoError(t, WriteFile(path, weatherTree(t)))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(content))
}

func TestRender_NoBinary(t *testing.T) {
	dir := t.TempDir()
	_, err := Render(context.Background(), "acorn-no-such-dot-binary", filepath.Join(dir, "t.dot"), filepath.Join(dir, "output", "t.png"))
	assert.True(t, errors.Is(err, ErrNoRenderer))
}
