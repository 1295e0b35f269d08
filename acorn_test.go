package acorn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/tree"
)

var weatherFeatures = []string{"outlook", "temperature", "humidity", "windy"}

var weatherRows = [][]string{
	{"sunny", "hot", "high", "false", "no"},
	{"sunny", "hot", "high", "true", "no"},
	{"overcast", "hot", "high", "false", "yes"},
	{"rainy", "mild", "high", "false", "yes"},
	{"rainy", "cool", "normal", "false", "yes"},
	{"rainy", "cool", "normal", "true", "no"},
	{"overcast", "cool", "normal", "true", "yes"},
	{"sunny", "mild", "high", "false", "no"},
	{"sunny", "cool", "normal", "false", "yes"},
	{"rainy", "mild", "normal", "false", "yes"},
	{"sunny", "mild", "normal", "true", "yes"},
	{"overcast", "mild", "high", "true", "yes"},
	{"overcast", "hot", "normal", "false", "yes"},
	{"rainy", "mild", "high", "true", "no"},
}

func weather() dataset.Dataset {
	columns := append(append([]string(nil), weatherFeatures...), "play")
	records := make([]dataset.Record, 0, len(weatherRows))
	for _, row := range weatherRows {
		r := make(dataset.Record)
		for i, c := range columns {
			r[c] = row[i]
		}
		records = append(records, r)
	}
	return dataset.New(columns, records)
}

func TestInformationGain_Weather(t *testing.T) {
	s := weather()
	assert.InDelta(t, 0.2467, InformationGain(s, "outlook", "play"), 1e-4)
	assert.InDelta(t, 0.0292, InformationGain(s, "temperature", "play"), 1e-4)
	assert.InDelta(t, 0.1518, InformationGain(s, "humidity", "play"), 1e-4)
	assert.InDelta(t, 0.0481, InformationGain(s, "windy", "play"), 1e-4)
}

func TestInformationGain_SingleValue(t *testing.T) {
	s := dataset.New([]string{"a", "t"}, []dataset.Record{
		{"a": "x", "t": "yes"},
		{"a": "x", "t": "no"},
		{"a": "x", "t": "no"},
	})
	assert.Equal(t, 0.0, InformationGain(s, "a", "t"))
}

func TestInformationGain_NonNegative(t *testing.T) {
	s := weather()
	for _, f := range weatherFeatures {
		assert.True(t, InformationGain(s, f, "play") >= -1e-12, f)
	}
}

func TestNewPartition(t *testing.T) {
	p := NewPartition(weather(), "outlook", "play")
	assert.Equal(t, "outlook", p.Feature)
	require.Len(t, p.Subsets, 3)
	var values []string
	var total int
	for _, ss := range p.Subsets {
		values = append(values, ss.Criteria()[0].Value())
		total += ss.Count()
	}
	assert.Equal(t, []string{"sunny", "overcast", "rainy"}, values)
	assert.Equal(t, 14, total)
}

func TestGrow_TwoRecords(t *testing.T) {
	s := dataset.New([]string{"weather", "play"}, []dataset.Record{
		{"weather": "sunny", "play": "yes"},
		{"weather": "rainy", "play": "no"},
	})
	tr, err := Grow(s, []string{"weather"}, "play", nil)
	require.NoError(t, err)
	root := tr.Root
	require.False(t, root.IsLeaf())
	assert.Equal(t, "weather", root.SubtreeFeature)
	require.Len(t, root.Subtrees(), 2)
	sunny, ok := root.Subtree("sunny")
	require.True(t, ok)
	assert.True(t, sunny.IsLeaf())
	assert.Equal(t, "yes", sunny.Label())
	rainy, ok := root.Subtree("rainy")
	require.True(t, ok)
	assert.True(t, rainy.IsLeaf())
	assert.Equal(t, "no", rainy.Label())
}

func TestGrow_PureDataset(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := dataset.New([]string{"a", "t"}, []dataset.Record{
		{"a": "x", "t": "yes"},
		{"a": "y", "t": "yes"},
	})
	tr, err := Grow(s, []string{"a"}, "t", zap.New(core))
	require.NoError(t, err)
	assert.True(t, tr.Root.IsLeaf())
	assert.Equal(t, "yes", tr.Root.Label())
	assert.Equal(t, 0, logs.FilterMessage("information gain").Len())
	assert.Equal(t, 1, logs.FilterMessage("leaf node: pure dataset").Len())
}

func TestGrow_ExhaustedFeatures(t *testing.T) {
	s := dataset.New([]string{"a", "t"}, []dataset.Record{
		{"a": "x", "t": "no"},
		{"a": "x", "t": "yes"},
	})
	tr, err := Grow(s, nil, "t", nil)
	require.NoError(t, err)
	assert.True(t, tr.Root.IsLeaf())
	assert.Equal(t, "no", tr.Root.Label())

	s = dataset.New([]string{"a", "t"}, []dataset.Record{
		{"a": "x", "t": "no"},
		{"a": "x", "t": "yes"},
		{"a": "x", "t": "yes"},
	})
	tr, err = Grow(s, nil, "t", nil)
	require.NoError(t, err)
	assert.Equal(t, "yes", tr.Root.Label())
}

func TestGrow_ContradictoryRecordsEndInMajorityLeaf(t *testing.T) {
	s := dataset.New([]string{"a", "t"}, []dataset.Record{
		{"a": "x", "t": "yes"},
		{"a": "x", "t": "no"},
		{"a": "x", "t": "no"},
	})
	tr, err := Grow(s, []string{"a"}, "t", nil)
	require.NoError(t, err)
	require.False(t, tr.Root.IsLeaf())
	x, ok := tr.Root.Subtree("x")
	require.True(t, ok)
	assert.True(t, x.IsLeaf())
	assert.Equal(t, "no", x.Label())
}

func TestGrow_TieGoesToFirstFeature(t *testing.T) {
	records := []dataset.Record{
		{"a": "1", "b": "p", "t": "yes"},
		{"a": "2", "b": "q", "t": "no"},
	}
	s := dataset.New([]string{"a", "b", "t"}, records)
	tr, err := Grow(s, []string{"a", "b"}, "t", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", tr.Root.SubtreeFeature)

	tr, err = Grow(s, []string{"b", "a"}, "t", nil)
	require.NoError(t, err)
	assert.Equal(t, "b", tr.Root.SubtreeFeature)
}

func TestGrow_Weather(t *testing.T) {
	tr, err := Grow(weather(), weatherFeatures, "play", nil)
	require.NoError(t, err)
	root := tr.Root
	require.Equal(t, "outlook", root.SubtreeFeature)

	sunny, ok := root.Subtree("sunny")
	require.True(t, ok)
	assert.Equal(t, "humidity", sunny.SubtreeFeature)
	high, _ := sunny.Subtree("high")
	normal, _ := sunny.Subtree("normal")
	assert.Equal(t, "no", high.Label())
	assert.Equal(t, "yes", normal.Label())

	overcast, ok := root.Subtree("overcast")
	require.True(t, ok)
	assert.True(t, overcast.IsLeaf())
	assert.Equal(t, "yes", overcast.Label())

	rainy, ok := root.Subtree("rainy")
	require.True(t, ok)
	assert.Equal(t, "windy", rainy.SubtreeFeature)
	calm, _ := rainy.Subtree("false")
	windy, _ := rainy.Subtree("true")
	assert.Equal(t, "yes", calm.Label())
	assert.Equal(t, "no", windy.Label())

	nodes, leaves := tr.Size()
	assert.Equal(t, 8, nodes)
	assert.Equal(t, 5, leaves)
	assert.Equal(t, 2, tr.Depth())
}

func TestGrow_ZeroTrainingError(t *testing.T) {
	s := weather()
	tr, err := Grow(s, weatherFeatures, "play", nil)
	require.NoError(t, err)
	for _, r := range s.Records() {
		p, err := tr.Predict(r)
		require.NoError(t, err)
		assert.Equal(t, r["play"], p.Label(), r.String())
	}
	rate, unseen, err := tr.Test(s)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, 0, unseen)
}

func TestGrow_Idempotent(t *testing.T) {
	t1, err := Grow(weather(), weatherFeatures, "play", nil)
	require.NoError(t, err)
	t2, err := Grow(weather(), weatherFeatures, "play", nil)
	require.NoError(t, err)
	assert.Equal(t, t1.String(), t2.String())
}

func TestGrow_NoFeatureRepeatedOnAPath(t *testing.T) {
	tr, err := Grow(weather(), weatherFeatures, "play", nil)
	require.NoError(t, err)
	var walk func(n *tree.Node, used map[string]bool)
	walk = func(n *tree.Node, used map[string]bool) {
		if n.IsLeaf() {
			return
		}
		assert.False(t, used[n.SubtreeFeature], n.SubtreeFeature)
		next := map[string]bool{n.SubtreeFeature: true}
		for f := range used {
			next[f] = true
		}
		for _, st := range n.Subtrees() {
			walk(st, next)
		}
	}
	walk(tr.Root, map[string]bool{})
}

func TestGrow_UnseenValue(t *testing.T) {
	tr, err := Grow(weather(), weatherFeatures, "play", nil)
	require.NoError(t, err)
	_, err = tr.Predict(dataset.Record{"outlook": "foggy"})
	require.Error(t, err)
	var uve *tree.UnseenValueError
	require.ErrorAs(t, err, &uve)
	assert.Equal(t, "foggy", uve.Value)
	assert.Equal(t, "outlook", uve.Feature)
	assert.ErrorIs(t, err, tree.ErrCannotPredictFromSample)
}

func TestGrow_Errors(t *testing.T) {
	s := weather()
	_, err := Grow(dataset.New([]string{"a", "t"}, nil), []string{"a"}, "t", nil)
	assert.Equal(t, ErrEmptyDataset, err)

	_, err = Grow(s, weatherFeatures, "golf", nil)
	assert.ErrorIs(t, err, ErrUnknownLabel)

	_, err = Grow(s, []string{"outlook", "play"}, "play", nil)
	assert.ErrorIs(t, err, ErrInvalidFeature)

	_, err = Grow(s, []string{"outlook", "outlook"}, "play", nil)
	assert.ErrorIs(t, err, ErrInvalidFeature)

	_, err = Grow(s, []string{"pressure"}, "play", nil)
	assert.ErrorIs(t, err, ErrInvalidFeature)
}

func TestGrow_LogsTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := Grow(weather(), weatherFeatures, "play", zap.New(core))
	require.NoError(t, err)
	best := logs.FilterMessage("best feature").All()
	require.NotEmpty(t, best)
	assert.Equal(t, "outlook", best[0].ContextMap()["feature"])
	assert.Equal(t, 3, logs.FilterMessage("information gain").FilterField(zap.String("feature", "windy")).Len())
}
