/*
Package acorn grows categorical decision trees from labeled datasets with
the ID3 algorithm: at every node the feature with the highest information
gain on the node's records is chosen to split them, and the recursion
stops on pure datasets or when no feature is left, producing a leaf with
the majority class.
*/
package acorn

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/feature"
	"github.com/pbanos/acorn/tree"
)

var (
	// ErrEmptyDataset is returned by Grow when the training dataset has
	// no records.
	ErrEmptyDataset = errors.New("cannot grow a tree from an empty dataset")
	// ErrUnknownLabel is returned by Grow when the label is not one of the
	// dataset's features.
	ErrUnknownLabel = errors.New("label feature is not defined in the dataset")
	// ErrInvalidFeature is returned by Grow when a candidate feature is not
	// defined in the dataset, is the label itself or is given twice.
	ErrInvalidFeature = errors.New("invalid candidate feature")
)

// noGain is lower than any information gain, so that the first evaluated
// feature is always selected over it.
const noGain = -1.0

// Grow takes a training dataset, the names of the candidate features in the
// order they should be considered and the name of the label feature, and
// returns the tree grown from the dataset to predict the label. Ties in
// information gain go to the feature that comes first in features.
// Grow logs the decisions it takes at debug level on the given logger,
// which may be nil.
func Grow(s dataset.Dataset, features []string, label string, logger *zap.Logger) (*tree.Tree, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s.Count() == 0 {
		return nil, ErrEmptyDataset
	}
	defined := make(map[string]bool)
	for _, f := range s.Features() {
		defined[f] = true
	}
	if !defined[label] {
		return nil, errors.Wrapf(ErrUnknownLabel, "label %q", label)
	}
	seen := make(map[string]bool)
	for _, f := range features {
		if !defined[f] || f == label || seen[f] {
			return nil, errors.Wrapf(ErrInvalidFeature, "feature %q", f)
		}
		seen[f] = true
	}
	logger.Debug("growing tree",
		zap.Int("records", s.Count()),
		zap.Strings("features", features),
		zap.String("label", label),
	)
	root, err := branchOut(s, nil, features, label, logger)
	if err != nil {
		return nil, err
	}
	return tree.New(root, label, append([]string(nil), features...)), nil
}

/*
branchOut takes a non-empty dataset, the criterion that produced it from
its parent's dataset (nil for the root), the features still available on
the path to it and the label and returns the subtree developed for it.
*/
func branchOut(s dataset.Dataset, c feature.Criterion, availableFeatures []string, label string, logger *zap.Logger) (*tree.Node, error) {
	prediction, err := tree.NewPredictionFromSet(s, label)
	if err != nil {
		return nil, err
	}
	if labels := s.FeatureValues(label); len(labels) == 1 {
		logger.Debug("leaf node: pure dataset", zap.String("label", labels[0]), zap.Int("records", s.Count()))
		return tree.NewLeaf(c, prediction), nil
	}
	if len(availableFeatures) == 0 {
		logger.Debug("leaf node: majority class", zap.String("label", prediction.Label()), zap.Int("records", s.Count()))
		return tree.NewLeaf(c, prediction), nil
	}
	if ce := logger.Check(zap.DebugLevel, "subset"); ce != nil {
		counts := s.CountFeatureValues(label)
		fields := []zap.Field{zap.Int("records", s.Count()), zap.Float64("entropy", s.Entropy(label))}
		for _, v := range s.FeatureValues(label) {
			fields = append(fields, zap.Int(label+"="+v, counts[v]))
		}
		ce.Write(fields...)
	}
	var selectedPartition *Partition
	var featureIndex int
	bestGain := noGain
	for i, f := range availableFeatures {
		part := NewPartition(s, f, label)
		logger.Debug("information gain", zap.String("feature", f), zap.Float64("gain", part.InformationGain))
		if part.InformationGain > bestGain {
			bestGain = part.InformationGain
			selectedPartition = part
			featureIndex = i
		}
	}
	if selectedPartition == nil {
		logger.Debug("leaf node: majority class", zap.String("label", prediction.Label()), zap.Int("records", s.Count()))
		return tree.NewLeaf(c, prediction), nil
	}
	logger.Debug("best feature", zap.String("feature", selectedPartition.Feature), zap.Float64("gain", bestGain))
	stAvailableFeatures := make([]string, 0, len(availableFeatures)-1)
	for fi, sf := range availableFeatures {
		if fi != featureIndex {
			stAvailableFeatures = append(stAvailableFeatures, sf)
		}
	}
	n := tree.NewDecision(c, selectedPartition.Feature, prediction)
	for _, ss := range selectedPartition.Subsets {
		stc := ss.Criteria()[0]
		logger.Debug("split", zap.String("feature", stc.Feature()), zap.String("value", stc.Value()), zap.Int("records", ss.Count()))
		st, err := branchOut(ss, stc, stAvailableFeatures, label, logger)
		if err != nil {
			return nil, err
		}
		if err = n.AddSubtree(st); err != nil {
			return nil, err
		}
	}
	return n, nil
}
