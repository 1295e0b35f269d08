package acorn

import (
	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/feature"
)

/*
Partition represents a partition of a dataset according to a feature
into subsets with an information gain to predict the label feature
*/
type Partition struct {
	Feature         string
	Subsets         []dataset.Dataset
	InformationGain float64
}

/*
NewPartition takes a non-empty dataset, the name of a feature and the
name of the label feature and returns the partition of the dataset for
the given feature: one subset per value of the feature observed in the
dataset, in first-seen order, each obtained by subsetting the dataset
with the criterion "feature is value". Its information gain is the
dataset's entropy minus the entropy of each subset weighted by the share
of records it holds.
*/
func NewPartition(s dataset.Dataset, f string, label string) *Partition {
	values := s.FeatureValues(f)
	subsets := make([]dataset.Dataset, 0, len(values))
	informationGain := s.Entropy(label)
	totalCount := float64(s.Count())
	for _, value := range values {
		ss := s.SubsetWith(feature.NewCriterion(f, value))
		subsets = append(subsets, ss)
		informationGain -= ss.Entropy(label) * float64(ss.Count()) / totalCount
	}
	return &Partition{f, subsets, informationGain}
}

/*
InformationGain takes a non-empty dataset, the name of a candidate feature
and the name of the label feature and returns the reduction in entropy
of the label obtained by partitioning the dataset on the feature's values.
A feature with a single observed value yields no gain.
*/
func InformationGain(s dataset.Dataset, f string, label string) float64 {
	return NewPartition(s, f, label).InformationGain
}
