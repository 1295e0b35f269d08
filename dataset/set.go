package dataset

import (
	"math"

	"github.com/pbanos/acorn/feature"
	"github.com/pkg/errors"
)

const (
	sampleCountThresholdForDatasetImplementation = 1000
)

// ErrEmptyDataset is the error for operations that need at least one
// record. Entropy and Majority panic with it, loaders return it.
var ErrEmptyDataset = errors.New("dataset has no records")

/*
Dataset represents an ordered collection of records.

Its Features method returns the names of the features, the label
included, in the column order of the source the records came from.

Its Entropy method returns the entropy in bits of the dataset for a
given label feature: a measure of the disinformation we have on the
classes of the records that belong to it.

Its SubsetWith method takes a feature.Criterion and returns a subset that
only contains records that satisfy it, in the same relative order.

Its FeatureValues method returns the distinct values of a feature in
the order they are first seen.

Its CountFeatureValues method returns how many records take each value
of a feature.

Its Records method returns the records it contains and its Count method
how many there are.

Its Criteria method returns the criteria applied to obtain the dataset,
the most recently applied first.
*/
type Dataset interface {
	Features() []string
	Entropy(label string) float64
	SubsetWith(feature.Criterion) Dataset
	FeatureValues(name string) []string
	CountFeatureValues(name string) map[string]int
	Records() []Record
	Count() int
	Criteria() []feature.Criterion
}

type memoryIntensiveSubsettingDataset struct {
	features  []string
	entropies map[string]float64
	records   []Record
	criteria  []feature.Criterion
}

type cpuIntensiveSubsettingDataset struct {
	features  []string
	entropies map[string]float64
	count     *int
	records   []Record
	criteria  []feature.Criterion
}

/*
New takes the ordered feature names and a slice of records and returns
a dataset built with them. The dataset will be a CPU intensive one when
the number of records is over sampleCountThresholdForDatasetImplementation
*/
func New(features []string, records []Record) Dataset {
	if len(records) > sampleCountThresholdForDatasetImplementation {
		return NewCPUIntensive(features, records)
	}
	return NewMemoryIntensive(features, records)
}

/*
NewMemoryIntensive takes the ordered feature names and a slice of records
and returns a Dataset built with them. A memory-intensive dataset is an
implementation that replicates the slice of records when subsetting to
reduce calculations at the cost of increased memory.
*/
func NewMemoryIntensive(features []string, records []Record) Dataset {
	return &memoryIntensiveSubsettingDataset{features, make(map[string]float64), records, nil}
}

/*
NewCPUIntensive takes the ordered feature names and a slice of records
and returns a Dataset built with them. A cpu-intensive dataset is an
implementation that instead of replicating the records when subsetting,
stores the applying feature criteria to define the subset and keeps the
same record slice. This can achieve a drastic reduction in memory use
that comes at the cost of CPU time: every calculation that goes over
the records of the dataset will apply the feature criteria of the dataset
on all original records (the ones provided to this method).
*/
func NewCPUIntensive(features []string, records []Record) Dataset {
	return &cpuIntensiveSubsettingDataset{features, make(map[string]float64), nil, records, []feature.Criterion{}}
}

/*
Majority takes a non-empty dataset and the name of the label feature and
returns the label value with the highest count. Among equally frequent
values the one seen first in record order wins. It panics with
ErrEmptyDataset if the dataset has no records.
*/
func Majority(s Dataset, label string) string {
	counts := s.CountFeatureValues(label)
	if len(counts) == 0 {
		panic(errors.Wrap(ErrEmptyDataset, "majority class"))
	}
	var majority string
	maxCount := -1
	for _, v := range s.FeatureValues(label) {
		if counts[v] > maxCount {
			maxCount = counts[v]
			majority = v
		}
	}
	return majority
}

/*
Features takes a dataset and the name of its label feature and returns
a feature.Feature for every other feature of the dataset, in column order,
with the values observed for it as available values.
*/
func Features(s Dataset, label string) []*feature.Feature {
	var result []*feature.Feature
	for _, name := range s.Features() {
		if name == label {
			continue
		}
		result = append(result, feature.New(name, s.FeatureValues(name)))
	}
	return result
}

func entropyFromCounts(values []string, counts map[string]int, total int) float64 {
	if total == 0 {
		panic(errors.Wrap(ErrEmptyDataset, "entropy"))
	}
	var result float64
	for _, v := range values {
		p := float64(counts[v]) / float64(total)
		if p > 0 {
			result -= p * math.Log2(p)
		}
	}
	return result
}

func (s *memoryIntensiveSubsettingDataset) Features() []string {
	return s.features
}

func (s *cpuIntensiveSubsettingDataset) Features() []string {
	return s.features
}

func (s *memoryIntensiveSubsettingDataset) Count() int {
	return len(s.records)
}

func (s *cpuIntensiveSubsettingDataset) Count() int {
	if s.count != nil {
		return *s.count
	}
	var length int
	s.iterateOnDataset(func(_ Record) bool {
		length++
		return true
	})
	s.count = &length
	return length
}

func (s *memoryIntensiveSubsettingDataset) Entropy(label string) float64 {
	if e, ok := s.entropies[label]; ok {
		return e
	}
	result := entropyFromCounts(s.FeatureValues(label), s.CountFeatureValues(label), s.Count())
	s.entropies[label] = result
	return result
}

func (s *cpuIntensiveSubsettingDataset) Entropy(label string) float64 {
	if e, ok := s.entropies[label]; ok {
		return e
	}
	result := entropyFromCounts(s.FeatureValues(label), s.CountFeatureValues(label), s.Count())
	s.entropies[label] = result
	return result
}

func (s *memoryIntensiveSubsettingDataset) FeatureValues(name string) []string {
	result := []string{}
	encountered := make(map[string]bool)
	for _, r := range s.records {
		v := r[name]
		if !encountered[v] {
			encountered[v] = true
			result = append(result, v)
		}
	}
	return result
}

func (s *cpuIntensiveSubsettingDataset) FeatureValues(name string) []string {
	result := []string{}
	encountered := make(map[string]bool)
	s.iterateOnDataset(func(r Record) bool {
		v := r[name]
		if !encountered[v] {
			encountered[v] = true
			result = append(result, v)
		}
		return true
	})
	return result
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(fc feature.Criterion) Dataset {
	var records []Record
	for _, r := range s.records {
		if fc.Accepts(r[fc.Feature()]) {
			records = append(records, r)
		}
	}
	return &memoryIntensiveSubsettingDataset{s.features, make(map[string]float64), records, append([]feature.Criterion{fc}, s.criteria...)}
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(fc feature.Criterion) Dataset {
	criteria := append([]feature.Criterion{fc}, s.criteria...)
	return &cpuIntensiveSubsettingDataset{s.features, make(map[string]float64), nil, s.records, criteria}
}

func (s *memoryIntensiveSubsettingDataset) Records() []Record {
	return s.records
}

func (s *cpuIntensiveSubsettingDataset) Records() []Record {
	var records []Record
	s.iterateOnDataset(func(r Record) bool {
		records = append(records, r)
		return true
	})
	return records
}

func (s *memoryIntensiveSubsettingDataset) CountFeatureValues(name string) map[string]int {
	result := make(map[string]int)
	for _, r := range s.records {
		result[r[name]]++
	}
	return result
}

func (s *cpuIntensiveSubsettingDataset) CountFeatureValues(name string) map[string]int {
	result := make(map[string]int)
	s.iterateOnDataset(func(r Record) bool {
		result[r[name]]++
		return true
	})
	return result
}

func (s *memoryIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *cpuIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(lambda func(Record) bool) {
	for _, r := range s.records {
		skip := false
		for _, criterion := range s.criteria {
			if !criterion.Accepts(r[criterion.Feature()]) {
				skip = true
				break
			}
		}
		if !skip {
			if !lambda(r) {
				break
			}
		}
	}
}
