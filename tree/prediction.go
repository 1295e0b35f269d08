package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/acorn/dataset"
)

/*
Prediction represents a prediction made by a decision tree: the class
label chosen for a node, the distribution of labels observed in the
node's dataset and the number of records it was computed from.
*/
type Prediction struct {
	label         string
	values        []string
	probabilities map[string]float64
	weight        int
}

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a tree
when the prediction cannot be made because the tree itself cannot make
a prediction for that kind of sample, as opposed to cases where values
for a feature cannot be obtained for example.
*/
var ErrCannotPredictFromSample = errors.New("no prediction available for this kind of sample")

/*
UnseenValueError is returned when a sample presents a value for a feature
that was never observed for it on the dataset of the decision node asking
about it. It is an expected outcome, not a failure of the tree:
errors.Is(err, ErrCannotPredictFromSample) holds for it.
*/
type UnseenValueError struct {
	Feature string
	Value   string
}

func (e *UnseenValueError) Error() string {
	return fmt.Sprintf("value '%s' for %s not seen in training", e.Value, e.Feature)
}

// Is makes UnseenValueError match ErrCannotPredictFromSample.
func (e *UnseenValueError) Is(target error) bool {
	return target == ErrCannotPredictFromSample
}

/*
Label returns the predicted class label.
*/
func (p *Prediction) Label() string {
	return p.label
}

/*
ProbabilityOf takes a string value and returns the float64 probability of that
value according to the prediction.
*/
func (p *Prediction) ProbabilityOf(value string) float64 {
	return p.probabilities[value]
}

/*
Probabilities returns a map of string to float64 containing
the probabilities of each observed value
*/
func (p *Prediction) Probabilities() map[string]float64 {
	return p.probabilities
}

/*
Values returns the observed label values, in the order they were first seen
for predictions made from datasets.
*/
func (p *Prediction) Values() []string {
	return p.values
}

/*
Weight returns the weight of the prediction: an
int equal to the number of records in the dataset from which
the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

func (p *Prediction) String() string {
	parts := make([]string, 0, len(p.values))
	for _, v := range p.values {
		parts = append(parts, fmt.Sprintf("%s:%.3f", v, p.probabilities[v]))
	}
	return fmt.Sprintf("%s (%s; %d records)", p.label, strings.Join(parts, " "), p.weight)
}

/*
NewPrediction takes a label, a map[string]float64 with the probabilities
of each value and an integer with the number of records in the dataset
from which those probabilities were computed and returns a prediction
representing those values. Values are ordered alphabetically.
*/
func NewPrediction(label string, probs map[string]float64, weight int) *Prediction {
	values := make([]string, 0, len(probs))
	for v := range probs {
		values = append(values, v)
	}
	sort.Strings(values)
	return &Prediction{label, values, probs, weight}
}

// NewPredictionFromSet takes a non-empty dataset and the name of the label
// feature and returns a prediction whose label is the dataset's majority
// class, ties going to the value seen first. It returns
// dataset.ErrEmptyDataset if there are no records in the dataset.
func NewPredictionFromSet(s dataset.Dataset, label string) (*Prediction, error) {
	weight := s.Count()
	if weight == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	values := s.FeatureValues(label)
	counts := s.CountFeatureValues(label)
	probs := make(map[string]float64, len(values))
	for _, v := range values {
		probs[v] = float64(counts[v]) / float64(weight)
	}
	return &Prediction{dataset.Majority(s, label), values, probs, weight}, nil
}
