package feature

import (
	"fmt"
)

/*
Criterion represents a constraint on a feature

Its Feature method returns the name of the feature on which the
criterion is applied.

Its Value method returns the value to which the feature is constrained.

Its Accepts method takes a value for the feature and returns whether it
satisfies the criterion.
*/
type Criterion interface {
	Feature() string
	Value() string
	Accepts(value string) bool
}

type discreteCriterion struct {
	feature string
	value   string
}

/*
NewCriterion takes the name of a feature and a value and returns
a Criterion that is satisfied only by that exact value.
*/
func NewCriterion(feature, value string) Criterion {
	return &discreteCriterion{feature, value}
}

func (dc *discreteCriterion) Feature() string {
	return dc.feature
}

func (dc *discreteCriterion) Value() string {
	return dc.value
}

func (dc *discreteCriterion) Accepts(value string) bool {
	return dc.value == value
}

func (dc *discreteCriterion) String() string {
	return fmt.Sprintf("%s is %s", dc.feature, dc.value)
}
