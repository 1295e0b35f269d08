package feature

import (
	"fmt"
	"strings"
)

/*
Feature represents a categorical property of a sample. It has a name
and the finite set of values it was observed to take.
*/
type Feature struct {
	name            string
	availableValues []string
}

/*
Sample is an interface for something that can provide values for
features.

Its ValueFor method returns the value corresponding to the feature with
the given name, or an error if the value cannot be obtained.
*/
type Sample interface {
	ValueFor(name string) (string, error)
}

/*
New takes a name string and a slice of available value strings
and returns a feature with the given name and available values.
*/
func New(name string, availableValues []string) *Feature {
	return &Feature{name, availableValues}
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (f *Feature) AvailableValues() []string {
	return f.availableValues
}

func (f *Feature) String() string {
	return fmt.Sprintf("%s [%s]", f.name, strings.Join(f.availableValues, ", "))
}
