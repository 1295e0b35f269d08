package dataset

import (
	"fmt"
	"sort"
	"strings"
)

/*
Record is a sample of a dataset: a mapping from feature names to
normalized categorical values. A record satisfies feature.Sample.
*/
type Record map[string]string

/*
ValueFor returns the value of the record for the feature with the given
name. Records are fully known, so it never returns an error; a feature
the record does not define yields the empty string.
*/
func (r Record) ValueFor(name string) (string, error) {
	return r[name], nil
}

func (r Record) String() string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, n := range names {
		pairs = append(pairs, fmt.Sprintf("%s:%s", n, r[n]))
	}
	return fmt.Sprintf("[%s]", strings.Join(pairs, " "))
}

/*
Normalize takes a raw categorical value and returns it lowercased with
every whitespace character removed. Training values and query values
must go through it alike, otherwise logically equal values do not match.
*/
func Normalize(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), ""))
}

/*
NormalizeName trims surrounding whitespace from a feature name. Feature
names keep their case so that they match the names users configure.
*/
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
