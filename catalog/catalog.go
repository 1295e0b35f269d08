/*
Package catalog provides the list of datasets a user can pick from,
parsed from YAML documents.
*/
package catalog

import (
	_ "embed"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

//go:embed default.yml
var defaultCatalog []byte

/*
Entry describes a dataset: where to load it from and which feature
is its label.

Source is a CSV file path, an SQLite3 file path ending in .db, or a
postgres://, redis:// or mongodb:// URL. Table names the SQL table to
read (the only table of the database when empty), Pattern the key
pattern of the redis hashes and Collection the MongoDB collection.
Features optionally fixes the feature order for sources without one.
*/
type Entry struct {
	Name       string   `yaml:"name"`
	Source     string   `yaml:"source"`
	Label      string   `yaml:"label"`
	Table      string   `yaml:"table,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"`
	Collection string   `yaml:"collection,omitempty"`
	Features   []string `yaml:"features,omitempty"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%s, label %s)", e.Name, e.Source, e.Label)
}

/*
Catalog is an ordered list of dataset entries.
*/
type Catalog []*Entry

/*
Read takes a slice of bytes with a catalog in YAML and returns the
catalog parsed from it or an error.
The YAML is expected to be an object containing a datasets property
with a list of entries, each with at least a name, a source and a label.
*/
func Read(content []byte) (Catalog, error) {
	doc := struct {
		Datasets Catalog `yaml:"datasets"`
	}{}
	if err := yaml.UnmarshalStrict(content, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing yml catalog")
	}
	if len(doc.Datasets) == 0 {
		return nil, errors.New("catalog has no datasets")
	}
	for i, e := range doc.Datasets {
		if e == nil {
			return nil, errors.Errorf("catalog entry %d is empty", i+1)
		}
		e.Name = strings.TrimSpace(e.Name)
		e.Label = strings.TrimSpace(e.Label)
		if e.Name == "" || e.Source == "" || e.Label == "" {
			return nil, errors.Errorf("catalog entry %d must have a name, a source and a label", i+1)
		}
	}
	return doc.Datasets, nil
}

/*
ReadFile takes a filepath string, reads its contents and uses
Read to parse it and return a catalog or an error.
*/
func ReadFile(filepath string) (Catalog, error) {
	content, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog yml file %s", filepath)
	}
	c, err := Read(content)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing catalog yml file %s", filepath)
	}
	return c, nil
}

/*
Default returns the built-in catalog with the Weather, Breast Cancer
and Contact Lenses datasets.
*/
func Default() Catalog {
	c, err := Read(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

/*
Choose takes the answer to the catalog menu, either the number of an
entry starting at 1 or its name regardless of case, and returns the
chosen entry or an error.
*/
func (c Catalog) Choose(answer string) (*Entry, error) {
	answer = strings.TrimSpace(answer)
	if i, err := strconv.Atoi(answer); err == nil {
		if i < 1 || i > len(c) {
			return nil, errors.Errorf("invalid choice %d", i)
		}
		return c[i-1], nil
	}
	for _, e := range c {
		if strings.EqualFold(e.Name, answer) {
			return e, nil
		}
	}
	return nil, errors.Errorf("invalid choice %q", answer)
}

/*
Choices returns the prompt hint listing the entry numbers, like 1/2/3.
*/
func (c Catalog) Choices() string {
	numbers := make([]string, len(c))
	for i := range c {
		numbers[i] = strconv.Itoa(i + 1)
	}
	return strings.Join(numbers, "/")
}
