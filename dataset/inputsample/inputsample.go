/*
Package inputsample provides an implementation of feature.Sample whose values
are read from an io.Reader, like a console.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/feature"
)

/*
ErrExit is returned by a Sample's ValueFor method when the exit
command is read instead of a value.
*/
var ErrExit = errors.New("exit requested")

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(*feature.Feature) error
	RejectValueFor(*feature.Feature, string) error
}

/*
Sample is a feature.Sample whose values are read from a reader
the first time they are requested.
*/
type Sample interface {
	feature.Sample
	// Values returns the values obtained so far by feature name.
	Values() map[string]string
}

/*
Console reads lines from a reader shared by all the samples it creates,
so consecutive samples and other answers can be read from the same stream.
*/
type Console struct {
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	exitCommand           string
}

type readSample struct {
	*Console
	obtainedValues map[string]string
	features       map[string]*feature.Feature
}

/*
NewConsole takes an io.Reader, a FeatureValueRequester and an exit command
string and returns a Console that reads from the reader.
*/
func NewConsole(r io.Reader, featureValueRequester FeatureValueRequester, exitCommand string) *Console {
	return &Console{bufio.NewScanner(r), featureValueRequester, exitCommand}
}

/*
ReadLine reads the next line from the console. It returns ErrExit if the
line is the exit command and io.ErrUnexpectedEOF if the reader was exhausted.
*/
func (c *Console) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "reading line")
		}
		return "", io.ErrUnexpectedEOF
	}
	line := c.scanner.Text()
	if c.exitCommand != "" && strings.EqualFold(strings.TrimSpace(line), c.exitCommand) {
		return "", ErrExit
	}
	return line, nil
}

/*
Sample takes a slice of features and returns a new Sample for them.

The returned Sample ValueFor method reads feature values first
requesting them with the console's FeatureValueRequester and
then reading a line from the console. Lines are normalized with
dataset.Normalize; empty lines are rejected with the FeatureValueRequester's
RejectValueFor method and another line is read. A line whose trimmed
content equals the exit command, regardless of case, makes ValueFor
return ErrExit.

Values are not checked against the available values of the features, so
values never seen in training can be given. Attempting to obtain a value
for a feature not in the given slice returns an error.
*/
func (c *Console) Sample(features []*feature.Feature) Sample {
	fs := make(map[string]*feature.Feature, len(features))
	for _, f := range features {
		fs[f.Name()] = f
	}
	return &readSample{c, make(map[string]string), fs}
}

/*
New takes an io.Reader, a slice of features, a FeatureValueRequester and
an exit command string and returns a Sample reading from its own Console.
*/
func New(r io.Reader, features []*feature.Feature, featureValueRequester FeatureValueRequester, exitCommand string) Sample {
	return NewConsole(r, featureValueRequester, exitCommand).Sample(features)
}

func (rs *readSample) ValueFor(name string) (string, error) {
	value, ok := rs.obtainedValues[name]
	if ok {
		return value, nil
	}
	f, ok := rs.features[name]
	if !ok {
		return "", errors.Errorf("have no information about feature %s, do not know how to read its value", name)
	}
	if err := rs.featureValueRequester.RequestValueFor(f); err != nil {
		return "", err
	}
	for {
		line, err := rs.ReadLine()
		if err != nil {
			return "", errors.Wrapf(err, "reading value for %s", name)
		}
		value = dataset.Normalize(line)
		if value != "" {
			rs.obtainedValues[name] = value
			return value, nil
		}
		if err = rs.featureValueRequester.RejectValueFor(f, line); err != nil {
			return "", err
		}
	}
}

func (rs *readSample) Values() map[string]string {
	values := make(map[string]string, len(rs.obtainedValues))
	for k, v := range rs.obtainedValues {
		values[k] = v
	}
	return values
}

/*
ReadAll takes a feature.Sample and a slice of feature names and obtains
the value of every feature in order, returning the first error found.
*/
func ReadAll(s feature.Sample, names []string) error {
	for _, n := range names {
		if _, err := s.ValueFor(n); err != nil {
			return err
		}
	}
	return nil
}

/*
Prompter is a FeatureValueRequester that writes prompts to a writer.
*/
type Prompter struct {
	w           io.Writer
	showChoices bool
}

/*
NewPrompter takes an io.Writer and whether to list the values seen in training
for every feature and returns a Prompter that writes on it.
*/
func NewPrompter(w io.Writer, showChoices bool) *Prompter {
	return &Prompter{w, showChoices}
}

// RequestValueFor writes the prompt for the given feature.
func (p *Prompter) RequestValueFor(f *feature.Feature) error {
	var err error
	if p.showChoices && len(f.AvailableValues()) > 0 {
		_, err = fmt.Fprintf(p.w, "%s [%s]: ", f.Name(), strings.Join(f.AvailableValues(), ", "))
	} else {
		_, err = fmt.Fprintf(p.w, "%s: ", f.Name())
	}
	return err
}

// RejectValueFor tells the value cannot be used and writes the prompt again.
func (p *Prompter) RejectValueFor(f *feature.Feature, _ string) error {
	if _, err := fmt.Fprintln(p.w, "Value cannot be empty. Please enter a valid value."); err != nil {
		return err
	}
	return p.RequestValueFor(f)
}
