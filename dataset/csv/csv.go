/*
Package csv reads datasets from and writes them to CSV streams.
*/
package csv

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/pbanos/acorn/dataset"
)

/*
Generator is a function that takes the ordered feature names and a slice
of records and generates a dataset with them, like dataset.New.
*/
type Generator func([]string, []dataset.Record) dataset.Dataset

/*
Writer is an interface for a CSV stream to which records can be written.
*/
type Writer interface {
	// Write writes the given record as a CSV row, values for the writer's
	// features in header order.
	Write(dataset.Record) error
	// Count returns the total number of records written to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count    int
	features []string
	w        *csv.Writer
}

/*
Read takes an io.Reader for a CSV stream and a Generator and returns a
dataset built with the Generator from the records parsed from the reader,
or an error.

The header or first row of the CSV content is expected to consist of the
names of the features, which are trimmed. Every other row must have a
value for each of them; values are normalized with dataset.Normalize.
A stream without rows produces dataset.ErrEmptyDataset.
*/
func Read(reader io.Reader, g Generator) (dataset.Dataset, error) {
	var records []dataset.Record
	header, err := ReadBySample(reader, func(_ int, r dataset.Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	return g(header, records), nil
}

/*
ReadBySample takes an io.Reader for a CSV stream and a lambda function on
an integer and a dataset.Record that returns a boolean value. It parses
the records from the reader and for each it calls the lambda function
with the record and its index as parameters. If the lambda function
returns true, it will continue processing the next record, otherwise it
will stop. It returns the feature names read from the header, or an error
if something goes wrong when reading the stream or parsing a record.
*/
func ReadBySample(reader io.Reader, lambda func(int, dataset.Record) (bool, error)) ([]string, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.Wrap(dataset.ErrEmptyDataset, "reading header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	features, err := parseFeaturesFromCSVHeader(header)
	if err != nil {
		return nil, err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading body")
		}
		ok, err := lambda(l-2, parseRecordFromCSVRow(row, features))
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return features, nil
}

/*
ReadFile takes a filepath string and a Generator, opens the file to which
the filepath points (os.Stdin if the filepath is "") and uses Read to
return a dataset or an error read from it.
*/
func ReadFile(filepath string, g Generator) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "reading dataset")
		}
		defer f.Close()
	}
	s, err := Read(f, g)
	if err != nil {
		err = errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return s, err
}

/*
NewWriter takes an io.Writer and a slice of feature names and returns
a Writer that will write records on the io.Writer after a header with
the feature names.
*/
func NewWriter(writer io.Writer, features []string) (Writer, error) {
	w := csv.NewWriter(writer)
	err := w.Write(features)
	if err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
Write takes a writer and a dataset and dumps the dataset to the writer in
CSV format. It returns an error if something went wrong when writing.
*/
func Write(writer io.Writer, s dataset.Dataset) error {
	cw, err := NewWriter(writer, s.Features())
	if err != nil {
		return err
	}
	for _, r := range s.Records() {
		if err = cw.Write(r); err != nil {
			return err
		}
	}
	return cw.Flush()
}

func (cw *csvWriter) Write(r dataset.Record) error {
	row := make([]string, len(cw.features))
	for i, f := range cw.features {
		row[i] = r[f]
	}
	if err := cw.w.Write(row); err != nil {
		return errors.Wrapf(err, "writing record %d", cw.count+1)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

func parseFeaturesFromCSVHeader(header []string) ([]string, error) {
	features := make([]string, 0, len(header))
	seen := make(map[string]bool)
	for i, h := range header {
		name := dataset.NormalizeName(h)
		if name == "" {
			return nil, errors.Errorf("parsing header: column %d has no name", i+1)
		}
		if seen[name] {
			return nil, errors.Errorf("parsing header: duplicate feature %s", name)
		}
		seen[name] = true
		features = append(features, name)
	}
	return features, nil
}

func parseRecordFromCSVRow(row []string, features []string) dataset.Record {
	r := make(dataset.Record, len(features))
	for i, f := range features {
		r[f] = dataset.Normalize(row[i])
	}
	return r
}
