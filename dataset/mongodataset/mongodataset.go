/*
Package mongodataset loads datasets from MongoDB collections where every
document is a record and its fields other than _id are its features.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/pbanos/acorn/dataset"
)

const idField = "_id"

/*
Dial takes a MongoDB URL like mongodb://host:port/database and returns
a session to it or an error.
*/
func Dial(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	return session, nil
}

/*
Load takes a context, a MongoDB session, a collection name, an optional
slice of feature names and a generator function like dataset.New, and
returns the dataset built with the generator from the documents of the
collection on the session's default database, sorted by _id.

When no feature names are given, the field order of the first document
is used. Every document must have a scalar value for every feature; values
are normalized with dataset.Normalize. An empty collection produces
dataset.ErrEmptyDataset.
*/
func Load(ctx context.Context, session *mgo.Session, collection string, features []string, g func([]string, []dataset.Record) dataset.Dataset) (dataset.Dataset, error) {
	s := session.Copy()
	defer s.Close()
	iter := s.DB("").C(collection).Find(nil).Sort(idField).Iter()
	var records []dataset.Record
	var doc bson.D
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		if features == nil {
			features = fieldNames(doc)
		}
		r, err := recordFromDocument(doc, features)
		if err != nil {
			iter.Close()
			return nil, errors.Wrapf(err, "reading document %d of %s", len(records)+1, collection)
		}
		records = append(records, r)
		doc = nil
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", collection)
	}
	if len(records) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	return g(features, records), nil
}

func fieldNames(doc bson.D) []string {
	names := make([]string, 0, len(doc))
	for _, e := range doc {
		if e.Name != idField {
			names = append(names, dataset.NormalizeName(e.Name))
		}
	}
	return names
}

func recordFromDocument(doc bson.D, features []string) (dataset.Record, error) {
	values := make(map[string]interface{}, len(doc))
	for _, e := range doc {
		values[dataset.NormalizeName(e.Name)] = e.Value
	}
	r := make(dataset.Record, len(features))
	for _, f := range features {
		v, ok := values[f]
		if !ok {
			return nil, errors.Errorf("no value for %s", f)
		}
		switch v := v.(type) {
		case string:
			r[f] = dataset.Normalize(v)
		case bool, int, int32, int64, float64:
			r[f] = dataset.Normalize(fmt.Sprintf("%v", v))
		default:
			return nil, errors.Errorf("value for %s is a %T, expected a scalar", f, v)
		}
	}
	return r, nil
}
