package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/pbanos/acorn/dataset"
)

// MaxRecordInsertionsPerStatement is the maximum number of records
// inserted with a single command by Store.
const MaxRecordInsertionsPerStatement = 10

/*
Adapter is the interface for the database specifics the package
needs to work on a database.
*/
type Adapter interface {
	// DB returns the connection pool to the database.
	DB() *sql.DB
	// QuoteIdentifier returns the given table or column name quoted as
	// an identifier for the database, or an error if the name cannot
	// be used as one.
	QuoteIdentifier(string) (string, error)
	// Placeholder returns the placeholder for the i-th (starting at 1)
	// argument of a statement.
	Placeholder(i int) string
	// ListTables returns the names of the tables available on the database.
	ListTables(context.Context) ([]string, error)
	// Close closes the connection pool to the database.
	Close() error
}

/*
Load takes a context, an Adapter, a table name and a generator function
like dataset.New and returns the dataset built with the generator from
the rows of the table, or an error.

Feature names are the column names of the table in table order. NULL
values are rejected, every other value is read as text and normalized
with dataset.Normalize. A table without rows produces
dataset.ErrEmptyDataset.
*/
func Load(ctx context.Context, a Adapter, table string, g func([]string, []dataset.Record) dataset.Dataset) (dataset.Dataset, error) {
	var records []dataset.Record
	features, err := Iterate(ctx, a, table, func(_ int, r dataset.Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	return g(features, records), nil
}

/*
Iterate takes a context, an Adapter, a table name and a lambda function
and calls the lambda function with the index and record of every row of
the table until it returns false or an error. It returns the feature names
of the table or an error.
*/
func Iterate(ctx context.Context, a Adapter, table string, lambda func(int, dataset.Record) (bool, error)) ([]string, error) {
	qtable, err := a.QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	rows, err := a.DB().QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", qtable))
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(err, "reading columns of table %s", table)
	}
	features := make([]string, len(columns))
	for i, c := range columns {
		features[i] = dataset.NormalizeName(c)
	}
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for i := 0; rows.Next(); i++ {
		if err = rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scanning row %d of table %s", i+1, table)
		}
		r := make(dataset.Record, len(features))
		for j, f := range features {
			if !values[j].Valid {
				return nil, errors.Errorf("row %d of table %s has a NULL value for %s", i+1, table, f)
			}
			r[f] = dataset.Normalize(values[j].String)
		}
		ok, err := lambda(i, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return features, nil
		}
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading table %s", table)
	}
	return features, nil
}

/*
Store takes a context, an Adapter, a table name and a dataset, and
creates the table with a text column for every feature of the dataset
if it does not exist already, then inserts the records of the dataset
into it. It returns the number of records inserted, or an error.
*/
func Store(ctx context.Context, a Adapter, table string, s dataset.Dataset) (int, error) {
	qtable, err := a.QuoteIdentifier(table)
	if err != nil {
		return 0, err
	}
	features := s.Features()
	columns := make([]string, len(features))
	for i, f := range features {
		columns[i], err = a.QuoteIdentifier(f)
		if err != nil {
			return 0, err
		}
	}
	var createStmt bytes.Buffer
	fmt.Fprintf(&createStmt, "CREATE TABLE IF NOT EXISTS %s (", qtable)
	for i, c := range columns {
		if i > 0 {
			createStmt.WriteString(", ")
		}
		fmt.Fprintf(&createStmt, "%s TEXT NOT NULL", c)
	}
	createStmt.WriteString(")")
	if _, err = a.DB().ExecContext(ctx, createStmt.String()); err != nil {
		return 0, errors.Wrapf(err, "creating table %s", table)
	}
	records := s.Records()
	var inserted int
	for inserted < len(records) {
		end := inserted + MaxRecordInsertionsPerStatement
		if end > len(records) {
			end = len(records)
		}
		stmt, args := insertStatement(a, qtable, columns, features, records[inserted:end])
		if _, err = a.DB().ExecContext(ctx, stmt, args...); err != nil {
			return inserted, errors.Wrapf(err, "inserting records %d to %d into table %s", inserted+1, end, table)
		}
		inserted = end
	}
	return inserted, nil
}

func insertStatement(a Adapter, qtable string, columns, features []string, records []dataset.Record) (string, []interface{}) {
	var buf bytes.Buffer
	args := make([]interface{}, 0, len(records)*len(features))
	fmt.Fprintf(&buf, "INSERT INTO %s (", qtable)
	for i, c := range columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(c)
	}
	buf.WriteString(") VALUES ")
	for i, r := range records {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j, f := range features {
			if j > 0 {
				buf.WriteString(", ")
			}
			args = append(args, r[f])
			buf.WriteString(a.Placeholder(len(args)))
		}
		buf.WriteString(")")
	}
	return buf.String(), args
}

/*
SoleTable takes a context and an Adapter and returns the name of the only
table on the database, or an error if there is not exactly one.
*/
func SoleTable(ctx context.Context, a Adapter) (string, error) {
	tables, err := a.ListTables(ctx)
	if err != nil {
		return "", err
	}
	if len(tables) != 1 {
		return "", errors.Errorf("expected exactly one table on the database, found %d", len(tables))
	}
	return tables[0], nil
}
