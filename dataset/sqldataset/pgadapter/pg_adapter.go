/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"

	"github.com/pbanos/acorn/dataset/sqldataset"
)

const listTablesQuery = `SELECT table_name FROM information_schema.tables
	WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
	ORDER BY table_name`

type adapter struct {
	db *sql.DB
}

/*
Open takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func Open(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgres database")
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "connecting to postgres database")
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) QuoteIdentifier(name string) (string, error) {
	return quoteIdentifier(name)
}

func quoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty names cannot be used as identifiers")
	}
	if strings.ContainsAny(name, `"`) {
		return "", errors.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

func (a *adapter) Placeholder(i int) string {
	return placeholder(i)
}

func placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (a *adapter) ListTables(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, listTablesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "listing tables")
	}
	defer rows.Close()
	var tables []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "listing tables")
		}
		tables = append(tables, name)
	}
	return tables, errors.Wrap(rows.Err(), "listing tables")
}

func (a *adapter) Close() error {
	return a.db.Close()
}
