/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqldataset package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbanos/acorn/dataset/sqldataset"
)

const listTablesQuery = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`

type adapter struct {
	db *sql.DB
}

/*
Open takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func Open(path string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite3 database %s", path)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "opening sqlite3 database %s", path)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty names cannot be used as identifiers")
	}
	if strings.ContainsAny(name, `"`) {
		return "", errors.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

func (a *adapter) Placeholder(int) string {
	return "?"
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
