package sqldataset_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/dataset/sqldataset"
	"github.com/pbanos/acorn/dataset/sqldataset/sqlite3adapter"
)

func openTempDB(t *testing.T) sqldataset.Adapter {
	dir, err := ioutil.TempDir("", "acorn-sql")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	a, err := sqlite3adapter.Open(filepath.Join(dir, "weather.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestLoad(t *testing.T) {
	a := openTempDB(t)
	ctx := context.Background()
	_, err := a.DB().Exec(`CREATE TABLE weather (outlook TEXT, " windy" TEXT, play TEXT)`)
	require.NoError(t, err)
	_, err = a.DB().Exec(`INSERT INTO weather VALUES ('Sunny', 'FALSE', 'no'), ('over cast', 'true', 'Yes')`)
	require.NoError(t, err)

	s, err := sqldataset.Load(ctx, a, "weather", dataset.New)
	require.NoError(t, err)
	assert.Equal(t, []string{"outlook", "windy", "play"}, s.Features())
	assert.Equal(t, []dataset.Record{
		{"outlook": "sunny", "windy": "false", "play": "no"},
		{"outlook": "overcast", "windy": "true", "play": "yes"},
	}, s.Records())

	table, err := sqldataset.SoleTable(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "weather", table)
}

func TestLoad_Errors(t *testing.T) {
	a := openTempDB(t)
	ctx := context.Background()
	_, err := a.DB().Exec(`CREATE TABLE empty (a TEXT, t TEXT)`)
	require.NoError(t, err)
	_, err = sqldataset.Load(ctx, a, "empty", dataset.New)
	assert.Equal(t, dataset.ErrEmptyDataset, err)

	_, err = a.DB().Exec(`CREATE TABLE nulls (a TEXT, t TEXT)`)
	require.NoError(t, err)
	_, err = a.DB().Exec(`INSERT INTO nulls VALUES ('x', NULL)`)
	require.NoError(t, err)
	_, err = sqldataset.Load(ctx, a, "nulls", dataset.New)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NULL value for t")

	_, err = sqldataset.Load(ctx, a, "missing", dataset.New)
	assert.Error(t, err)
	_, err = sqldataset.Load(ctx, a, `bad"name`, dataset.New)
	assert.Error(t, err)

	_, err = sqldataset.SoleTable(ctx, a)
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	a := openTempDB(t)
	ctx := context.Background()
	records := make([]dataset.Record, 0, 2*sqldataset.MaxRecordInsertionsPerStatement+3)
	for i := 0; i < cap(records); i++ {
		play := "yes"
		if i%3 == 0 {
			play = "no"
		}
		records = append(records, dataset.Record{"outlook": "sunny", "play": play})
	}
	s := dataset.New([]string{"outlook", "play"}, records)
	n, err := sqldataset.Store(ctx, a, "training", s)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)

	loaded, err := sqldataset.Load(ctx, a, "training", dataset.New)
	require.NoError(t, err)
	assert.Equal(t, s.Features(), loaded.Features())
	assert.Equal(t, s.Records(), loaded.Records())
}

func TestIterate_Stop(t *testing.T) {
	a := openTempDB(t)
	ctx := context.Background()
	_, err := a.DB().Exec(`CREATE TABLE t (a TEXT)`)
	require.NoError(t, err)
	_, err = a.DB().Exec(`INSERT INTO t VALUES ('1'), ('2'), ('3')`)
	require.NoError(t, err)
	var seen int
	features, err := sqldataset.Iterate(ctx, a, "t", func(i int, _ dataset.Record) (bool, error) {
		seen++
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, features)
	assert.Equal(t, 2, seen)
}
