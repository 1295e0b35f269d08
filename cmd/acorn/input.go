package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbanos/acorn/catalog"
	"github.com/pbanos/acorn/dataset"
	"github.com/pbanos/acorn/dataset/csv"
	"github.com/pbanos/acorn/dataset/mongodataset"
	"github.com/pbanos/acorn/dataset/redisdataset"
	"github.com/pbanos/acorn/dataset/sqldataset"
	"github.com/pbanos/acorn/dataset/sqldataset/pgadapter"
	"github.com/pbanos/acorn/dataset/sqldataset/sqlite3adapter"
)

// sourceConfig says where and how to load a dataset from.
type sourceConfig struct {
	input              string
	table              string
	pattern            string
	collection         string
	features           []string
	cpuIntensiveSet    bool
	memoryIntensiveSet bool
}

func sourceFromEntry(e *catalog.Entry) *sourceConfig {
	return &sourceConfig{
		input:      e.Source,
		table:      e.Table,
		pattern:    e.Pattern,
		collection: e.Collection,
		features:   e.Features,
	}
}

func (sc *sourceConfig) addFlags(cmd *cobra.Command, name, shorthand, what string) {
	cmd.PersistentFlags().StringVarP(&(sc.input), name, shorthand, "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, redis or MongoDB URL with the "+what+" (defaults to STDIN, interpreted as CSV)")
	prefix := ""
	if name != "input" {
		prefix = name + "-"
	}
	cmd.PersistentFlags().StringVar(&(sc.table), prefix+"table", "", "SQL table with the "+what+" (defaults to the only table of the database)")
	cmd.PersistentFlags().StringVar(&(sc.pattern), prefix+"pattern", "*", "pattern of the redis keys of the hashes with the "+what)
	cmd.PersistentFlags().StringVar(&(sc.collection), prefix+"collection", "", "MongoDB collection with the "+what)
	cmd.PersistentFlags().StringSliceVar(&(sc.features), prefix+"features", nil, "feature order for redis and MongoDB sources (defaults to the fields of the first record)")
}

func (sc *sourceConfig) addSubsettingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&(sc.memoryIntensiveSet), "memory-intensive", false, "force the use of memory-intensive subsetting to decrease time at the cost of increasing memory use")
	cmd.PersistentFlags().BoolVar(&(sc.cpuIntensiveSet), "cpu-intensive", false, "force the use of cpu-intensive subsetting to decrease memory use at the cost of increasing time")
}

func (sc *sourceConfig) Validate() error {
	if sc.cpuIntensiveSet && sc.memoryIntensiveSet {
		return errors.New("cannot set both memory-intensive and cpu-intensive flags at the same time")
	}
	if strings.HasPrefix(sc.input, "mongodb://") && sc.collection == "" {
		return errors.Errorf("a collection is required to read from %s", sc.input)
	}
	return nil
}

func (sc *sourceConfig) generator() func([]string, []dataset.Record) dataset.Dataset {
	if sc.memoryIntensiveSet {
		return dataset.NewMemoryIntensive
	}
	if sc.cpuIntensiveSet {
		return dataset.NewCPUIntensive
	}
	return dataset.New
}

func (sc *sourceConfig) load(ctx context.Context, logger *zap.Logger) (dataset.Dataset, error) {
	ds, err := sc.read(ctx, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		zap.String("source", sc.describe()),
		zap.String("records", humanize.Comma(int64(ds.Count()))),
		zap.Int("features", len(ds.Features())),
	)
	return ds, nil
}

func (sc *sourceConfig) describe() string {
	if sc.input == "" {
		return "STDIN"
	}
	return sc.input
}

func (sc *sourceConfig) read(ctx context.Context, logger *zap.Logger) (dataset.Dataset, error) {
	g := sc.generator()
	switch {
	case sc.input == "":
		logger.Debug("reading dataset from STDIN")
		return csv.ReadFile("", g)
	case strings.HasPrefix(sc.input, "postgres://"), strings.HasPrefix(sc.input, "postgresql://"):
		logger.Debug("creating PostgreSQL adapter", zap.String("url", sc.input))
		a, err := pgadapter.Open(sc.input)
		if err != nil {
			return nil, err
		}
		defer a.Close()
		return sc.readTable(ctx, logger, a, g)
	case strings.HasSuffix(sc.input, ".db"):
		if _, err := os.Stat(sc.input); err != nil {
			return nil, errors.Wrap(err, "opening SQLite3 database")
		}
		logger.Debug("creating SQLite3 adapter", zap.String("file", sc.input))
		a, err := sqlite3adapter.Open(sc.input)
		if err != nil {
			return nil, err
		}
		defer a.Close()
		return sc.readTable(ctx, logger, a, g)
	case strings.HasPrefix(sc.input, "redis://"):
		logger.Debug("connecting to redis", zap.String("url", sc.input), zap.String("pattern", sc.pattern))
		c, closeClient, err := redisdataset.Dial(sc.input)
		if err != nil {
			return nil, err
		}
		defer closeClient()
		return redisdataset.Load(ctx, c, sc.pattern, sc.features, g)
	case strings.HasPrefix(sc.input, "mongodb://"):
		logger.Debug("connecting to mongodb", zap.String("collection", sc.collection))
		session, err := mongodataset.Dial(sc.input)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		return mongodataset.Load(ctx, session, sc.collection, sc.features, g)
	}
	logger.Debug("reading CSV dataset", zap.String("file", sc.input))
	return csv.ReadFile(sc.input, g)
}

func (sc *sourceConfig) readTable(ctx context.Context, logger *zap.Logger, a sqldataset.Adapter, g func([]string, []dataset.Record) dataset.Dataset) (dataset.Dataset, error) {
	table := sc.table
	if table == "" {
		var err error
		table, err = sqldataset.SoleTable(ctx, a)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("reading table", zap.String("table", table))
	return sqldataset.Load(ctx, a, table, g)
}

// writeDataset dumps ds into a table of an SQLite3 file when path ends in
// .db, and as CSV into the file at path or STDOUT otherwise.
func writeDataset(ctx context.Context, logger *zap.Logger, path, table string, ds dataset.Dataset) error {
	if strings.HasSuffix(path, ".db") {
		if table == "" {
			table = strings.TrimSuffix(filepath.Base(path), ".db")
		}
		a, err := sqlite3adapter.Open(path)
		if err != nil {
			return err
		}
		defer a.Close()
		n, err := sqldataset.Store(ctx, a, table, ds)
		if err != nil {
			return err
		}
		logger.Info("dataset stored", zap.String("file", path), zap.String("table", table), zap.String("records", humanize.Comma(int64(n))))
		return nil
	}
	f := os.Stdout
	if path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating dataset file")
		}
		defer f.Close()
	}
	if err := csv.Write(f, ds); err != nil {
		return err
	}
	logger.Info("dataset written", zap.String("file", path), zap.String("records", humanize.Comma(int64(ds.Count()))))
	return nil
}
