/*
Package redisdataset loads datasets from redis databases where every
record is a hash whose fields are the features of the record.
*/
package redisdataset

import (
	"context"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/redis.v5"

	"github.com/pbanos/acorn/dataset"
)

// scanCount is the COUNT hint given on every SCAN call.
const scanCount = 100

/*
Client is the interface for the redis operations Load needs.
*/
type Client interface {
	// Keys returns all keys matching the given glob-style pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)
	// Hash returns the fields and values of the hash stored at key.
	Hash(ctx context.Context, key string) (map[string]string, error)
}

type client struct {
	rc *redis.Client
}

/*
New takes a *redis.Client and returns a Client that works on it,
scanning the keyspace incrementally when listing keys.
*/
func New(rc *redis.Client) Client {
	return &client{rc}
}

/*
Dial takes a redis URL like redis://:password@host:port/db and returns
a Client connected to it, with a function to close the connection,
or an error.
*/
func Dial(rawurl string) (Client, func() error, error) {
	opts, err := parseURL(rawurl)
	if err != nil {
		return nil, nil, err
	}
	rc := redis.NewClient(opts)
	if err = rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, nil, errors.Wrapf(err, "connecting to redis at %s", opts.Addr)
	}
	return New(rc), rc.Close, nil
}

func parseURL(rawurl string) (*redis.Options, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis URL")
	}
	if u.Scheme != "redis" {
		return nil, errors.Errorf("invalid redis URL scheme %q", u.Scheme)
	}
	host, port := u.Hostname(), u.Port()
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	opts := &redis.Options{Addr: net.JoinHostPort(host, port)}
	if u.User != nil {
		opts.Password, _ = u.User.Password()
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		opts.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, errors.Errorf("invalid redis database %q", db)
		}
	}
	return opts, nil
}

func (c *client) Keys(ctx context.Context, pattern string) ([]string, error) {
	var result []string
	var cursor uint64
	for {
		keys, next, err := c.rc.Scan(cursor, pattern, scanCount).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "scanning keys matching %s", pattern)
		}
		result = append(result, keys...)
		if next == 0 {
			return result, nil
		}
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		cursor = next
	}
}

func (c *client) Hash(_ context.Context, key string) (map[string]string, error) {
	h, err := c.rc.HGetAll(key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "reading hash %s", key)
	}
	return h, nil
}

/*
Load takes a context, a Client, a key pattern, an optional slice of feature
names and a generator function like dataset.New, and returns the dataset
built with the generator from the hashes stored at the keys matching the
pattern, taken in lexicographic key order.

When no feature names are given, the fields of the first hash in sorted
order are used. Every hash must have a field for every feature; values
are normalized with dataset.Normalize. No matching keys produce
dataset.ErrEmptyDataset.
*/
func Load(ctx context.Context, c Client, pattern string, features []string, g func([]string, []dataset.Record) dataset.Dataset) (dataset.Dataset, error) {
	keys, err := c.Keys(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	sort.Strings(keys)
	records := make([]dataset.Record, 0, len(keys))
	for _, k := range keys {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		h, err := c.Hash(ctx, k)
		if err != nil {
			return nil, err
		}
		if features == nil {
			features = fieldNames(h)
		}
		r, err := recordFromHash(h, features)
		if err != nil {
			return nil, errors.Wrapf(err, "reading record %s", k)
		}
		records = append(records, r)
	}
	return g(features, records), nil
}

func fieldNames(h map[string]string) []string {
	names := make([]string, 0, len(h))
	for f := range h {
		names = append(names, f)
	}
	sort.Strings(names)
	for i, n := range names {
		names[i] = dataset.NormalizeName(n)
	}
	return names
}

func recordFromHash(h map[string]string, features []string) (dataset.Record, error) {
	normalized := make(map[string]string, len(h))
	for f, v := range h {
		normalized[dataset.NormalizeName(f)] = v
	}
	r := make(dataset.Record, len(features))
	for _, f := range features {
		v, ok := normalized[f]
		if !ok {
			return nil, errors.Errorf("no value for %s", f)
		}
		r[f] = dataset.Normalize(v)
	}
	return r, nil
}
