// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"golang.org/x/exp/slices"
)

var _ database.Database = (*Database)(nil)

type Config struct {
	CacheSize                   int64  `json:"cacheSize"                   yaml:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync"                yaml:"bytesPerSync"`
	WALBytesPerSync             int    `json:"walBytesPerSync"             yaml:"walBytesPerSync"`
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold" yaml:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize"                yaml:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles"                yaml:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions"       yaml:"concurrentCompactions"`

	// Sync forces every write to be flushed to disk before it returns.
	Sync bool `json:"sync" yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   1 * units.GiB,
		BytesPerSync:                1 * units.MiB,
		WALBytesPerSync:             1 * units.MiB,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * units.MiB,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is a [database.Database] backed by a pebble instance on disk.
type Database struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	metrics   *metrics

	closed  atomic.Bool
	closing chan struct{}
	// metricsDone is closed once collectMetrics has returned.
	metricsDone chan struct{}
}

// New opens (or creates) a pebble database at [file]. The returned registry
// holds the metrics of the database and is owned by the caller.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	db := &Database{
		metrics:     metrics,
		closing:     make(chan struct{}),
		metricsDone: make(chan struct{}),
	}
	if cfg.Sync {
		db.writeOpts = pebble.Sync
	} else {
		db.writeOpts = pebble.NoSync
	}

	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: db.onCompactionBegin,
			CompactionEnd:   db.onCompactionEnd,
			WriteStallBegin: db.onWriteStallBegin,
			WriteStallEnd:   db.onWriteStallEnd,
		},
	}
	d, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	db.db = d
	go db.collectMetrics()
	return db, registry, nil
}

func (db *Database) Close() error {
	if !db.closed.CompareAndSwap(false, true) {
		return database.ErrClosed
	}
	close(db.closing)
	<-db.metricsDone
	return db.db.Close()
}

func (db *Database) HealthCheck(context.Context) (interface{}, error) {
	if db.closed.Load() {
		return nil, database.ErrClosed
	}
	return nil, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	if db.closed.Load() {
		return false, database.ErrClosed
	}
	_, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

func (db *Database) Get(key []byte) ([]byte, error) {
	if db.closed.Load() {
		return nil, database.ErrClosed
	}
	start := time.Now()
	value, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// [value] is only valid until [closer] is closed
	value = slices.Clone(value)
	return value, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	if db.closed.Load() {
		return database.ErrClosed
	}
	db.metrics.puts.Inc()
	return db.db.Set(key, value, db.writeOpts)
}

func (db *Database) Delete(key []byte) error {
	if db.closed.Load() {
		return database.ErrClosed
	}
	db.metrics.deletes.Inc()
	return db.db.Delete(key, db.writeOpts)
}

func (db *Database) Compact(start []byte, limit []byte) error {
	if db.closed.Load() {
		return database.ErrClosed
	}
	if limit == nil {
		// Compact through the last key in the database
		it, err := db.db.NewIter(&pebble.IterOptions{})
		if err != nil {
			return err
		}
		if !it.Last() {
			return it.Close()
		}
		limit = append(slices.Clone(it.Key()), 0)
		if err := it.Close(); err != nil {
			return err
		}
	}
	return db.db.Compact(start, limit, true)
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db}
}

func (db *Database) NewIterator() database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, nil)
}

func (db *Database) NewIteratorWithStart(start []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(start, nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return db.NewIteratorWithStartAndPrefix(nil, prefix)
}

func (db *Database) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	if db.closed.Load() {
		return &database.IteratorError{Err: database.ErrClosed}
	}
	lower := prefix
	if slices.Compare(start, prefix) > 0 {
		lower = start
	}
	it, err := db.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return &database.IteratorError{Err: err}
	}
	return &iterator{iter: it}
}

// prefixUpperBound returns the smallest key greater than every key starting
// with [prefix], or nil if there is none.
func prefixUpperBound(prefix []byte) []byte {
	upper := slices.Clone(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}
