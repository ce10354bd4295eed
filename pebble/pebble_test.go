// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const batchSize = 10_000

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func newTestDB(t *testing.T) (*Database, *prometheus.Registry) {
	cfg := NewDefaultConfig()
	cfg.CacheSize = 1 << 20
	cfg.Sync = false
	db, registry, err := New(t.TempDir(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, registry
}

func TestGetPutDelete(t *testing.T) {
	require := require.New(t)
	db, _ := newTestDB(t)

	_, err := db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
	has, err := db.Has([]byte("a"))
	require.NoError(err)
	require.False(has)

	require.NoError(db.Put([]byte("a"), []byte("1")))
	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)
	has, err = db.Has([]byte("a"))
	require.NoError(err)
	require.True(has)

	require.NoError(db.Delete([]byte("a")))
	_, err = db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestBatch(t *testing.T) {
	require := require.New(t)
	db, registry := newTestDB(t)
	require.NoError(db.Put([]byte("gone"), []byte("x")))

	b := db.NewBatch()
	require.NoError(b.Put([]byte("a"), []byte("1")))
	require.NoError(b.Put([]byte("b"), []byte("2")))
	require.NoError(b.Delete([]byte("gone")))
	require.Positive(b.Size())

	// Nothing is visible until the batch is written
	_, err := db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(b.Write())
	v, err := db.Get([]byte("b"))
	require.NoError(err)
	require.Equal([]byte("2"), v)
	_, err = db.Get([]byte("gone"))
	require.ErrorIs(err, database.ErrNotFound)

	b.Reset()
	require.Zero(b.Size())
	require.Equal(b, b.Inner())

	count, err := testutil.GatherAndCount(registry, "pebble_batch_writes")
	require.NoError(err)
	require.Equal(1, count)
}

func TestIteratorWithPrefix(t *testing.T) {
	db, _ := newTestDB(t)
	for _, k := range []string{"a1", "b1", "b2", "b3", "c1"} {
		require.NoError(t, db.Put([]byte(k), []byte(k)))
	}

	tests := []struct {
		name   string
		start  []byte
		prefix []byte
		want   []string
	}{
		{name: "all", want: []string{"a1", "b1", "b2", "b3", "c1"}},
		{name: "prefix", prefix: []byte("b"), want: []string{"b1", "b2", "b3"}},
		{name: "start", start: []byte("b2"), want: []string{"b2", "b3", "c1"}},
		{name: "start and prefix", start: []byte("b2"), prefix: []byte("b"), want: []string{"b2", "b3"}},
		{name: "missing prefix", prefix: []byte("z")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			it := db.NewIteratorWithStartAndPrefix(tt.start, tt.prefix)
			defer it.Release()
			var got []string
			for it.Next() {
				require.Equal(it.Key(), it.Value())
				got = append(got, string(it.Key()))
			}
			require.NoError(it.Error())
			require.Equal(tt.want, got)
		})
	}
}

func TestPrefixUpperBound(t *testing.T) {
	require := require.New(t)
	require.Nil(prefixUpperBound(nil))
	require.Equal([]byte{0x01, 0x03}, prefixUpperBound([]byte{0x01, 0x02}))
	require.Equal([]byte{0x02}, prefixUpperBound([]byte{0x01, 0xff}))
	require.Nil(prefixUpperBound([]byte{0xff, 0xff}))
}

func TestClosed(t *testing.T) {
	require := require.New(t)
	db, _, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	_, err = db.HealthCheck(context.Background())
	require.NoError(err)
	require.NoError(db.Close())

	require.ErrorIs(db.Close(), database.ErrClosed)
	_, err = db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrClosed)
	require.ErrorIs(db.Put([]byte("a"), nil), database.ErrClosed)
	require.ErrorIs(db.NewBatch().Write(), database.ErrClosed)
	it := db.NewIterator()
	require.False(it.Next())
	require.ErrorIs(it.Error(), database.ErrClosed)
}

func TestCloseWaitsForMetrics(t *testing.T) {
	require := require.New(t)
	db, _, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	db.updateMetrics()
	require.NoError(db.Close())

	select {
	case <-db.metricsDone:
	default:
		require.FailNow("metrics collector still running after close")
	}
}

func TestIteratorRelease(t *testing.T) {
	require := require.New(t)
	db, _ := newTestDB(t)
	require.NoError(db.Put([]byte("a"), []byte("1")))

	it := db.NewIterator()
	require.True(it.Next())
	it.Release()
	require.NoError(it.Error())
	require.False(it.Next())
	it.Release()

	errRelease := errors.New("release failed")
	released := &iterator{released: true, err: errRelease}
	require.ErrorIs(released.Error(), errRelease)
	require.False(released.Next())
}

func TestReopen(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	db, _, err := New(dir, NewDefaultConfig())
	require.NoError(err)
	require.NoError(db.Put([]byte("k"), []byte("v")))
	require.NoError(db.Compact(nil, nil))
	require.NoError(db.Close())

	db, _, err = New(dir, NewDefaultConfig())
	require.NoError(err)
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	require.NoError(db.Close())
}

func BenchmarkBatchInsertion(b *testing.B) {
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			b.StopTimer()
			cfg := NewDefaultConfig()
			cfg.Sync = sync
			db, _, err := New(b.TempDir(), cfg)
			if err != nil {
				b.Fatal(err)
			}

			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			if err := db.Close(); err != nil {
				b.Fatal(err)
			}
		})
	}
}
