// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestSimpleMutableCommit(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	require.NoError(db.Put([]byte("stale"), []byte{1}))

	sm := NewSimpleMutable(NewReadOnly(db))
	require.NoError(sm.Insert(ctx, []byte("fresh"), []byte{2}))
	require.NoError(sm.Remove(ctx, []byte("stale")))

	// Buffered changes are visible before commit
	v, err := sm.GetValue(ctx, []byte("fresh"))
	require.NoError(err)
	require.Equal([]byte{2}, v)
	_, err = sm.GetValue(ctx, []byte("stale"))
	require.ErrorIs(err, database.ErrNotFound)

	// ...but not in the underlying database
	has, err := db.Has([]byte("fresh"))
	require.NoError(err)
	require.False(has)

	require.NoError(sm.Commit(db))
	v, err = db.Get([]byte("fresh"))
	require.NoError(err)
	require.Equal([]byte{2}, v)
	has, err = db.Has([]byte("stale"))
	require.NoError(err)
	require.False(has)
}
