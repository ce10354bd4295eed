// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/keys"
	"github.com/ava-labs/ledgervm/state"
)

var (
	testKey = []byte("key")
	testVal = []byte("value")

	key1    = keys.EncodeChunks([]byte("key1"), 1)
	key1str = string(key1)
	key2    = keys.EncodeChunks([]byte("key2"), 2)
	key2str = string(key2)
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// No Scope
	tsv := ts.NewView(state.Keys{}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, testKey), ErrInvalidKeyOrPermission)
}

func TestPermissions(t *testing.T) {
	tests := []struct {
		name      string
		perm      state.Permissions
		exists    bool
		getErr    error
		insertErr error
		removeErr error
	}{
		{
			name:      "read only existing",
			perm:      state.Read,
			exists:    true,
			insertErr: ErrInvalidKeyOrPermission,
			removeErr: ErrInvalidKeyOrPermission,
		},
		{
			name:      "write existing",
			perm:      state.Write,
			exists:    true,
			insertErr: nil,
			removeErr: nil,
		},
		{
			name:      "write missing",
			perm:      state.Write,
			getErr:    database.ErrNotFound,
			insertErr: ErrInvalidKeyOrPermission,
		},
		{
			name:      "allocate missing",
			perm:      state.Allocate,
			getErr:    database.ErrNotFound,
			insertErr: nil,
			removeErr: ErrInvalidKeyOrPermission,
		},
		{
			name:      "allocate existing",
			perm:      state.Allocate,
			exists:    true,
			insertErr: ErrInvalidKeyOrPermission,
			removeErr: ErrInvalidKeyOrPermission,
		},
		{
			name:      "none",
			perm:      state.None,
			getErr:    ErrInvalidKeyOrPermission,
			insertErr: ErrInvalidKeyOrPermission,
			removeErr: ErrInvalidKeyOrPermission,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.TODO()
			storage := map[string][]byte{}
			if tt.exists {
				storage[key1str] = testVal
			}
			tsv := New(1).NewView(state.Keys{key1str: tt.perm}, storage)

			_, err := tsv.GetValue(ctx, key1)
			require.ErrorIs(err, tt.getErr)
			require.ErrorIs(tsv.Insert(ctx, key1, []byte("new")), tt.insertErr)
			require.ErrorIs(tsv.Remove(ctx, key1), tt.removeErr)
		})
	}
}

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read | state.Write}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err, "unable to get value")
	require.Equal(testVal, val, "value was not saved correctly")
}

func TestDeleteCommitGet(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// Delete value
	tsv := ts.NewView(state.Keys{string(testKey): state.Read | state.Write}, map[string][]byte{string(testKey): testVal})
	require.NoError(tsv.Remove(ctx, testKey))
	tsv.Commit()

	// Check deleted
	tsv = ts.NewView(state.Keys{string(testKey): state.Read | state.Write}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
	require.Nil(val)
}

func TestGetValueNoStorage(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read | state.Write}, map[string][]byte{})
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound, "data should not exist")
}

func TestInsertNew(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{})

	// Insert key
	require.NoError(tsv.Insert(ctx, testKey, testVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(1, tsv.OpIndex(), "insert was not added as an operation")
	require.Equal(testVal, val, "value was not set correctly")

	// Check commit
	tsv.Commit()
	require.Equal(1, ts.OpIndex(), "insert was not added as an operation")
	require.Equal(1, ts.PendingChanges())
}

func TestInsertNewRequiresAllocate(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read | state.Write}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)
	require.Zero(tsv.OpIndex())

	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestInsertInvalid(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	key := binary.BigEndian.AppendUint16([]byte("hello"), 0)
	tsv := ts.NewView(state.Keys{string(key): state.All}, map[string][]byte{})

	require.ErrorIs(tsv.Insert(ctx, key, []byte("cool")), ErrInvalidKeyValue)

	_, err := tsv.GetValue(ctx, key)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestInsertUpdate(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.Read | state.Write}, map[string][]byte{string(testKey): testVal})
	require.Equal(0, ts.OpIndex())

	newVal := []byte("newVal")
	require.NoError(tsv.Insert(ctx, testKey, newVal))
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(1, tsv.OpIndex(), "insert operation was not added")
	require.Equal(newVal, val, "value was not set correctly")
	require.Equal(testVal, tsv.ops[0].pastV)
	require.True(tsv.ops[0].pastExists)

	// Check value after commit
	tsv.Commit()
	tsv = ts.NewView(state.Keys{string(testKey): state.Read | state.Write}, map[string][]byte{string(testKey): testVal})
	val, err = tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(newVal, val, "value was not committed correctly")
}

func TestInsertRemoveInsert(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key2str: state.All}, map[string][]byte{})

	// Insert key for first time
	require.NoError(tsv.Insert(ctx, key2, testVal))
	require.Equal(maybe.Some(testVal), tsv.pendingChangedKeys[key2str])

	// Remove key
	require.NoError(tsv.Remove(ctx, key2))
	require.True(tsv.pendingChangedKeys[key2str].IsNothing())

	// Insert key again
	require.NoError(tsv.Insert(ctx, key2, testVal))
	require.Equal(maybe.Some(testVal), tsv.pendingChangedKeys[key2str])

	// Modify key
	testVal2 := []byte("blah")
	require.NoError(tsv.Insert(ctx, key2, testVal2))
	require.Equal(maybe.Some(testVal2), tsv.pendingChangedKeys[key2str])

	// Rollback modify
	tsv.Rollback(ctx, tsv.OpIndex()-1)
	require.Equal(maybe.Some(testVal), tsv.pendingChangedKeys[key2str])

	// Rollback second insert
	tsv.Rollback(ctx, tsv.OpIndex()-1)
	require.True(tsv.pendingChangedKeys[key2str].IsNothing())

	// Rollback remove
	tsv.Rollback(ctx, tsv.OpIndex()-1)
	require.Equal(maybe.Some(testVal), tsv.pendingChangedKeys[key2str])

	// Rollback insert
	tsv.Rollback(ctx, tsv.OpIndex()-1)
	require.NotContains(tsv.pendingChangedKeys, key2str)
	require.Equal(0, tsv.OpIndex())

	// Remove empty should do nothing
	require.NoError(tsv.Remove(ctx, key2))
	require.Equal(0, tsv.OpIndex())
}

func TestModifyRevert(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key2str: state.Read | state.Write}, map[string][]byte{key2str: testVal})

	testVal2 := []byte("blah")
	require.NoError(tsv.Insert(ctx, key2, testVal2))
	require.Equal(maybe.Some(testVal2), tsv.pendingChangedKeys[key2str])

	// Rollback modification
	tsv.Rollback(ctx, tsv.OpIndex()-1)
	require.NotContains(tsv.pendingChangedKeys, key2str)
	require.Equal(0, tsv.OpIndex())

	val, err := tsv.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal(testVal, val)
}

func TestRollbackToStart(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.Read | state.Write},
		map[string][]byte{key2str: testVal},
	)
	require.NoError(tsv.Insert(ctx, key1, []byte("a")))
	require.NoError(tsv.Insert(ctx, key2, []byte("b")))
	require.NoError(tsv.Remove(ctx, key1))
	require.Equal(3, tsv.OpIndex())

	tsv.Rollback(ctx, 0)
	require.Equal(0, tsv.OpIndex())
	require.Zero(tsv.PendingChanges())
	tsv.Commit()
	require.Zero(ts.PendingChanges())

	_, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
	val, err := tsv.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal(testVal, val)
}

func TestViewSeesCommittedChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{key1str: state.All}, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, key1, testVal))
	tsv.Commit()

	// A later view must read the committed value rather than its stale storage
	tsv = ts.NewView(state.Keys{key1str: state.Read | state.Write}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)

	// Removing a committed key and rolling back restores it
	require.NoError(tsv.Remove(ctx, key1))
	tsv.Rollback(ctx, 0)
	val, err = tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	db := memdb.New()
	require.NoError(db.Put(key2, testVal))

	tsv := ts.NewView(
		state.Keys{key1str: state.All, key2str: state.Write},
		map[string][]byte{key2str: testVal},
	)
	require.NoError(tsv.Insert(ctx, key1, []byte("new")))
	require.NoError(tsv.Remove(ctx, key2))
	tsv.Commit()

	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(batch))
	require.NoError(batch.Write())

	val, err := db.Get(key1)
	require.NoError(err)
	require.Equal([]byte("new"), val)
	_, err = db.Get(key2)
	require.ErrorIs(err, database.ErrNotFound)
}
