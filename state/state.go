// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Database is the persistent store the host commits state diffs into.
type Database interface {
	database.KeyValueReader
	database.Batcher
}

var _ Immutable = (*ReadOnly)(nil)

// ReadOnly exposes a database as [Immutable].
type ReadOnly struct {
	db database.KeyValueReader
}

func NewReadOnly(db database.KeyValueReader) *ReadOnly {
	return &ReadOnly{db: db}
}

func (r *ReadOnly) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}
