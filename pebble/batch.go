// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import "github.com/ava-labs/avalanchego/database"

var _ database.Batch = (*batch)(nil)

type batch struct {
	database.BatchOps

	db *Database
}

// Write applies every buffered operation atomically.
func (b *batch) Write() error {
	if b.db.closed.Load() {
		return database.ErrClosed
	}
	pb := b.db.db.NewBatch()
	defer pb.Close()
	for _, op := range b.Ops {
		var err error
		if op.Delete {
			err = pb.Delete(op.Key, nil)
		} else {
			err = pb.Set(op.Key, op.Value, nil)
		}
		if err != nil {
			return err
		}
	}
	b.db.metrics.batchWrites.Inc()
	b.db.metrics.batchOps.Add(float64(len(b.Ops)))
	return pb.Commit(b.db.writeOpts)
}

func (b *batch) Inner() database.Batch {
	return b
}
