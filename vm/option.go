// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
)

type Option func(*VM)

// WithDatabase replaces the pebble database the VM would otherwise open in
// its data directory. The VM takes ownership of [db].
func WithDatabase(db database.Database) Option {
	return func(vm *VM) {
		vm.db = db
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(vm *VM) {
		vm.tracer = tracer
	}
}

// WithClock sets the source of the processing time (ms).
func WithClock(now func() int64) Option {
	return func(vm *VM) {
		vm.now = now
	}
}
