// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TState defines a struct for storing temporary state.
type TState struct {
	l           sync.RWMutex
	ops         int
	changedKeys map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState. Initial size of changedKeys is set
// to [changedSize].
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// OpIndex returns the number of operations committed into [ts].
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys changed in [ts].
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteChanges writes every change recorded in [ts] to [w], in key order so the
// same diff always produces the same batch.
func (ts *TState) WriteChanges(w database.KeyValueWriterDeleter) error {
	ts.l.RLock()
	defer ts.l.RUnlock()

	changed := maps.Keys(ts.changedKeys)
	slices.Sort(changed)
	for _, k := range changed {
		v := ts.changedKeys[k]
		if v.IsNothing() {
			if err := w.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
