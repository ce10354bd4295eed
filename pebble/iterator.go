// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"golang.org/x/exp/slices"
)

var _ database.Iterator = (*iterator)(nil)

type iterator struct {
	iter *pebble.Iterator

	started  bool
	released bool
	key      []byte
	value    []byte
	// err is the error returned by the underlying iterator on release.
	err error
}

func (i *iterator) Next() bool {
	if i.released {
		return false
	}
	var valid bool
	if !i.started {
		valid = i.iter.First()
		i.started = true
	} else {
		valid = i.iter.Next()
	}
	if !valid {
		i.key, i.value = nil, nil
		return false
	}
	i.key = slices.Clone(i.iter.Key())
	i.value = slices.Clone(i.iter.Value())
	return true
}

func (i *iterator) Error() error {
	if i.released {
		return i.err
	}
	return i.iter.Error()
}

func (i *iterator) Key() []byte { return i.key }

func (i *iterator) Value() []byte { return i.value }

func (i *iterator) Release() {
	if i.released {
		return
	}
	i.released = true
	i.key, i.value = nil, nil
	i.err = i.iter.Close()
}
