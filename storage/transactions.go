// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

// StoreTransaction records the encoded result of [id].
func StoreTransaction(w database.KeyValueWriter, id ids.ID, result []byte) error {
	return w.Put(TxKey(id), result)
}

// GetTransaction returns the encoded result of [id], if it has been processed.
func GetTransaction(r database.KeyValueReader, id ids.ID) (bool, []byte, error) {
	v, err := r.Get(TxKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, v, nil
}

func HasTransaction(r database.KeyValueReader, id ids.ID) (bool, error) {
	return r.Has(TxKey(id))
}
