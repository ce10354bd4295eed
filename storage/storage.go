// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
)

// State
// 0x0/ (accounts)
//   -> [address] => discriminator|borsh(LedgerAccount)
//
// 0x1/ (transactions)
//   -> [txID] => result
//
// 0x2/ (genesis)

const (
	accountPrefix byte = iota
	txPrefix
	genesisPrefix
)

const AccountChunks uint16 = 1

// [accountPrefix] + [address] + [chunks]
func AccountKey(addr codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], AccountChunks)
	return k
}

// [txPrefix] + [txID]
//
// Transaction results are written by the host directly into the commit batch,
// never through a transaction view, so the key carries no chunk suffix.
func TxKey(id ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen)
	k[0] = txPrefix
	copy(k[1:], id[:])
	return k
}

// GenesisKey marks that genesis allocations have been written.
func GenesisKey() []byte {
	return []byte{genesisPrefix}
}
