// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/utils/units"

const (
	ByteLen   = 1
	BoolLen   = 1
	IDLen     = 32
	IntLen    = 4
	Uint16Len = 2
	Uint64Len = 8
	Int64Len  = 8

	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)
	MaxUint64 = ^uint64(0)

	MillisecondsPerSecond = 1000

	// NetworkSizeLimit bounds any transaction or result we will encode.
	NetworkSizeLimit = 2 * units.MiB

	// MaxActions is the number of instructions a single transaction may carry.
	MaxActions = 16
	// MaxSigners is the number of auths a single transaction may carry.
	MaxSigners = 8
)
