// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Name is used as the service name for RPC and as the tracer app name.
	Name = "ledgervm"

	// HRP is the human-readable part of every bech32 account address.
	HRP = "ledger"

	Version = "v0.1.0"
)

// Action TypeIDs
const (
	InitializeID uint8 = 0
	TransferID   uint8 = 1
)

// Auth TypeIDs
const (
	ED25519ID uint8 = 0
)
