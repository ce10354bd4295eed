// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/state"
)

type Rules interface {
	GetChainID() ids.ID
	// GetValidityWindow is how far in the future (in ms) a transaction
	// timestamp may be.
	GetValidityWindow() int64
	GetMaxComputeUnits() uint64
}

type Action interface {
	// GetTypeID uniquely identifies each supported [Action]. We use IDs to
	// avoid reflection.
	GetTypeID() uint8

	// ComputeUnits is the amount of compute required to call [Execute].
	ComputeUnits(Rules) uint64

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution, with the permission each requires.
	//
	// If a key is touched that was not declared, execution fails.
	StateKeys() state.Keys

	// Signers returns every address that must sign a transaction carrying
	// this action.
	Signers() []codec.Address

	// Execute runs the action against [mu]. The output is recorded in the
	// transaction result. An error aborts the whole transaction and every
	// change it made is rolled back.
	Execute(ctx context.Context, r Rules, mu state.Mutable) ([]byte, error)

	Size() int
	Marshal(p *codec.Packer)
}

type Auth interface {
	GetTypeID() uint8

	// Verify returns an error if the signature over [msg] is invalid.
	Verify(ctx context.Context, msg []byte) error

	// Address is the account controlled by this credential.
	Address() codec.Address

	Size() int
	Marshal(p *codec.Packer)
}

type AuthFactory interface {
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}
