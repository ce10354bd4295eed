// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/genesis"
)

type VM interface {
	Logger() logging.Logger
	Tracer() trace.Tracer
	ChainID() ids.ID
	Genesis() *genesis.Genesis
	Submit(ctx context.Context, txBytes []byte) (*chain.Transaction, *chain.Result, error)
	GetAccount(ctx context.Context, addr codec.Address) (bool, uint64, error)
	GetTransaction(ctx context.Context, id ids.ID) (*chain.Result, error)
}
