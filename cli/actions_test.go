// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/ledger"
	"github.com/ava-labs/ledgervm/server"
	"github.com/ava-labs/ledgervm/trace"
	"github.com/ava-labs/ledgervm/vm"
)

func startNode(t *testing.T, allocs ...*genesis.CustomAllocation) string {
	require := require.New(t)
	g := genesis.Default()
	g.CustomAllocation = allocs
	genesisBytes, err := json.Marshal(g)
	require.NoError(err)

	v, err := vm.New(context.Background(), logging.NoLog{}, config.Default(), genesisBytes,
		vm.WithDatabase(memdb.New()), vm.WithTracer(trace.Noop()))
	require.NoError(err)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s := server.New(logging.NoLog{}, listener, server.DefaultHTTPConfig(), nil, nil, time.Second)
	require.NoError(server.Register(s, v, nil))
	go func() { _ = s.Dispatch() }()
	t.Cleanup(func() {
		_ = s.Shutdown()
		_ = v.Shutdown()
	})
	return "http://" + s.Addr().String()
}

func TestInitializeAndTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	h := newTestHandler(t)

	payer, err := h.GenerateKey()
	require.NoError(err)
	payerAddr := codec.MustAddressBech32(consts.HRP, payer.Address)
	uri := startNode(t, &genesis.CustomAllocation{Address: payerAddr, Balance: 0})

	// Commands that need a chain fail before one is set
	_, err = h.Balance(ctx, "")
	require.ErrorIs(err, ErrNoChains)

	_, err = h.SetChain(ctx, uri)
	require.NoError(err)
	require.NoError(h.PrintChainInfo(ctx))

	account, err := h.Initialize(ctx, 100)
	require.NoError(err)
	stored, err := h.GetKey(account)
	require.NoError(err)
	require.NotNil(stored)

	accountAddr := codec.MustAddressBech32(consts.HRP, account)
	supply, err := h.Balance(ctx, accountAddr)
	require.NoError(err)
	require.Equal(uint64(100), supply)

	// Send from the new account back to the payer
	require.NoError(h.StoreDefaultKey(account))
	result, err := h.Transfer(ctx, payerAddr, 30, true)
	require.NoError(err)
	require.Equal(uint64(70), result.SenderSupply)
	require.Equal(uint64(30), result.RecipientSupply)

	_, err = h.Transfer(ctx, payerAddr, 71, true)
	require.ErrorIs(err, ErrTxFailed)
	require.ErrorContains(err, ledger.ErrInsufficientFunds.Error())

	supply, err = h.Balance(ctx, "")
	require.NoError(err)
	require.Equal(uint64(70), supply)

	require.NoError(h.ListKeys(ctx))

	unknown, err := newKey()
	require.NoError(err)
	_, err = h.Balance(ctx, codec.MustAddressBech32(consts.HRP, unknown.Address))
	require.ErrorIs(err, ErrAccountNotExists)
}
