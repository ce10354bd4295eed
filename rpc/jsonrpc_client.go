// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/ledgervm/actions"
	"github.com/ava-labs/ledgervm/auth"
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/utils"

	avarpc "github.com/ava-labs/avalanchego/utils/rpc"
)

type JSONRPCClient struct {
	requester avarpc.EndpointRequester

	g       *genesis.Genesis
	chainID ids.ID
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester: avarpc.NewEndpointRequester(uri)}
}

// Genesis returns the genesis of the chain and its ID. The result is cached.
func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, ids.ID, error) {
	if cli.g != nil {
		return cli.g, cli.chainID, nil
	}

	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".genesis",
		nil,
		resp,
	)
	if err != nil {
		return nil, ids.Empty, err
	}
	cli.g = resp.Genesis
	cli.chainID = resp.ChainID
	return resp.Genesis, resp.ChainID, nil
}

func (cli *JSONRPCClient) Account(ctx context.Context, addr string) (bool, uint64, error) {
	resp := new(AccountReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".account",
		&AccountArgs{Address: addr},
		resp,
	)
	return resp.Exists, resp.Supply, err
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, d []byte) (*SubmitTxReply, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".submitTx",
		&SubmitTxArgs{Tx: d},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Tx(ctx context.Context, id ids.ID) (*TxReply, error) {
	resp := new(TxReply)
	err := cli.requester.SendRequest(
		ctx,
		Name+".tx",
		&TxArgs{TxID: id},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Registry returns a registry of every action and auth the node accepts.
func Registry() (*chain.Registry, error) {
	r := chain.NewRegistry()
	errs := wrappers.Errs{}
	errs.Add(
		actions.Register(r),
		auth.Register(r),
	)
	return r, errs.Err
}

// GenerateTransaction signs [actionList] with every factory in [factories]
// for the chain the client is connected to. The transaction expires at the end
// of the validity window.
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	actionList []chain.Action,
	factories ...chain.AuthFactory,
) (*chain.Transaction, error) {
	if len(factories) == 0 {
		return nil, ErrNoFactories
	}
	g, chainID, err := cli.Genesis(ctx)
	if err != nil {
		return nil, err
	}
	registry, err := Registry()
	if err != nil {
		return nil, err
	}
	rules := g.Rules(chainID)
	var units uint64
	for _, action := range actionList {
		units += action.ComputeUnits(rules)
	}
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(-1, g.ValidityWindow),
		ChainID:   chainID,
		MaxUnits:  units,
	}
	return chain.NewTx(base, actionList).Sign(registry, factories...)
}

// ParseAddress decodes a bech32 address of the connected chain.
func (cli *JSONRPCClient) ParseAddress(ctx context.Context, addr string) (codec.Address, error) {
	g, _, err := cli.Genesis(ctx)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddressBech32(g.HRP, addr)
}
