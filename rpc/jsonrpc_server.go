// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/genesis"
)

type JSONRPCServer struct {
	vm VM
}

func NewJSONRPCServer(vm VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
	ChainID ids.ID           `json:"chainId"`
}

func (j *JSONRPCServer) Genesis(req *http.Request, _ *struct{}, reply *GenesisReply) error {
	_, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Genesis")
	defer span.End()

	reply.Genesis = j.vm.Genesis()
	reply.ChainID = j.vm.ChainID()
	return nil
}

type AccountArgs struct {
	Address string `json:"address"`
}

type AccountReply struct {
	Exists bool   `json:"exists"`
	Supply uint64 `json:"supply"`
}

func (j *JSONRPCServer) Account(req *http.Request, args *AccountArgs, reply *AccountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Account")
	defer span.End()

	addr, err := codec.ParseAddressBech32(j.vm.Genesis().HRP, args.Address)
	if err != nil {
		return err
	}
	exists, supply, err := j.vm.GetAccount(ctx, addr)
	if err != nil {
		return err
	}
	reply.Exists = exists
	reply.Supply = supply
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

// TxReply is the recorded outcome of a transaction.
type TxReply struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Outputs [][]byte `json:"outputs"`
	Units   uint64   `json:"units"`
}

func (r *TxReply) set(result *chain.Result) {
	r.Success = result.Success
	r.Error = string(result.Error)
	r.Outputs = result.Outputs
	r.Units = result.Units
}

type SubmitTxReply struct {
	TxID ids.ID `json:"txId"`
	TxReply
}

func (j *JSONRPCServer) SubmitTx(req *http.Request, args *SubmitTxArgs, reply *SubmitTxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	tx, result, err := j.vm.Submit(ctx, args.Tx)
	if err != nil {
		j.vm.Logger().Debug("rejected submitted tx", zap.Error(err))
		return err
	}
	reply.TxID = tx.ID()
	reply.set(result)
	return nil
}

type TxArgs struct {
	TxID ids.ID `json:"txId"`
}

func (j *JSONRPCServer) Tx(req *http.Request, args *TxArgs, reply *TxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Tx")
	defer span.End()

	result, err := j.vm.GetTransaction(ctx, args.TxID)
	if err != nil {
		return err
	}
	reply.set(result)
	return nil
}
