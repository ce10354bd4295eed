// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
)

type InitializeResult struct {
	Supply uint64 `json:"supply"`
}

func (r *InitializeResult) Bytes() []byte {
	p := codec.NewWriter(consts.Uint64Len, consts.Uint64Len)
	p.PackUint64(r.Supply)
	return p.Bytes()
}

func UnmarshalInitializeResult(b []byte) (*InitializeResult, error) {
	p := codec.NewReader(b, consts.Uint64Len)
	r := &InitializeResult{Supply: p.UnpackUint64(false)}
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, chain.ErrInvalidObject
	}
	return r, nil
}

type TransferResult struct {
	SenderSupply    uint64 `json:"senderSupply"`
	RecipientSupply uint64 `json:"recipientSupply"`
}

func (r *TransferResult) Bytes() []byte {
	p := codec.NewWriter(consts.Uint64Len*2, consts.Uint64Len*2)
	p.PackUint64(r.SenderSupply)
	p.PackUint64(r.RecipientSupply)
	return p.Bytes()
}

func UnmarshalTransferResult(b []byte) (*TransferResult, error) {
	p := codec.NewReader(b, consts.Uint64Len*2)
	r := &TransferResult{
		SenderSupply:    p.UnpackUint64(false),
		RecipientSupply: p.UnpackUint64(false),
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, chain.ErrInvalidObject
	}
	return r, nil
}
