// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/ledger"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
)

var _ chain.Action = (*Transfer)(nil)

type Transfer struct {
	// Sender must sign the transaction.
	Sender codec.Address `json:"sender"`

	// Recipient is credited [Amount].
	Recipient codec.Address `json:"recipient"`

	Amount uint64 `json:"amount"`
}

func (*Transfer) GetTypeID() uint8 {
	return consts.TransferID
}

func (t *Transfer) StateKeys() state.Keys {
	keys := make(state.Keys, 2)
	keys.Add(string(storage.AccountKey(t.Sender)), state.Write)
	keys.Add(string(storage.AccountKey(t.Recipient)), state.Write)
	return keys
}

func (t *Transfer) Signers() []codec.Address {
	return []codec.Address{t.Sender}
}

func (t *Transfer) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable) ([]byte, error) {
	return t.Apply(ctx, storage.NewAccounts(mu))
}

// Apply runs the instruction against [store]. Both accounts must already
// exist.
func (t *Transfer) Apply(ctx context.Context, store AccountStore) ([]byte, error) {
	if t.Sender == t.Recipient {
		return nil, ledger.ErrInvalidAccounts
	}
	sender, err := store.Get(ctx, t.Sender)
	if err != nil {
		return nil, err
	}
	recipient, err := store.Get(ctx, t.Recipient)
	if err != nil {
		return nil, err
	}
	if err := ledger.Transfer(sender, recipient, t.Amount); err != nil {
		return nil, err
	}
	if err := store.Put(ctx, t.Sender, sender); err != nil {
		return nil, err
	}
	if err := store.Put(ctx, t.Recipient, recipient); err != nil {
		return nil, err
	}
	return (&TransferResult{
		SenderSupply:    sender.Supply,
		RecipientSupply: recipient.Supply,
	}).Bytes(), nil
}

func (*Transfer) ComputeUnits(chain.Rules) uint64 {
	return TransferComputeUnits
}

func (*Transfer) Size() int {
	return codec.AddressLen*2 + consts.Uint64Len
}

func (t *Transfer) Marshal(p *codec.Packer) {
	p.PackAddress(t.Sender)
	p.PackAddress(t.Recipient)
	p.PackUint64(t.Amount)
}

func UnmarshalTransfer(p *codec.Packer) (chain.Action, error) {
	var transfer Transfer
	p.UnpackAddress(&transfer.Sender)
	p.UnpackAddress(&transfer.Recipient)
	transfer.Amount = p.UnpackUint64(false) // zero transfers are allowed
	return &transfer, p.Err()
}
