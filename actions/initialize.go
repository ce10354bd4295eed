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

var _ chain.Action = (*Initialize)(nil)

// Initialize allocates [Account] and sets its supply.
type Initialize struct {
	// Account is the address of the account to allocate. It must not exist.
	Account codec.Address `json:"account"`

	// Payer funds the allocation. Both [Payer] and [Account] sign.
	Payer codec.Address `json:"payer"`

	InitialSupply uint64 `json:"initialSupply"`
}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (i *Initialize) StateKeys() state.Keys {
	return state.Keys{
		string(storage.AccountKey(i.Account)): state.All,
	}
}

func (i *Initialize) Signers() []codec.Address {
	return []codec.Address{i.Account, i.Payer}
}

func (i *Initialize) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable) ([]byte, error) {
	return i.Apply(ctx, storage.NewAccounts(mu))
}

// Apply runs the instruction against [store].
func (i *Initialize) Apply(ctx context.Context, store AccountStore) ([]byte, error) {
	acct, err := store.Create(ctx, i.Account)
	if err != nil {
		return nil, err
	}
	ledger.Initialize(acct, i.InitialSupply)
	if err := store.Put(ctx, i.Account, acct); err != nil {
		return nil, err
	}
	return (&InitializeResult{Supply: acct.Supply}).Bytes(), nil
}

func (*Initialize) ComputeUnits(chain.Rules) uint64 {
	return InitializeComputeUnits
}

func (*Initialize) Size() int {
	return codec.AddressLen*2 + consts.Uint64Len
}

func (i *Initialize) Marshal(p *codec.Packer) {
	p.PackAddress(i.Account)
	p.PackAddress(i.Payer)
	p.PackUint64(i.InitialSupply)
}

func UnmarshalInitialize(p *codec.Packer) (chain.Action, error) {
	var initialize Initialize
	p.UnpackAddress(&initialize.Account)
	p.UnpackAddress(&initialize.Payer)
	initialize.InitialSupply = p.UnpackUint64(false) // an empty account is valid
	return &initialize, p.Err()
}
