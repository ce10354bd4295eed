// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/state"
)

// ReadState reads many keys at once, returning one error per key.
type ReadState func(context.Context, [][]byte) ([][]byte, []error)

func GetAccount(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (*LedgerAccount, error) {
	return innerGetAccount(im.GetValue(ctx, AccountKey(addr)))
}

// GetAccountFromState reads [addr] through a batched state reader.
func GetAccountFromState(
	ctx context.Context,
	f ReadState,
	addr codec.Address,
) (*LedgerAccount, error) {
	values, errs := f(ctx, [][]byte{AccountKey(addr)})
	return innerGetAccount(values[0], errs[0])
}

func innerGetAccount(v []byte, err error) (*LedgerAccount, error) {
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return DecodeAccount(v)
}

func PutAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	acct *LedgerAccount,
) error {
	v, err := EncodeAccount(acct)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, AccountKey(addr), v)
}

// CreateAccount allocates a zeroed account at [addr]. It fails if anything
// is already stored there.
func CreateAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
) (*LedgerAccount, error) {
	_, err := mu.GetValue(ctx, AccountKey(addr))
	switch {
	case err == nil:
		return nil, ErrAccountInUse
	case !errors.Is(err, database.ErrNotFound):
		return nil, err
	}
	acct := &LedgerAccount{}
	if err := PutAccount(ctx, mu, addr, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// Accounts is the host-managed account store handed to executing actions.
type Accounts struct {
	mu state.Mutable
}

func NewAccounts(mu state.Mutable) *Accounts {
	return &Accounts{mu: mu}
}

func (a *Accounts) Get(ctx context.Context, addr codec.Address) (*LedgerAccount, error) {
	return GetAccount(ctx, a.mu, addr)
}

func (a *Accounts) Put(ctx context.Context, addr codec.Address, acct *LedgerAccount) error {
	return PutAccount(ctx, a.mu, addr, acct)
}

func (a *Accounts) Create(ctx context.Context, addr codec.Address) (*LedgerAccount, error) {
	return CreateAccount(ctx, a.mu, addr)
}
