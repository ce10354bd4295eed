// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/storage"
)

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_account_store.go . AccountStore

// AccountStore is the host-managed account storage an instruction runs
// against. Implementations enforce allocation and access rules; the program
// only reads and writes the accounts it is handed.
type AccountStore interface {
	// Get returns the account at [addr] or [storage.ErrAccountNotFound].
	Get(ctx context.Context, addr codec.Address) (*storage.LedgerAccount, error)
	// Put persists [acct] at [addr].
	Put(ctx context.Context, addr codec.Address, acct *storage.LedgerAccount) error
	// Create allocates a zeroed account at [addr] or fails with
	// [storage.ErrAccountInUse].
	Create(ctx context.Context, addr codec.Address) (*storage.LedgerAccount, error)
}
