// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/storage"
)

func TestInitialize(t *testing.T) {
	for _, supply := range []uint64{0, 1, 1000, math.MaxUint64} {
		acct := &storage.LedgerAccount{}
		Initialize(acct, supply)
		require.Equal(t, supply, acct.Supply)
	}
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		name              string
		sender            uint64
		recipient         uint64
		amount            uint64
		err               error
		expectedSender    uint64
		expectedRecipient uint64
	}{
		{
			name:              "simple",
			sender:            100,
			recipient:         0,
			amount:            30,
			expectedSender:    70,
			expectedRecipient: 30,
		},
		{
			name:              "insufficient funds",
			sender:            70,
			recipient:         30,
			amount:            1000,
			err:               ErrInsufficientFunds,
			expectedSender:    70,
			expectedRecipient: 30,
		},
		{
			name:              "entire supply",
			sender:            50,
			recipient:         5,
			amount:            50,
			expectedSender:    0,
			expectedRecipient: 55,
		},
		{
			name:              "zero amount",
			sender:            10,
			recipient:         20,
			amount:            0,
			expectedSender:    10,
			expectedRecipient: 20,
		},
		{
			name:              "zero amount from empty account",
			amount:            0,
			expectedSender:    0,
			expectedRecipient: 0,
		},
		{
			name:              "one over supply",
			sender:            50,
			amount:            51,
			err:               ErrInsufficientFunds,
			expectedSender:    50,
			expectedRecipient: 0,
		},
		{
			name:              "recipient overflow",
			sender:            1,
			recipient:         math.MaxUint64,
			amount:            1,
			err:               ErrOverflow,
			expectedSender:    1,
			expectedRecipient: math.MaxUint64,
		},
		{
			name:              "recipient reaches max",
			sender:            1,
			recipient:         math.MaxUint64 - 1,
			amount:            1,
			expectedSender:    0,
			expectedRecipient: math.MaxUint64,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			sender := &storage.LedgerAccount{Supply: tt.sender}
			recipient := &storage.LedgerAccount{Supply: tt.recipient}

			err := Transfer(sender, recipient, tt.amount)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.expectedSender, sender.Supply)
			require.Equal(tt.expectedRecipient, recipient.Supply)
		})
	}
}

func TestTransferSequence(t *testing.T) {
	require := require.New(t)
	a := &storage.LedgerAccount{}
	b := &storage.LedgerAccount{}
	Initialize(a, 100)

	require.NoError(Transfer(a, b, 30))
	require.Equal(uint64(70), a.Supply)
	require.Equal(uint64(30), b.Supply)

	err := Transfer(a, b, 1000)
	require.ErrorIs(err, ErrInsufficientFunds)
	require.Contains(err.Error(), "insufficient funds")
	require.Equal(uint64(70), a.Supply)
	require.Equal(uint64(30), b.Supply)
}

func TestTransferConservesSupply(t *testing.T) {
	require := require.New(t)
	a := &storage.LedgerAccount{Supply: 1_000_000}
	b := &storage.LedgerAccount{Supply: 12_345}
	total := a.Supply + b.Supply

	for i, amount := range []uint64{1, 500_000, 7, 2_000_000, 499_992, 3} {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		_ = Transfer(from, to, amount)
		require.Equal(total, a.Supply+b.Supply)
	}
}

func TestTransferSameAccount(t *testing.T) {
	require := require.New(t)
	acct := &storage.LedgerAccount{Supply: 10}
	require.ErrorIs(Transfer(acct, acct, 5), ErrInvalidAccounts)
	require.Equal(uint64(10), acct.Supply)
}
