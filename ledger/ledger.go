// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the token program: setting the supply of a new
// account and moving supply between two accounts.
package ledger

import (
	"fmt"

	"github.com/ava-labs/ledgervm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Initialize sets the supply of a freshly allocated account.
func Initialize(acct *storage.LedgerAccount, initialSupply uint64) {
	acct.Supply = initialSupply
}

// Transfer moves [amount] from [sender] to [recipient]. Every check runs
// before the first write, so on error neither account is modified.
func Transfer(sender, recipient *storage.LedgerAccount, amount uint64) error {
	if sender == recipient {
		return ErrInvalidAccounts
	}
	if sender.Supply < amount {
		return fmt.Errorf("%w: supply=%d amount=%d", ErrInsufficientFunds, sender.Supply, amount)
	}
	nrecipient, err := smath.Add64(recipient.Supply, amount)
	if err != nil {
		return fmt.Errorf("%w: supply=%d amount=%d", ErrOverflow, recipient.Supply, amount)
	}
	sender.Supply -= amount
	recipient.Supply = nrecipient
	return nil
}
