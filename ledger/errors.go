// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverflow          = errors.New("supply overflow")
	ErrInvalidAccounts   = errors.New("sender and recipient must be distinct accounts")
)
