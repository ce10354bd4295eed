// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrAccountNotFound              = errors.New("account not found")
	ErrAccountInUse                 = errors.New("account already in use")
	ErrAccountDiscriminatorMismatch = errors.New("account discriminator mismatch")
	ErrInvalidAccountData           = errors.New("invalid account data")
)
