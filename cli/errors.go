// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrDuplicate        = errors.New("duplicate")
	ErrNoChains         = errors.New("no available chains")
	ErrNoKeys           = errors.New("no available keys")
	ErrTxFailed         = errors.New("tx failed")
	ErrInvalidAlloc     = errors.New("invalid allocation")
	ErrAborted          = errors.New("aborted")
	ErrAccountNotExists = errors.New("account does not exist")
)
