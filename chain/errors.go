// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing
	ErrMisalignedTime     = errors.New("misaligned time")
	ErrTooManyActions     = errors.New("too many actions")
	ErrTooManySigners     = errors.New("too many signers")
	ErrNoActions          = errors.New("no actions")
	ErrUnknownActionType  = errors.New("unknown action type")
	ErrUnknownAuthType    = errors.New("unknown auth type")
	ErrTransactionTooLong = errors.New("transaction too long")
	ErrInvalidObject      = errors.New("invalid object")

	// Base
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrInvalidChainID    = errors.New("invalid chain id")

	// Verification
	ErrComputeBudgetExceeded = errors.New("compute budget exceeded")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrMissingSigner         = errors.New("missing signer")
	ErrDuplicateTx           = errors.New("duplicate transaction")
)
