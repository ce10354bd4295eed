// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidKeyType is returned when an invalid key type is provided
	ErrInvalidKeyType = errors.New("invalid key type")
)
