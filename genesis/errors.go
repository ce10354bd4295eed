// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrInvalidHRP             = errors.New("invalid hrp")
	ErrInvalidValidityWindow  = errors.New("invalid validity window")
	ErrInvalidMaxComputeUnits = errors.New("invalid max compute units")
	ErrGenesisMismatch        = errors.New("database was initialized with a different genesis")
)
