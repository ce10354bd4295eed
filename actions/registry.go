// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/consts"
)

// Register adds both instructions to [r].
func Register(r *chain.Registry) error {
	errs := wrappers.Errs{}
	errs.Add(
		r.RegisterAction(consts.InitializeID, UnmarshalInitialize),
		r.RegisterAction(consts.TransferID, UnmarshalTransfer),
	)
	return errs.Err
}
