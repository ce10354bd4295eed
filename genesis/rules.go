// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ledgervm/chain"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	g *Genesis

	chainID ids.ID
}

func NewRules(g *Genesis, chainID ids.ID) *Rules {
	return &Rules{g, chainID}
}

func (r *Rules) GetChainID() ids.ID {
	return r.chainID
}

func (r *Rules) GetValidityWindow() int64 {
	return r.g.ValidityWindow
}

func (r *Rules) GetMaxComputeUnits() uint64 {
	return r.g.MaxComputeUnits
}
