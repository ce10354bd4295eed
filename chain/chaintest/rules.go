// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ledgervm/chain"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	ChainID         ids.ID
	ValidityWindow  int64
	MaxComputeUnits uint64
}

func NewDefaultRules() *Rules {
	return &Rules{
		ChainID:         ids.GenerateTestID(),
		ValidityWindow:  60_000,
		MaxComputeUnits: 100,
	}
}

func (r *Rules) GetChainID() ids.ID { return r.ChainID }

func (r *Rules) GetValidityWindow() int64 { return r.ValidityWindow }

func (r *Rules) GetMaxComputeUnits() uint64 { return r.MaxComputeUnits }
