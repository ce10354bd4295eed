// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/utils"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type CustomAllocation struct {
	Address string `json:"address"` // bech32 address
	Balance uint64 `json:"balance"`
}

type Genesis struct {
	HRP string `json:"hrp"`

	// Tx Parameters
	ValidityWindow  int64  `json:"validityWindow"` // ms
	MaxComputeUnits uint64 `json:"maxComputeUnits"`

	// Allocations
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
}

func Default() *Genesis {
	return &Genesis{
		HRP: consts.HRP,

		ValidityWindow:  60 * consts.MillisecondsPerSecond,
		MaxComputeUnits: consts.MaxActions,
	}
}

// Parse decodes [b], filling any omitted parameter with its default.
func Parse(b []byte) (*Genesis, error) {
	g := Default()
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf(
			"failed to unmarshal config %s: %w",
			string(b),
			err,
		)
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Verify() error {
	switch {
	case len(g.HRP) == 0:
		return ErrInvalidHRP
	case g.ValidityWindow <= 0 || g.ValidityWindow%consts.MillisecondsPerSecond != 0:
		return fmt.Errorf("%w: %d", ErrInvalidValidityWindow, g.ValidityWindow)
	case g.MaxComputeUnits == 0:
		return ErrInvalidMaxComputeUnits
	default:
		return nil
	}
}

// ChainID identifies the chain created from [genesisBytes].
func ChainID(genesisBytes []byte) ids.ID {
	return utils.ToID(genesisBytes)
}

func (g *Genesis) Rules(chainID ids.ID) *Rules {
	return NewRules(g, chainID)
}

// InitializeState allocates every custom account. The total allocated supply
// must fit in a uint64.
func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		addr, err := codec.ParseAddressBech32(g.HRP, alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		supply, err = smath.Add64(supply, alloc.Balance)
		if err != nil {
			return err
		}
		acct, err := storage.CreateAccount(ctx, mu, addr)
		if err != nil {
			return fmt.Errorf("%w: addr=%s", err, alloc.Address)
		}
		acct.Supply = alloc.Balance
		if err := storage.PutAccount(ctx, mu, addr, acct); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}

// Load writes the state of [g] to [db] the first time it is called for a
// database. Later calls only check that [genesisBytes] matches what the
// database was created with. It reports whether state was written.
func Load(
	ctx context.Context,
	tracer trace.Tracer,
	db state.Database,
	g *Genesis,
	genesisBytes []byte,
) (bool, error) {
	ctx, span := tracer.Start(ctx, "Genesis.Load")
	defer span.End()

	chainID := ChainID(genesisBytes)
	stored, err := db.Get(storage.GenesisKey())
	switch {
	case err == nil:
		if !bytes.Equal(stored, chainID[:]) {
			return false, fmt.Errorf("%w: stored=%x chainID=%s", ErrGenesisMismatch, stored, chainID)
		}
		return false, nil
	case !errors.Is(err, database.ErrNotFound):
		return false, err
	}

	mu := state.NewSimpleMutable(state.NewReadOnly(db))
	if err := g.InitializeState(ctx, tracer, mu); err != nil {
		return false, err
	}
	batch := db.NewBatch()
	if err := mu.Commit(batch); err != nil {
		return false, err
	}
	if err := batch.Put(storage.GenesisKey(), chainID[:]); err != nil {
		return false, err
	}
	return true, batch.Write()
}
