// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/trace"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

func newAddr() (codec.Address, string) {
	addr := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	return addr, codec.MustAddressBech32(consts.HRP, addr)
}

func TestParseDefaults(t *testing.T) {
	require := require.New(t)
	g, err := Parse([]byte(`{}`))
	require.NoError(err)
	require.Equal(Default(), g)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "empty hrp", raw: `{"hrp":""}`, err: ErrInvalidHRP},
		{name: "negative window", raw: `{"validityWindow":-1000}`, err: ErrInvalidValidityWindow},
		{name: "misaligned window", raw: `{"validityWindow":1500}`, err: ErrInvalidValidityWindow},
		{name: "zero units", raw: `{"maxComputeUnits":0}`, err: ErrInvalidMaxComputeUnits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Parse([]byte("{"))
	require.Error(t, err)
}

func TestRules(t *testing.T) {
	require := require.New(t)
	g := Default()
	chainID := ids.GenerateTestID()
	r := g.Rules(chainID)
	require.Equal(chainID, r.GetChainID())
	require.Equal(g.ValidityWindow, r.GetValidityWindow())
	require.Equal(g.MaxComputeUnits, r.GetMaxComputeUnits())
}

func TestInitializeState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	a, aStr := newAddr()
	b, bStr := newAddr()

	g := Default()
	g.CustomAllocation = []*CustomAllocation{
		{Address: aStr, Balance: 100},
		{Address: bStr, Balance: 0},
	}
	mu := state.NewSimpleMutable(state.NewReadOnly(memdb.New()))
	require.NoError(g.InitializeState(ctx, trace.Noop(), mu))

	acct, err := storage.GetAccount(ctx, mu, a)
	require.NoError(err)
	require.Equal(uint64(100), acct.Supply)
	acct, err = storage.GetAccount(ctx, mu, b)
	require.NoError(err)
	require.Zero(acct.Supply)
}

func TestInitializeStateErrors(t *testing.T) {
	_, aStr := newAddr()
	_, bStr := newAddr()
	otherHRP := codec.MustAddressBech32("other", codec.CreateAddress(0, ids.GenerateTestID()))

	tests := []struct {
		name   string
		allocs []*CustomAllocation
		err    error
	}{
		{
			name:   "duplicate allocation",
			allocs: []*CustomAllocation{{Address: aStr, Balance: 1}, {Address: aStr, Balance: 2}},
			err:    storage.ErrAccountInUse,
		},
		{
			name:   "supply overflow",
			allocs: []*CustomAllocation{{Address: aStr, Balance: math.MaxUint64}, {Address: bStr, Balance: 1}},
			err:    smath.ErrOverflow,
		},
		{
			name:   "wrong hrp",
			allocs: []*CustomAllocation{{Address: otherHRP, Balance: 1}},
			err:    codec.ErrIncorrectHRP,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Default()
			g.CustomAllocation = tt.allocs
			mu := state.NewSimpleMutable(state.NewReadOnly(memdb.New()))
			require.ErrorIs(t, g.InitializeState(context.Background(), trace.Noop(), mu), tt.err)
		})
	}
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	a, aStr := newAddr()

	g := Default()
	g.CustomAllocation = []*CustomAllocation{{Address: aStr, Balance: 42}}
	genesisBytes, err := json.Marshal(g)
	require.NoError(err)

	written, err := Load(ctx, trace.Noop(), db, g, genesisBytes)
	require.NoError(err)
	require.True(written)

	acct, err := storage.GetAccount(ctx, state.NewReadOnly(db), a)
	require.NoError(err)
	require.Equal(uint64(42), acct.Supply)

	// Reloading the same genesis is a no-op
	written, err = Load(ctx, trace.Noop(), db, g, genesisBytes)
	require.NoError(err)
	require.False(written)

	// A different genesis is refused
	_, err = Load(ctx, trace.Noop(), db, Default(), []byte(`{}`))
	require.ErrorIs(err, ErrGenesisMismatch)
}
