// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"errors"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/state"
)

const TestActionTypeID uint8 = 0xf0

var (
	ErrTestActionExecute = errors.New("test action execution error")

	_ chain.Action = (*TestAction)(nil)
)

// TestAction writes [WriteValue] to every key in [WriteKeys] and then fails if
// [ShouldErr] is set.
type TestAction struct {
	NumComputeUnits uint64
	WriteKeys       [][]byte
	WriteValue      []byte
	Signer          codec.Address
	ShouldErr       bool
}

func (*TestAction) GetTypeID() uint8 {
	return TestActionTypeID
}

func (t *TestAction) ComputeUnits(chain.Rules) uint64 {
	return t.NumComputeUnits
}

func (t *TestAction) StateKeys() state.Keys {
	keys := make(state.Keys, len(t.WriteKeys))
	for _, k := range t.WriteKeys {
		keys.Add(string(k), state.All)
	}
	return keys
}

func (t *TestAction) Signers() []codec.Address {
	if t.Signer == codec.EmptyAddress {
		return nil
	}
	return []codec.Address{t.Signer}
}

func (t *TestAction) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable) ([]byte, error) {
	for _, k := range t.WriteKeys {
		if err := mu.Insert(ctx, k, t.WriteValue); err != nil {
			return nil, err
		}
	}
	if t.ShouldErr {
		return nil, ErrTestActionExecute
	}
	return t.WriteValue, nil
}

func (t *TestAction) Size() int {
	size := consts.Uint64Len + consts.IntLen + codec.BytesLen(t.WriteValue) + codec.AddressLen + consts.BoolLen
	for _, k := range t.WriteKeys {
		size += codec.BytesLen(k)
	}
	return size
}

func (t *TestAction) Marshal(p *codec.Packer) {
	p.PackUint64(t.NumComputeUnits)
	p.PackInt(len(t.WriteKeys))
	for _, k := range t.WriteKeys {
		p.PackBytes(k)
	}
	p.PackBytes(t.WriteValue)
	p.PackFixedBytes(t.Signer[:])
	p.PackBool(t.ShouldErr)
}

func UnmarshalTestAction(p *codec.Packer) (chain.Action, error) {
	var t TestAction
	t.NumComputeUnits = p.UnpackUint64(false)
	numKeys := p.UnpackInt(false)
	if numKeys > consts.MaxActions {
		return nil, chain.ErrInvalidObject
	}
	for i := 0; i < numKeys; i++ {
		var k []byte
		p.UnpackBytes(consts.NetworkSizeLimit, true, &k)
		t.WriteKeys = append(t.WriteKeys, k)
	}
	p.UnpackBytes(consts.NetworkSizeLimit, false, &t.WriteValue)
	var signer []byte
	p.UnpackFixedBytes(codec.AddressLen, &signer)
	copy(t.Signer[:], signer)
	t.ShouldErr = p.UnpackBool()
	return &t, p.Err()
}
