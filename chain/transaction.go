// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/utils"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

type Transaction struct {
	Base    *Base    `json:"base"`
	Actions []Action `json:"actions"`
	Auth    []Auth   `json:"auth"`

	digest []byte
	bytes  []byte
	size   int
	id     ids.ID
}

func NewTx(base *Base, actions []Action) *Transaction {
	return &Transaction{
		Base:    base,
		Actions: actions,
	}
}

// Digest is the message every auth signs: the base followed by each action
// prefixed with its type.
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.IntLen
	for _, action := range t.Actions {
		size += consts.ByteLen + action.Size()
	}
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.marshalDigest(p)
	return p.Bytes(), p.Err()
}

// Sign attaches one auth per factory and reloads the transaction from its
// bytes, so the returned transaction is exactly what a peer would decode.
func (t *Transaction) Sign(registry *Registry, factories ...AuthFactory) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	t.Auth = make([]Auth, 0, len(factories))
	t.bytes = nil
	size := len(msg) + consts.IntLen
	for _, factory := range factories {
		auth, err := factory.Sign(msg)
		if err != nil {
			return nil, err
		}
		t.Auth = append(t.Auth, auth)
		size += consts.ByteLen + auth.Size()
	}

	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	return UnmarshalTx(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit), registry)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

// StateKeys is the union of every key declared by the actions of [t].
func (t *Transaction) StateKeys() state.Keys {
	stateKeys := make(state.Keys)
	for _, action := range t.Actions {
		for k, v := range action.StateKeys() {
			stateKeys.Add(k, v)
		}
	}
	return stateKeys
}

// ComputeUnits sums the compute required by every action.
func (t *Transaction) ComputeUnits(r Rules) (uint64, error) {
	var units uint64
	for _, action := range t.Actions {
		nunits, err := smath.Add64(units, action.ComputeUnits(r))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrComputeBudgetExceeded, err)
		}
		units = nunits
	}
	return units, nil
}

// Signers returns the set of addresses that must sign [t].
func (t *Transaction) Signers() set.Set[codec.Address] {
	signers := set.NewSet[codec.Address](len(t.Actions))
	for _, action := range t.Actions {
		signers.Add(action.Signers()...)
	}
	return signers
}

// Verify checks everything about [t] that does not depend on state: base
// validity, compute limits, signatures and signer coverage.
func (t *Transaction) Verify(ctx context.Context, r Rules, timestamp int64) (uint64, error) {
	if err := t.Base.Execute(r, timestamp); err != nil {
		return 0, err
	}
	units, err := t.ComputeUnits(r)
	if err != nil {
		return 0, err
	}
	if units > t.Base.MaxUnits || units > r.GetMaxComputeUnits() {
		return 0, fmt.Errorf(
			"%w: units=%d maxUnits=%d ruleMax=%d",
			ErrComputeBudgetExceeded,
			units,
			t.Base.MaxUnits,
			r.GetMaxComputeUnits(),
		)
	}
	msg, err := t.Digest()
	if err != nil {
		return 0, err
	}
	signed := set.NewSet[codec.Address](len(t.Auth))
	for i, auth := range t.Auth {
		if err := auth.Verify(ctx, msg); err != nil {
			return 0, fmt.Errorf("%w: auth=%d: %w", ErrInvalidSignature, i, err)
		}
		signed.Add(auth.Address())
	}
	for signer := range t.Signers() {
		if !signed.Contains(signer) {
			return 0, fmt.Errorf("%w: %s", ErrMissingSigner, signer)
		}
	}
	return units, nil
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	t.marshalDigest(p)
	p.PackInt(len(t.Auth))
	for _, auth := range t.Auth {
		p.PackByte(auth.GetTypeID())
		auth.Marshal(p)
	}
	return p.Err()
}

func (t *Transaction) marshalDigest(p *codec.Packer) {
	t.Base.Marshal(p)
	p.PackInt(len(t.Actions))
	for _, action := range t.Actions {
		p.PackByte(action.GetTypeID())
		action.Marshal(p)
	}
}

// ParseTx decodes a complete transaction from [raw], rejecting trailing bytes.
func ParseTx(raw []byte, registry *Registry) (*Transaction, error) {
	if len(raw) > consts.NetworkSizeLimit {
		return nil, fmt.Errorf("%w: size=%d", ErrTransactionTooLong, len(raw))
	}
	p := codec.NewReader(raw, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p, registry)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return tx, nil
}

func UnmarshalTx(p *codec.Packer, registry *Registry) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	actions, err := unmarshalActions(p, registry)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal actions", err)
	}
	digest := p.Offset()
	auths, err := unmarshalAuths(p, registry)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}

	var tx Transaction
	tx.Base = base
	tx.Actions = actions
	tx.Auth = auths
	if err := p.Err(); err != nil {
		return nil, err
	}
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}

func unmarshalActions(p *codec.Packer, registry *Registry) ([]Action, error) {
	actionCount := p.UnpackInt(false)
	if err := p.Err(); err != nil {
		return nil, err
	}
	switch {
	case actionCount == 0:
		return nil, ErrNoActions
	case actionCount > consts.MaxActions:
		return nil, fmt.Errorf("%w: count=%d", ErrTooManyActions, actionCount)
	}
	actions := make([]Action, 0, actionCount)
	for i := 0; i < actionCount; i++ {
		actionType := p.UnpackByte()
		unmarshalAction, ok := registry.LookupAction(actionType)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownActionType, actionType)
		}
		action, err := unmarshalAction(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal action", err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func unmarshalAuths(p *codec.Packer, registry *Registry) ([]Auth, error) {
	authCount := p.UnpackInt(false)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if authCount > consts.MaxSigners {
		return nil, fmt.Errorf("%w: count=%d", ErrTooManySigners, authCount)
	}
	auths := make([]Auth, 0, authCount)
	for i := 0; i < authCount; i++ {
		authType := p.UnpackByte()
		unmarshalAuth, ok := registry.LookupAuth(authType)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownAuthType, authType)
		}
		auth, err := unmarshalAuth(p)
		if err != nil {
			return nil, err
		}
		auths = append(auths, auth)
	}
	return auths, nil
}
