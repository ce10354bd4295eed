// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
)

const ED25519Size = ed25519.PublicKeyLen + ed25519.SignatureLen

var _ chain.Auth = (*ED25519)(nil)

type ED25519 struct {
	Signer    ed25519.PublicKey `json:"signer"`
	Signature ed25519.Signature `json:"signature"`

	addr codec.Address
}

// NewED25519Address derives the account address controlled by [pk].
func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(consts.ED25519ID, hashing.ComputeHash256Array(pk[:]))
}

func (*ED25519) GetTypeID() uint8 {
	return consts.ED25519ID
}

func (d *ED25519) Address() codec.Address {
	if d.addr == codec.EmptyAddress {
		d.addr = NewED25519Address(d.Signer)
	}
	return d.addr
}

func (d *ED25519) Verify(_ context.Context, msg []byte) error {
	if !ed25519.Verify(msg, d.Signer, d.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

func (*ED25519) Size() int {
	return ED25519Size
}

func (d *ED25519) Marshal(p *codec.Packer) {
	p.PackFixedBytes(d.Signer[:])
	p.PackFixedBytes(d.Signature[:])
}

func UnmarshalED25519(p *codec.Packer) (chain.Auth, error) {
	var (
		d         ED25519
		signer    []byte
		signature []byte
	)
	p.UnpackFixedBytes(ed25519.PublicKeyLen, &signer)
	p.UnpackFixedBytes(ed25519.SignatureLen, &signature)
	if err := p.Err(); err != nil {
		return nil, err
	}
	copy(d.Signer[:], signer)
	copy(d.Signature[:], signature)
	return &d, nil
}

var _ chain.AuthFactory = (*ED25519Factory)(nil)

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func (d *ED25519Factory) Sign(msg []byte) (chain.Auth, error) {
	sig := ed25519.Sign(msg, d.priv)
	return &ED25519{Signer: d.priv.PublicKey(), Signature: sig}, nil
}

func (d *ED25519Factory) Address() codec.Address {
	return NewED25519Address(d.priv.PublicKey())
}
