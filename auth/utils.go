// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
)

// PrivateKey is a signing key paired with the address it controls.
type PrivateKey struct {
	Address codec.Address
	Bytes   []byte
}

func NewED25519PrivateKey(priv ed25519.PrivateKey) *PrivateKey {
	return &PrivateKey{
		Address: NewED25519Address(priv.PublicKey()),
		Bytes:   priv[:],
	}
}

// GetFactory returns the [chain.AuthFactory] for a given private key.
func GetFactory(pk *PrivateKey) (chain.AuthFactory, error) {
	switch pk.Address[0] {
	case consts.ED25519ID:
		priv, err := ed25519.FromBytes(pk.Bytes)
		if err != nil {
			return nil, err
		}
		return NewED25519Factory(priv), nil
	default:
		return nil, ErrInvalidKeyType
	}
}

// Register adds every supported auth type to [r].
func Register(r *chain.Registry) error {
	return r.RegisterAuth(consts.ED25519ID, UnmarshalED25519)
}
