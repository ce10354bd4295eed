// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/near/borsh-go"
)

const (
	DiscriminatorLen = 8
	// AccountSize is the full persisted size of a [LedgerAccount].
	AccountSize = DiscriminatorLen + 8
)

// AccountDiscriminator prefixes every persisted [LedgerAccount].
var AccountDiscriminator = Discriminator("account", "LedgerAccount")

// Discriminator returns the first 8 bytes of sha256("<namespace>:<name>").
func Discriminator(namespace, name string) [DiscriminatorLen]byte {
	var d [DiscriminatorLen]byte
	copy(d[:], hashing.ComputeHash256([]byte(namespace+":"+name)))
	return d
}

// LedgerAccount holds the balance owned by a single address.
type LedgerAccount struct {
	Supply uint64
}

// EncodeAccount returns the discriminator followed by the borsh encoding of
// [acct].
func EncodeAccount(acct *LedgerAccount) ([]byte, error) {
	body, err := borsh.Serialize(*acct)
	if err != nil {
		return nil, err
	}
	v := make([]byte, 0, AccountSize)
	v = append(v, AccountDiscriminator[:]...)
	return append(v, body...), nil
}

func DecodeAccount(v []byte) (*LedgerAccount, error) {
	if len(v) < DiscriminatorLen {
		return nil, fmt.Errorf("%w: length=%d", ErrInvalidAccountData, len(v))
	}
	if !bytes.Equal(v[:DiscriminatorLen], AccountDiscriminator[:]) {
		return nil, ErrAccountDiscriminatorMismatch
	}
	if len(v) != AccountSize {
		return nil, fmt.Errorf("%w: length=%d", ErrInvalidAccountData, len(v))
	}
	acct := new(LedgerAccount)
	if err := borsh.Deserialize(acct, v[DiscriminatorLen:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccountData, err)
	}
	return acct, nil
}
