// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressLen = 33

	// These consts are pulled from BIP-173: https://github.com/bitcoin/bips/blob/master/bip-0173.mediawiki
	fromBits      = 8
	toBits        = 5
	maxBech32Size = 90
)

// Address identifies a ledger account: one type byte (the auth scheme that
// controls it) followed by a 32 byte ID.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// AddressBech32 returns a Bech32 address from [hrp] and [p].
func AddressBech32(hrp string, p Address) (string, error) {
	expanded, err := bech32.ConvertBits(p[:], fromBits, toBits, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, expanded)
}

// MustAddressBech32 returns a Bech32 address from [hrp] and [p] or panics.
func MustAddressBech32(hrp string, p Address) string {
	addr, err := AddressBech32(hrp, p)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddressBech32 parses a Bech32 encoded address string and extracts
// its [AddressBytes]. If there is an error reading the address or the hrp
// value is not valid, ParseAddress returns an EmptyAddress and error.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	if len(saddr) > maxBech32Size {
		return EmptyAddress, fmt.Errorf("%w: address too long", ErrInvalidAddress)
	}
	phrp, p, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, ErrIncorrectHRP
	}
	// The parsed value may be greater than [minLength] because the
	// underlying bech32 implementation requires bytes to each encode 5 bits
	// instead of 8 (and we need to pad the input to ensure we fill all bytes):
	// https://github.com/btcsuite/btcd/blob/902f797b0c4b3af3f7196d2f5d2343931d1b2bdf/btcutil/bech32/bech32.go#L325-L331
	converted, err := bech32.ConvertBits(p, toBits, fromBits, false)
	if err != nil {
		return EmptyAddress, err
	}
	if len(converted) != AddressLen {
		return EmptyAddress, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidAddress, AddressLen, len(converted))
	}
	return Address(converted), nil
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	result := make([]byte, len(a)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], a[:])
	return result, nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	if len(input) >= 2 && input[0] == '0' && input[1] == 'x' {
		input = input[2:]
	}
	decoded, err := hex.DecodeString(string(input))
	if err != nil {
		return err
	}
	if len(decoded) != AddressLen {
		return fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidAddress, AddressLen, len(decoded))
	}
	copy(a[:], decoded)
	return nil
}
