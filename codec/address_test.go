// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())
	addrStr, err := addr.MarshalText()
	require.NoError(err)

	var parsedAddr Address
	require.NoError(parsedAddr.UnmarshalText(addrStr))
	require.Equal(addr, parsedAddr)
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())

	addrJSONBytes, err := json.Marshal(addr)
	require.NoError(err)

	var parsedAddr Address
	require.NoError(json.Unmarshal(addrJSONBytes, &parsedAddr))
	require.Equal(addr, parsedAddr)
}

func TestAddressUnmarshalTextWrongLength(t *testing.T) {
	require := require.New(t)
	var a Address
	err := a.UnmarshalText([]byte("0x0102"))
	require.ErrorIs(err, ErrInvalidAddress)
}

func TestAddressBech32(t *testing.T) {
	tests := []struct {
		name      string
		hrp       string
		parseHRP  string
		expectErr error
	}{
		{
			name:     "same hrp",
			hrp:      "ledger",
			parseHRP: "ledger",
		},
		{
			name:      "different hrp",
			hrp:       "ledger",
			parseHRP:  "other",
			expectErr: ErrIncorrectHRP,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			addr := CreateAddress(1, ids.GenerateTestID())

			s, err := AddressBech32(tt.hrp, addr)
			require.NoError(err)
			require.Equal(s, MustAddressBech32(tt.hrp, addr))

			parsed, err := ParseAddressBech32(tt.parseHRP, s)
			require.ErrorIs(err, tt.expectErr)
			if tt.expectErr != nil {
				require.Equal(EmptyAddress, parsed)
				return
			}
			require.Equal(addr, parsed)
		})
	}
}

func TestParseAddressBech32Garbage(t *testing.T) {
	require := require.New(t)
	_, err := ParseAddressBech32("ledger", "ledger1notanaddress")
	require.Error(err)
}
