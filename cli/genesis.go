// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/utils"
)

// ParseAllocation decodes "<address>=<supply>".
func ParseAllocation(hrp string, s string) (*genesis.CustomAllocation, error) {
	addr, rawSupply, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlloc, s)
	}
	addr = strings.TrimSpace(addr)
	if _, err := codec.ParseAddressBech32(hrp, addr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAlloc, err)
	}
	supply, err := utils.ParseBalance(strings.TrimSpace(rawSupply), decimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAlloc, err)
	}
	return &genesis.CustomAllocation{Address: addr, Balance: supply}, nil
}

// GenerateGenesis writes a default genesis with [allocs] to [out].
func GenerateGenesis(allocs []string, out string) (*genesis.Genesis, error) {
	g := genesis.Default()
	for _, s := range allocs {
		alloc, err := ParseAllocation(g.HRP, s)
		if err != nil {
			return nil, err
		}
		g.CustomAllocation = append(g.CustomAllocation, alloc)
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(out, b, 0o600); err != nil {
		return nil, err
	}
	utils.Outf("{{green}}created genesis and saved to %s{{/}}\n", out)
	return g, nil
}
