// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"

	"github.com/ava-labs/ledgervm/auth"
	"github.com/ava-labs/ledgervm/cli/prompt"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/crypto/ed25519"
	"github.com/ava-labs/ledgervm/rpc"
	"github.com/ava-labs/ledgervm/utils"
)

func newKey() (*auth.PrivateKey, error) {
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return auth.NewED25519PrivateKey(priv), nil
}

// GenerateKey stores a fresh key. The first key stored becomes the default.
func (h *Handler) GenerateKey() (*auth.PrivateKey, error) {
	pk, err := newKey()
	if err != nil {
		return nil, err
	}
	if err := h.StoreKey(pk); err != nil {
		return nil, err
	}
	if _, err := h.GetDefaultKey(false); errors.Is(err, ErrNoKeys) {
		if err := h.StoreDefaultKey(pk.Address); err != nil {
			return nil, err
		}
	}
	utils.Outf(
		"{{green}}created address:{{/}} %s\n",
		codec.MustAddressBech32(consts.HRP, pk.Address),
	)
	return pk, nil
}

// ListKeys prints every stored key, with its supply when a chain is set.
func (h *Handler) ListKeys(ctx context.Context) error {
	keys, err := h.GetKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return nil
	}
	var cli *rpc.JSONRPCClient
	if _, uris, err := h.GetDefaultChain(false); err == nil {
		cli = rpc.NewJSONRPCClient(uris[0])
	}
	utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(keys))
	for i, key := range keys {
		addr := codec.MustAddressBech32(consts.HRP, key.Address)
		if cli == nil {
			utils.Outf("%d) {{cyan}}address:{{/}} %s\n", i, addr)
			continue
		}
		exists, supply, err := cli.Account(ctx, addr)
		if err != nil {
			return err
		}
		if !exists {
			utils.Outf("%d) {{cyan}}address:{{/}} %s {{yellow}}[not initialized]{{/}}\n", i, addr)
			continue
		}
		utils.Outf(
			"%d) {{cyan}}address:{{/}} %s {{cyan}}supply:{{/}} %s\n",
			i,
			addr,
			utils.FormatBalance(supply, decimals),
		)
	}
	return nil
}

// SetKey prompts for the key used to sign by default.
func (h *Handler) SetKey(ctx context.Context) error {
	keys, err := h.GetKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return nil
	}
	if err := h.ListKeys(ctx); err != nil {
		return err
	}
	keyIndex, err := prompt.Choice("set default key", len(keys))
	if err != nil {
		return err
	}
	return h.StoreDefaultKey(keys[keyIndex].Address)
}

func (h *Handler) PrintAddress() error {
	_, err := h.GetDefaultKey(true)
	return err
}

// Balance prints the supply of [addr], or of the default key when [addr] is
// empty.
func (h *Handler) Balance(ctx context.Context, addr string) (uint64, error) {
	if addr == "" {
		pk, err := h.GetDefaultKey(false)
		if err != nil {
			return 0, err
		}
		addr = codec.MustAddressBech32(consts.HRP, pk.Address)
	}
	_, uris, err := h.GetDefaultChain(false)
	if err != nil {
		return 0, err
	}
	utils.Outf("{{yellow}}uri:{{/}} %s\n", uris[0])
	exists, supply, err := rpc.NewJSONRPCClient(uris[0]).Account(ctx, addr)
	if err != nil {
		return 0, err
	}
	if !exists {
		utils.Outf("{{red}}%s is not initialized{{/}}\n", addr)
		return 0, ErrAccountNotExists
	}
	utils.Outf(
		"{{cyan}}address:{{/}} %s {{cyan}}supply:{{/}} %s\n",
		addr,
		utils.FormatBalance(supply, decimals),
	)
	return supply, nil
}
