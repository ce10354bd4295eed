// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/ledgervm/rpc"
	"github.com/ava-labs/ledgervm/utils"
)

// SetChain replaces every known chain with the one served at [uri].
func (h *Handler) SetChain(ctx context.Context, uri string) (ids.ID, error) {
	_, chainID, err := rpc.NewJSONRPCClient(uri).Genesis(ctx)
	if err != nil {
		return ids.Empty, err
	}
	oldChains, err := h.DeleteChains()
	if err != nil {
		return ids.Empty, err
	}
	if len(oldChains) > 0 {
		utils.Outf("{{yellow}}deleted old chains:{{/}} %+v\n", oldChains)
	}
	if err := h.StoreChain(chainID, uri); err != nil {
		return ids.Empty, err
	}
	utils.Outf(
		"{{yellow}}stored chainID:{{/}} %s {{yellow}}uri:{{/}} %s\n",
		chainID,
		uri,
	)
	return chainID, h.StoreDefaultChain(chainID)
}

func (h *Handler) PrintChainInfo(ctx context.Context) error {
	_, uris, err := h.GetDefaultChain(false)
	if err != nil {
		return err
	}
	g, chainID, err := rpc.NewJSONRPCClient(uris[0]).Genesis(ctx)
	if err != nil {
		return err
	}
	utils.Outf(
		"{{cyan}}uri:{{/}} %s {{cyan}}chainID:{{/}} %s {{cyan}}hrp:{{/}} %s {{cyan}}validityWindow:{{/}} %dms {{cyan}}maxComputeUnits:{{/}} %d {{cyan}}allocations:{{/}} %d\n",
		uris[0],
		chainID,
		g.HRP,
		g.ValidityWindow,
		g.MaxComputeUnits,
		len(g.CustomAllocation),
	)
	return nil
}
