// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"fmt"

	"github.com/ava-labs/ledgervm/actions"
	"github.com/ava-labs/ledgervm/auth"
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/cli/prompt"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/rpc"
	"github.com/ava-labs/ledgervm/utils"
)

func (h *Handler) defaults(log bool) (*auth.PrivateKey, *rpc.JSONRPCClient, error) {
	pk, err := h.GetDefaultKey(log)
	if err != nil {
		return nil, nil, err
	}
	_, uris, err := h.GetDefaultChain(log)
	if err != nil {
		return nil, nil, err
	}
	return pk, rpc.NewJSONRPCClient(uris[0]), nil
}

func submit(
	ctx context.Context,
	cli *rpc.JSONRPCClient,
	actionList []chain.Action,
	keys ...*auth.PrivateKey,
) (*rpc.SubmitTxReply, error) {
	factories := make([]chain.AuthFactory, 0, len(keys))
	for _, key := range keys {
		factory, err := auth.GetFactory(key)
		if err != nil {
			return nil, err
		}
		factories = append(factories, factory)
	}
	tx, err := cli.GenerateTransaction(ctx, actionList, factories...)
	if err != nil {
		return nil, err
	}
	reply, err := cli.SubmitTx(ctx, tx.Bytes())
	if err != nil {
		return nil, err
	}
	if !reply.Success {
		utils.Outf("{{red}}txID:{{/}} %s {{red}}error:{{/}} %s\n", reply.TxID, reply.Error)
		return reply, fmt.Errorf("%w: %s", ErrTxFailed, reply.Error)
	}
	utils.Outf("{{green}}txID:{{/}} %s {{green}}units:{{/}} %d\n", reply.TxID, reply.Units)
	return reply, nil
}

// Initialize creates a new account holding [supply]. The account key is
// generated and stored locally; the default key pays and co-signs.
func (h *Handler) Initialize(ctx context.Context, supply uint64) (codec.Address, error) {
	payer, cli, err := h.defaults(true)
	if err != nil {
		return codec.EmptyAddress, err
	}
	account, err := newKey()
	if err != nil {
		return codec.EmptyAddress, err
	}
	g, _, err := cli.Genesis(ctx)
	if err != nil {
		return codec.EmptyAddress, err
	}
	reply, err := submit(ctx, cli, []chain.Action{&actions.Initialize{
		Account:       account.Address,
		Payer:         payer.Address,
		InitialSupply: supply,
	}}, account, payer)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if err := h.StoreKey(account); err != nil {
		return codec.EmptyAddress, err
	}
	result, err := actions.UnmarshalInitializeResult(reply.Outputs[0])
	if err != nil {
		return codec.EmptyAddress, err
	}
	utils.Outf(
		"{{green}}initialized account:{{/}} %s {{green}}supply:{{/}} %s\n",
		codec.MustAddressBech32(g.HRP, account.Address),
		utils.FormatBalance(result.Supply, decimals),
	)
	return account.Address, nil
}

// Transfer moves [amount] from the default key to [to]. Unless [yes] is set
// the user confirms first.
func (h *Handler) Transfer(ctx context.Context, to string, amount uint64, yes bool) (*actions.TransferResult, error) {
	sender, cli, err := h.defaults(true)
	if err != nil {
		return nil, err
	}
	recipient, err := cli.ParseAddress(ctx, to)
	if err != nil {
		return nil, err
	}
	if !yes {
		utils.Outf(
			"{{yellow}}transfer{{/}} %s {{yellow}}to{{/}} %s\n",
			utils.FormatBalance(amount, decimals),
			to,
		)
		cont, err := prompt.Continue()
		if err != nil {
			return nil, err
		}
		if !cont {
			return nil, ErrAborted
		}
	}
	reply, err := submit(ctx, cli, []chain.Action{&actions.Transfer{
		Sender:    sender.Address,
		Recipient: recipient,
		Amount:    amount,
	}}, sender)
	if err != nil {
		return nil, err
	}
	result, err := actions.UnmarshalTransferResult(reply.Outputs[0])
	if err != nil {
		return nil, err
	}
	utils.Outf(
		"{{green}}sender supply:{{/}} %s {{green}}recipient supply:{{/}} %s\n",
		utils.FormatBalance(result.SenderSupply, decimals),
		utils.FormatBalance(result.RecipientSupply, decimals),
	)
	return result, nil
}
