// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/ledgervm/actions"
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/chain/chaintest"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/keys"
	"github.com/ava-labs/ledgervm/ledger"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/trace"
)

type processorEnv struct {
	registry  *chain.Registry
	rules     *chaintest.Rules
	db        database.Database
	processor *chain.Processor
}

func newProcessorEnv(t *testing.T) *processorEnv {
	rules := chaintest.NewDefaultRules()
	db := memdb.New()
	metrics, err := chain.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	return &processorEnv{
		registry:  newRegistry(t),
		rules:     rules,
		db:        db,
		processor: chain.NewProcessor(logging.NoLog{}, trace.Noop(), metrics, rules, db),
	}
}

func (e *processorEnv) submit(t *testing.T, actionList []chain.Action, factories ...chain.AuthFactory) (*chain.Transaction, *chain.Result, error) {
	tx, err := chain.NewTx(newBase(e.rules), actionList).Sign(e.registry, factories...)
	require.NoError(t, err)
	result, err := e.processor.Process(context.Background(), tx, testNow)
	return tx, result, err
}

func (e *processorEnv) supply(t *testing.T, addr codec.Address) uint64 {
	acct, err := storage.GetAccount(context.Background(), state.NewReadOnly(e.db), addr)
	require.NoError(t, err)
	return acct.Supply
}

func TestProcessInitializeAndTransfer(t *testing.T) {
	require := require.New(t)
	env := newProcessorEnv(t)
	payer := newFactory(t)
	a := newFactory(t)
	b := newFactory(t)

	_, result, err := env.submit(t, []chain.Action{
		&actions.Initialize{Account: a.Address(), Payer: payer.Address(), InitialSupply: 100},
		&actions.Initialize{Account: b.Address(), Payer: payer.Address()},
	}, payer, a, b)
	require.NoError(err)
	require.True(result.Success)
	require.Len(result.Outputs, 2)
	require.Equal(uint64(100), env.supply(t, a.Address()))
	require.Zero(env.supply(t, b.Address()))

	tx, result, err := env.submit(t, []chain.Action{
		&actions.Transfer{Sender: a.Address(), Recipient: b.Address(), Amount: 30},
	}, a)
	require.NoError(err)
	require.True(result.Success)
	out, err := actions.UnmarshalTransferResult(result.Outputs[0])
	require.NoError(err)
	require.Equal(&actions.TransferResult{SenderSupply: 70, RecipientSupply: 30}, out)
	require.Equal(uint64(70), env.supply(t, a.Address()))
	require.Equal(uint64(30), env.supply(t, b.Address()))

	found, stored, err := env.processor.GetTransaction(tx.ID())
	require.NoError(err)
	require.True(found)
	require.True(stored.Success)
	require.Equal(result.Units, stored.Units)

	// Insufficient funds is recorded and changes nothing
	tx, result, err = env.submit(t, []chain.Action{
		&actions.Transfer{Sender: a.Address(), Recipient: b.Address(), Amount: 1000},
	}, a)
	require.NoError(err)
	require.False(result.Success)
	require.Contains(string(result.Error), "insufficient funds")
	require.Empty(result.Outputs)
	require.Equal(uint64(70), env.supply(t, a.Address()))
	require.Equal(uint64(30), env.supply(t, b.Address()))

	found, stored, err = env.processor.GetTransaction(tx.ID())
	require.NoError(err)
	require.True(found)
	require.False(stored.Success)
}

func TestProcessRollsBackEarlierActions(t *testing.T) {
	require := require.New(t)
	env := newProcessorEnv(t)
	a := newFactory(t)
	b := newFactory(t)
	c := newFactory(t)

	_, result, err := env.submit(t, []chain.Action{
		&actions.Initialize{Account: a.Address(), Payer: a.Address(), InitialSupply: 50},
		&actions.Initialize{Account: b.Address(), Payer: a.Address(), InitialSupply: 0},
	}, a, b)
	require.NoError(err)
	require.True(result.Success)

	// The first transfer succeeds on its own, the second overdraws: neither
	// may persist and the account created in between must not exist.
	_, result, err = env.submit(t, []chain.Action{
		&actions.Transfer{Sender: a.Address(), Recipient: b.Address(), Amount: 40},
		&actions.Initialize{Account: c.Address(), Payer: a.Address(), InitialSupply: 7},
		&actions.Transfer{Sender: a.Address(), Recipient: b.Address(), Amount: 40},
	}, a, c)
	require.NoError(err)
	require.False(result.Success)
	require.Contains(string(result.Error), ledger.ErrInsufficientFunds.Error())

	require.Equal(uint64(50), env.supply(t, a.Address()))
	require.Zero(env.supply(t, b.Address()))
	_, err = storage.GetAccount(context.Background(), state.NewReadOnly(env.db), c.Address())
	require.ErrorIs(err, storage.ErrAccountNotFound)
}

func TestProcessRollsBackArbitraryWrites(t *testing.T) {
	require := require.New(t)
	env := newProcessorEnv(t)
	k1 := keys.EncodeChunks([]byte("k1"), 1)
	k2 := keys.EncodeChunks([]byte("k2"), 1)

	_, result, err := env.submit(t, []chain.Action{
		&chaintest.TestAction{NumComputeUnits: 1, WriteKeys: [][]byte{k1}, WriteValue: []byte("a")},
		&chaintest.TestAction{NumComputeUnits: 1, WriteKeys: [][]byte{k2}, WriteValue: []byte("b"), ShouldErr: true},
	})
	require.NoError(err)
	require.False(result.Success)
	require.Equal(chaintest.ErrTestActionExecute.Error(), string(result.Error))

	for _, k := range [][]byte{k1, k2} {
		_, err := env.db.Get(k)
		require.ErrorIs(err, database.ErrNotFound)
	}
}

func TestProcessRejections(t *testing.T) {
	require := require.New(t)
	env := newProcessorEnv(t)
	a := newFactory(t)
	b := newFactory(t)

	tx, result, err := env.submit(t, []chain.Action{
		&actions.Initialize{Account: a.Address(), Payer: a.Address(), InitialSupply: 10},
	}, a)
	require.NoError(err)
	require.True(result.Success)

	// Replays are rejected
	_, err = env.processor.Process(context.Background(), tx, testNow)
	require.ErrorIs(err, chain.ErrDuplicateTx)

	// Signature from the recipient does not authorize the sender
	_, _, err = env.submit(t, []chain.Action{
		&actions.Transfer{Sender: a.Address(), Recipient: b.Address(), Amount: 1},
	}, b)
	require.ErrorIs(err, chain.ErrMissingSigner)
	require.Equal(uint64(10), env.supply(t, a.Address()))

	// Re-initializing an existing account fails without touching it
	_, result, err = env.submit(t, []chain.Action{
		&actions.Initialize{Account: a.Address(), Payer: a.Address(), InitialSupply: 99},
	}, a)
	require.NoError(err)
	require.False(result.Success)
	require.Contains(string(result.Error), storage.ErrAccountInUse.Error())
	require.Equal(uint64(10), env.supply(t, a.Address()))
}

func TestProcessMetrics(t *testing.T) {
	require := require.New(t)
	rules := chaintest.NewDefaultRules()
	db := memdb.New()
	r := prometheus.NewRegistry()
	metrics, err := chain.NewMetrics(r)
	require.NoError(err)
	processor := chain.NewProcessor(logging.NoLog{}, trace.Noop(), metrics, rules, db)
	registry := newRegistry(t)
	a := newFactory(t)

	tx, err := chain.NewTx(newBase(rules), []chain.Action{
		&actions.Initialize{Account: a.Address(), Payer: a.Address(), InitialSupply: 1},
	}).Sign(registry, a)
	require.NoError(err)
	_, err = processor.Process(context.Background(), tx, testNow)
	require.NoError(err)
	_, err = processor.Process(context.Background(), tx, testNow)
	require.ErrorIs(err, chain.ErrDuplicateTx)

	count, err := testutil.GatherAndCount(r, "chain_txs_processed", "chain_txs_rejected")
	require.NoError(err)
	require.Equal(2, count)

	_, err = chain.NewMetrics(r)
	require.Error(err) // already registered
}
