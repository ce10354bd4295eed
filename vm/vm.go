// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/ledgervm/actions"
	"github.com/ava-labs/ledgervm/auth"
	"github.com/ava-labs/ledgervm/chain"
	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/pebble"
	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/utils"

	lt "github.com/ava-labs/ledgervm/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const stateDB = "statedb"

// VM owns the database and processes every transaction submitted to the node.
type VM struct {
	log    logging.Logger
	config *config.Config
	tracer trace.Tracer
	now    func() int64

	registry  *chain.Registry
	gatherers prometheus.Gatherers
	metrics   *Metrics

	db        database.Database
	genesis   *genesis.Genesis
	raw       []byte
	chainID   ids.ID
	rules     *genesis.Rules
	processor *chain.Processor

	ready atomic.Bool
}

// New opens the VM state, writing genesis on first start.
func New(
	ctx context.Context,
	log logging.Logger,
	cfg *config.Config,
	genesisBytes []byte,
	opts ...Option,
) (*VM, error) {
	vm := &VM{
		log:    log,
		config: cfg,
		raw:    genesisBytes,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
	for _, opt := range opts {
		opt(vm)
	}

	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return nil, err
	}
	vm.genesis = g
	vm.chainID = genesis.ChainID(genesisBytes)
	vm.rules = g.Rules(vm.chainID)

	vm.registry = chain.NewRegistry()
	errs := wrappers.Errs{}
	errs.Add(
		actions.Register(vm.registry),
		auth.Register(vm.registry),
	)
	if errs.Errored() {
		return nil, errs.Err
	}

	if vm.tracer == nil {
		vm.tracer, err = lt.New(cfg.GetTraceConfig())
		if err != nil {
			return nil, err
		}
	}
	ctx, span := vm.tracer.Start(ctx, "VM.New")
	defer span.End()

	registry := prometheus.NewRegistry()
	vm.gatherers = prometheus.Gatherers{registry}
	vm.metrics, err = newMetrics(registry)
	if err != nil {
		return nil, err
	}
	chainMetrics, err := chain.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	if vm.db == nil {
		dir, err := utils.InitSubDirectory(cfg.DataDir, stateDB)
		if err != nil {
			return nil, err
		}
		db, dbRegistry, err := pebble.New(dir, cfg.Pebble)
		if err != nil {
			return nil, err
		}
		vm.db = db
		vm.gatherers = append(vm.gatherers, dbRegistry)
	}

	created, err := genesis.Load(ctx, vm.tracer, vm.db, g, genesisBytes)
	if err != nil {
		_ = vm.db.Close()
		return nil, err
	}
	vm.processor = chain.NewProcessor(log, vm.tracer, chainMetrics, vm.rules, vm.db)
	vm.ready.Store(true)
	vm.log.Info("initialized vm",
		zap.Stringer("chainID", vm.chainID),
		zap.Bool("genesisWritten", created),
		zap.Int("allocations", len(g.CustomAllocation)),
	)
	return vm, nil
}

func (vm *VM) Logger() logging.Logger { return vm.log }

func (vm *VM) Tracer() trace.Tracer { return vm.tracer }

func (vm *VM) Registry() *chain.Registry { return vm.registry }

func (vm *VM) Gatherer() prometheus.Gatherer { return vm.gatherers }

func (vm *VM) Rules() chain.Rules { return vm.rules }

func (vm *VM) ChainID() ids.ID { return vm.chainID }

func (vm *VM) Genesis() *genesis.Genesis { return vm.genesis }

func (vm *VM) GenesisBytes() []byte { return vm.raw }

// Submit parses [txBytes] and processes the transaction at the current time.
// Rejected transactions return an error; failed ones return a [chain.Result]
// with Success unset.
func (vm *VM) Submit(ctx context.Context, txBytes []byte) (*chain.Transaction, *chain.Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Submit", oteltrace.WithAttributes(
		attribute.Int("size", len(txBytes)),
	))
	defer span.End()

	if !vm.ready.Load() {
		return nil, nil, ErrNotReady
	}
	start := time.Now()
	vm.metrics.txsSubmitted.Inc()
	tx, err := chain.ParseTx(txBytes, vm.registry)
	if err != nil {
		vm.metrics.txsInvalid.Inc()
		return nil, nil, err
	}
	result, err := vm.processor.Process(ctx, tx, vm.now())
	vm.metrics.submitLatency.Observe(float64(time.Since(start)))
	if err != nil {
		return tx, nil, err
	}
	return tx, result, nil
}

// GetAccount reports whether [addr] exists and its supply.
func (vm *VM) GetAccount(ctx context.Context, addr codec.Address) (bool, uint64, error) {
	_, span := vm.tracer.Start(ctx, "VM.GetAccount")
	defer span.End()

	if !vm.ready.Load() {
		return false, 0, ErrNotReady
	}
	vm.metrics.accountReads.Inc()
	acct, err := storage.GetAccountFromState(ctx, vm.ReadState, addr)
	if errors.Is(err, storage.ErrAccountNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, acct.Supply, nil
}

// ReadState returns the committed value of each of [keys], with a matching
// error for every key that could not be read.
func (vm *VM) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error) {
	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	if !vm.ready.Load() {
		for i := range errs {
			errs[i] = ErrNotReady
		}
		return values, errs
	}
	im := state.NewReadOnly(vm.db)
	for i, k := range keys {
		values[i], errs[i] = im.GetValue(ctx, k)
	}
	return values, errs
}

func (vm *VM) GetTransaction(ctx context.Context, id ids.ID) (*chain.Result, error) {
	_, span := vm.tracer.Start(ctx, "VM.GetTransaction")
	defer span.End()

	if !vm.ready.Load() {
		return nil, ErrNotReady
	}
	found, result, err := vm.processor.GetTransaction(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrTxNotFound, id)
	}
	return result, nil
}

// Shutdown stops accepting requests and closes the database and tracer.
func (vm *VM) Shutdown() error {
	if !vm.ready.CompareAndSwap(true, false) {
		return nil
	}
	errs := wrappers.Errs{}
	errs.Add(
		vm.db.Close(),
		vm.tracer.Close(),
	)
	vm.log.Info("vm shutdown", zap.Error(errs.Err))
	return errs.Err
}
