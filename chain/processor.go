// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/ledgervm/state"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Processor is the host dispatcher: it validates transactions, runs their
// actions against a scoped view of state and commits the outcome.
//
// Transactions are processed one at a time. A transaction either applies
// every change made by its actions or none of them.
type Processor struct {
	log     logging.Logger
	tracer  trace.Tracer
	metrics *Metrics
	rules   Rules
	db      state.Database

	l sync.Mutex
}

func NewProcessor(
	log logging.Logger,
	tracer trace.Tracer,
	metrics *Metrics,
	rules Rules,
	db state.Database,
) *Processor {
	return &Processor{
		log:     log,
		tracer:  tracer,
		metrics: metrics,
		rules:   rules,
		db:      db,
	}
}

func (p *Processor) Rules() Rules {
	return p.rules
}

// Process executes [tx] at [timestamp] (ms).
//
// An error is returned only when [tx] is rejected before execution (invalid
// base, budget, signatures or a replay) or when the database fails. Action
// failures are recorded in the returned [Result] and leave state unmodified.
func (p *Processor) Process(ctx context.Context, tx *Transaction, timestamp int64) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "Processor.Process", oteltrace.WithAttributes(
		attribute.String("txID", tx.ID().String()),
		attribute.Int("actions", len(tx.Actions)),
		attribute.Int("auths", len(tx.Auth)),
	))
	defer span.End()

	p.l.Lock()
	defer p.l.Unlock()

	result, err := p.process(ctx, tx, timestamp)
	if err != nil {
		p.metrics.txsRejected.Inc()
		p.log.Debug("rejected transaction",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	}
	p.metrics.txsProcessed.Inc()
	if !result.Success {
		p.metrics.txsFailed.Inc()
	}
	p.log.Debug("processed transaction",
		zap.Stringer("txID", tx.ID()),
		zap.Bool("success", result.Success),
		zap.ByteString("error", result.Error),
		zap.Uint64("units", result.Units),
	)
	return result, nil
}

func (p *Processor) process(ctx context.Context, tx *Transaction, timestamp int64) (*Result, error) {
	processed, err := storage.HasTransaction(p.db, tx.ID())
	if err != nil {
		return nil, err
	}
	if processed {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTx, tx.ID())
	}
	units, err := tx.Verify(ctx, p.rules, timestamp)
	if err != nil {
		return nil, err
	}

	scope := tx.StateKeys()
	values, err := p.prefetch(ctx, scope)
	if err != nil {
		return nil, err
	}
	ts := tstate.New(len(scope))
	tsv := ts.NewView(scope, values)
	result := &Result{
		Success: true,
		Outputs: make([][]byte, 0, len(tx.Actions)),
		Units:   units,
	}
	for i, action := range tx.Actions {
		output, err := action.Execute(ctx, p.rules, tsv)
		p.metrics.actionsExecuted.Inc()
		if err != nil {
			tsv.Rollback(ctx, 0)
			result.Success = false
			result.Error = []byte(err.Error())
			result.Outputs = nil
			p.log.Debug("action failed",
				zap.Stringer("txID", tx.ID()),
				zap.Int("action", i),
				zap.Uint8("type", action.GetTypeID()),
				zap.Error(err),
			)
			break
		}
		result.Outputs = append(result.Outputs, output)
	}
	p.metrics.stateOperations.Add(float64(tsv.OpIndex()))
	tsv.Commit()

	// The state diff and the result are committed in a single batch.
	resultBytes, err := result.Bytes()
	if err != nil {
		return nil, err
	}
	batch := p.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return nil, err
	}
	if err := storage.StoreTransaction(batch, tx.ID(), resultBytes); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	p.metrics.stateChanges.Add(float64(ts.PendingChanges()))
	return result, nil
}

// prefetch reads the current value of every key in [scope]. Missing keys are
// omitted.
func (p *Processor) prefetch(ctx context.Context, scope state.Keys) (map[string][]byte, error) {
	_, span := p.tracer.Start(ctx, "Processor.prefetch")
	defer span.End()

	keys := maps.Keys(scope)
	slices.Sort(keys)
	values := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := p.db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, nil
}

// GetTransaction returns the result recorded for [id], if any.
func (p *Processor) GetTransaction(id ids.ID) (bool, *Result, error) {
	found, raw, err := storage.GetTransaction(p.db, id)
	if err != nil || !found {
		return false, nil, err
	}
	result, err := ParseResult(raw)
	if err != nil {
		return false, nil, err
	}
	return true, result, nil
}
