// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	txsProcessed    prometheus.Counter
	txsFailed       prometheus.Counter
	txsRejected     prometheus.Counter
	actionsExecuted prometheus.Counter
	stateChanges    prometheus.Counter
	stateOperations prometheus.Counter
}

func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_processed",
			Help:      "number of txs executed and recorded",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_failed",
			Help:      "number of recorded txs whose actions failed",
		}),
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_rejected",
			Help:      "number of txs rejected before execution",
		}),
		actionsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "actions_executed",
			Help:      "number of actions executed",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		stateOperations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_operations",
			Help:      "number of state operations",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsProcessed),
		r.Register(m.txsFailed),
		r.Register(m.txsRejected),
		r.Register(m.actionsExecuted),
		r.Register(m.stateChanges),
		r.Register(m.stateOperations),
	)
	return m, errs.Err
}
