// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	txsSubmitted  prometheus.Counter
	txsInvalid    prometheus.Counter
	accountReads  prometheus.Counter
	submitLatency metric.Averager
}

func newMetrics(r prometheus.Registerer) (*Metrics, error) {
	submitLatency, err := metric.NewAverager(
		"",
		"vm_submit_latency",
		"time spent processing a submitted tx",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &Metrics{
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_submitted",
			Help:      "number of txs submitted to the vm",
		}),
		txsInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "txs_invalid",
			Help:      "number of submitted txs that could not be parsed",
		}),
		accountReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vm",
			Name:      "account_reads",
			Help:      "number of account queries served",
		}),
		submitLatency: submitLatency,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSubmitted),
		r.Register(m.txsInvalid),
		r.Register(m.accountReads),
	)
	return m, errs.Err
}
