// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ava-labs/ledgervm/rpc"
)

// Register serves the JSON-RPC API of [vm] and, when [gatherer] is set, its
// metrics.
func Register(s PathAdder, vm rpc.VM, gatherer prometheus.Gatherer) error {
	handler, err := rpc.NewJSONRPCHandler(rpc.Name, rpc.NewJSONRPCServer(vm))
	if err != nil {
		return err
	}
	if err := s.AddRoute(handler, base(rpc.JSONRPCEndpoint), ""); err != nil {
		return err
	}
	if gatherer == nil {
		return nil
	}
	return s.AddRoute(
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		base(rpc.MetricsEndpoint),
		"",
	)
}

// base strips the server prefix from [endpoint].
func base(endpoint string) string {
	return strings.TrimPrefix(endpoint, BaseURL+"/")
}
