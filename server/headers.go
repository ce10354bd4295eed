// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
)

// ChainIDHeader is set on every response so clients can tell which ledger
// answered before decoding the body.
const ChainIDHeader = "X-Ledger-Chain-Id"

var _ Wrapper = (*chainIDWrapper)(nil)

type chainIDWrapper struct {
	chainID string
}

func NewChainIDWrapper(chainID ids.ID) Wrapper {
	return &chainIDWrapper{chainID: chainID.String()}
}

func (c *chainIDWrapper) WrapHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(ChainIDHeader, c.chainID)
		h.ServeHTTP(w, r)
	})
}
