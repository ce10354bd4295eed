// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/ledgervm/pebble"
)

// decimals of every balance the CLI prints or parses
const decimals = 0

// Handler implements the ledger-cli commands on top of a local pebble store
// that holds keys and known chains.
type Handler struct {
	db database.Database
}

func New(dbPath string) (*Handler, error) {
	cfg := pebble.NewDefaultConfig()
	cfg.CacheSize = 8 << 20
	db, _, err := pebble.New(dbPath, cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{db}, nil
}
