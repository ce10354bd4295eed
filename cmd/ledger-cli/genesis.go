// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/ledgervm/cli"
)

var (
	genesisAllocs []string
	genesisFile   string
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Manage genesis files",
}

var genGenesisCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a genesis with the given allocations",
	// No key store needed
	PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(*cobra.Command, []string) error {
		_, err := cli.GenerateGenesis(genesisAllocs, genesisFile)
		return err
	},
}

func init() {
	genGenesisCmd.Flags().StringArrayVar(
		&genesisAllocs,
		"alloc",
		nil,
		"allocation as <address>=<supply> (repeatable)",
	)
	genGenesisCmd.Flags().StringVar(
		&genesisFile,
		"genesis-file",
		"genesis.json",
		"where to write the genesis",
	)
	genesisCmd.AddCommand(genGenesisCmd)
	rootCmd.AddCommand(genesisCmd)
}
