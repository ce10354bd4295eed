// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ava-labs/ledgervm/cli"
	"github.com/ava-labs/ledgervm/consts"
)

var (
	handler *cli.Handler
	dbPath  string

	rootCmd = &cobra.Command{
		Use:               "ledger-cli",
		Short:             "Ledger CLI",
		SuggestFor:        []string{"ledger-cli", "ledgercli"},
		PersistentPreRunE: openHandler,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return handler.CloseDatabase()
		},
	}
)

func openHandler(*cobra.Command, []string) error {
	h, err := cli.New(dbPath)
	if err != nil {
		return err
	}
	handler = h
	return nil
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"database",
		filepath.Join(".", "."+consts.Name+"-cli"),
		"path to the database holding keys and chains",
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
