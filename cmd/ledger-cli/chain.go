// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import "github.com/spf13/cobra"

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Manage the chain the CLI talks to",
}

var setChainCmd = &cobra.Command{
	Use:   "set <uri>",
	Short: "Connect to the node served at uri",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := handler.SetChain(cmd.Context(), args[0])
		return err
	},
}

var chainInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the genesis of the default chain",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return handler.PrintChainInfo(cmd.Context())
	},
}

func init() {
	chainCmd.AddCommand(
		setChainCmd,
		chainInfoCmd,
	)
	rootCmd.AddCommand(chainCmd)
}
