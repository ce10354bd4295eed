// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import "github.com/spf13/cobra"

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the supply of an account (default key if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var addr string
		if len(args) == 1 {
			addr = args[0]
		}
		_, err := handler.Balance(cmd.Context(), addr)
		return err
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
