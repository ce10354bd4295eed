// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import "github.com/spf13/cobra"

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys",
}

var genKeyCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a new key",
	RunE: func(*cobra.Command, []string) error {
		_, err := handler.GenerateKey()
		return err
	},
}

var listKeysCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored keys and their supply",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return handler.ListKeys(cmd.Context())
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set",
	Short: "Select the default key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return handler.SetKey(cmd.Context())
	},
}

var addressKeyCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address of the default key",
	RunE: func(*cobra.Command, []string) error {
		return handler.PrintAddress()
	},
}

func init() {
	keyCmd.AddCommand(
		genKeyCmd,
		listKeysCmd,
		setKeyCmd,
		addressKeyCmd,
	)
	rootCmd.AddCommand(keyCmd)
}
