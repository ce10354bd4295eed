// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/ledgervm/utils"
)

var (
	initialSupply string

	transferTo     string
	transferAmount string
	skipConfirm    bool
)

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Submit instructions to the ledger",
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Create a new account paid for by the default key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		supply, err := utils.ParseBalance(initialSupply, 0)
		if err != nil {
			return err
		}
		_, err = handler.Initialize(cmd.Context(), supply)
		return err
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move supply from the default key to another account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		amount, err := utils.ParseBalance(transferAmount, 0)
		if err != nil {
			return err
		}
		_, err = handler.Transfer(cmd.Context(), transferTo, amount, skipConfirm)
		return err
	},
}

func init() {
	initializeCmd.Flags().StringVar(&initialSupply, "supply", "0", "initial supply of the new account")

	transferCmd.Flags().StringVar(&transferTo, "to", "", "recipient address")
	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "amount to transfer")
	transferCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")

	actionCmd.AddCommand(
		initializeCmd,
		transferCmd,
	)
	rootCmd.AddCommand(actionCmd)
}
