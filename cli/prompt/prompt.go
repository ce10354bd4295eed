// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/ledgervm/codec"
	"github.com/ava-labs/ledgervm/utils"
)

var (
	ErrInputEmpty          = errors.New("input is empty")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrIndexOutOfRange     = errors.New("index out-of-range")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

func validateAddress(hrp string) func(string) error {
	return func(input string) error {
		input = strings.TrimSpace(input)
		if len(input) == 0 {
			return ErrInputEmpty
		}
		_, err := codec.ParseAddressBech32(hrp, input)
		return err
	}
}

func Address(label string, hrp string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label:    label,
		Validate: validateAddress(hrp),
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddressBech32(hrp, strings.TrimSpace(recipient))
}

func validateAmount(decimals uint8, balance uint64) func(string) error {
	return func(input string) error {
		if len(input) == 0 {
			return ErrInputEmpty
		}
		amount, err := utils.ParseBalance(strings.TrimSpace(input), decimals)
		if err != nil {
			return err
		}
		if amount > balance {
			return ErrInsufficientBalance
		}
		return nil
	}
}

func Amount(label string, decimals uint8, balance uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label:    label,
		Validate: validateAmount(decimals, balance),
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return utils.ParseBalance(strings.TrimSpace(rawAmount), decimals)
}

func validateChoice(maxChoice int) func(string) error {
	return func(input string) error {
		if len(input) == 0 {
			return ErrInputEmpty
		}
		index, err := strconv.Atoi(input)
		if err != nil {
			return err
		}
		if index >= maxChoice || index < 0 {
			return ErrIndexOutOfRange
		}
		return nil
	}
}

func Choice(label string, maxChoice int) (int, error) {
	if maxChoice == 1 {
		utils.Outf("{{yellow}}%s:{{/}} 0 [auto-selected]\n", label)
		return 0, nil
	}
	promptText := promptui.Prompt{
		Label:    label,
		Validate: validateChoice(maxChoice),
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(rawIndex)
}

func validateYesNo(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	lower := strings.ToLower(input)
	if lower == "y" || lower == "n" {
		return nil
	}
	return ErrInvalidChoice
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label:    label + " (y/n)",
		Validate: validateYesNo,
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	return strings.ToLower(rawContinue) == "y", nil
}

func Continue() (bool, error) {
	cont, err := Bool("continue")
	if err != nil {
		return false, err
	}
	if !cont {
		utils.Outf("{{red}}exiting...{{/}}\n")
	}
	return cont, nil
}
