// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/consts"
)

const (
	logMaxSizeMB  = 8
	logMaxFiles   = 7
	logMaxAgeDays = 14
)

// newLogger writes colored output to the console and JSON to a rotating file
// in the configured log directory.
func newLogger(cfg *config.Config) (logging.Logger, func() error) {
	level := cfg.GetLogLevel()
	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, consts.Name+".log"),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxFiles,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	log := logging.NewLogger(
		consts.Name,
		logging.NewWrappedCore(level, os.Stdout, logging.Colors.ConsoleEncoder()),
		logging.NewWrappedCore(level, file, logging.JSON.FileEncoder()),
	)
	return log, file.Close
}
