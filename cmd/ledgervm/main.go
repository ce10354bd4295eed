// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/server"
	"github.com/ava-labs/ledgervm/vm"
)

var (
	configFile  string
	genesisFile string

	rootCmd = &cobra.Command{
		Use:     consts.Name,
		Short:   "Ledger node",
		Version: consts.Version,
		RunE:    run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "node config (.json or .yaml)")
	rootCmd.Flags().StringVar(&genesisFile, "genesis", "genesis.json", "genesis file")
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	genesisBytes, err := os.ReadFile(genesisFile)
	if err != nil {
		return err
	}
	log, closeLog := newLogger(cfg)
	defer func() {
		log.Stop()
		_ = closeLog()
	}()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	v, err := vm.New(ctx, log, cfg, genesisBytes)
	if err != nil {
		log.Error("unable to start vm", zap.Error(err))
		return err
	}
	defer func() {
		_ = v.Shutdown()
	}()

	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return err
	}
	s := server.New(log, listener, server.DefaultHTTPConfig(), cfg.AllowedOrigins, nil, cfg.ShutdownTimeout, server.NewChainIDWrapper(v.ChainID()))
	var gatherer prometheus.Gatherer
	if cfg.MetricsEnabled {
		gatherer = v.Gatherer()
	}
	if err := server.Register(s, v, gatherer); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", zap.Error(context.Cause(gctx)))
		return s.Shutdown()
	})
	log.Info("serving",
		zap.Stringer("addr", s.Addr()),
		zap.Stringer("chainID", v.ChainID()),
	)
	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
