// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/pebble"
	"github.com/ava-labs/ledgervm/trace"
)

const (
	defaultHTTPHost        = "127.0.0.1"
	defaultHTTPPort        = 9650
	defaultShutdownTimeout = 10 * time.Second
)

var (
	ErrUnknownFormat   = errors.New("unknown config format")
	ErrInvalidPort     = errors.New("invalid http port")
	ErrInvalidRate     = errors.New("trace sample rate must be in [0, 1]")
	ErrMissingDataDir  = errors.New("data directory is required")
	ErrInvalidShutdown = errors.New("shutdown timeout must be positive")
)

type Config struct {
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	LogDir   string `json:"logDir"   yaml:"logDir"`
	DataDir  string `json:"dataDir"  yaml:"dataDir"`

	HTTPHost        string        `json:"httpHost"        yaml:"httpHost"`
	HTTPPort        uint16        `json:"httpPort"        yaml:"httpPort"`
	AllowedOrigins  []string      `json:"allowedOrigins"  yaml:"allowedOrigins"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`

	TraceEnabled    bool    `json:"traceEnabled"    yaml:"traceEnabled"`
	TraceSampleRate float64 `json:"traceSampleRate" yaml:"traceSampleRate"`
	TraceEndpoint   string  `json:"traceEndpoint"   yaml:"traceEndpoint"`

	MetricsEnabled bool `json:"metricsEnabled" yaml:"metricsEnabled"`

	Pebble pebble.Config `json:"pebble" yaml:"pebble"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	c := &Config{}
	c.setDefault()
	return c
}

func (c *Config) setDefault() {
	c.LogLevel = logging.Info.String()
	c.LogDir = filepath.Join(".", consts.Name, "logs")
	c.DataDir = filepath.Join(".", consts.Name, "db")
	c.HTTPHost = defaultHTTPHost
	c.HTTPPort = defaultHTTPPort
	c.AllowedOrigins = []string{"*"}
	c.ShutdownTimeout = defaultShutdownTimeout
	c.TraceSampleRate = 1
	c.TraceEndpoint = trace.DefaultEndpoint
	c.MetricsEnabled = true
	c.Pebble = pebble.NewDefaultConfig()
}

// Load reads the file at [path]. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON. Fields missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(b, yaml.Unmarshal)
	case ".json", "":
		return Parse(b, json.Unmarshal)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Parse decodes [b] with [unmarshal] on top of the defaults and verifies the
// result.
func Parse(b []byte, unmarshal func([]byte, interface{}) error) (*Config, error) {
	c := Default()
	if len(b) > 0 {
		if err := unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return err
	}
	switch {
	case c.DataDir == "":
		return ErrMissingDataDir
	case c.HTTPPort == 0:
		return ErrInvalidPort
	case c.TraceSampleRate < 0 || c.TraceSampleRate > 1:
		return fmt.Errorf("%w: %f", ErrInvalidRate, c.TraceSampleRate)
	case c.ShutdownTimeout <= 0:
		return ErrInvalidShutdown
	default:
		return nil
	}
}

func (c *Config) GetLogLevel() logging.Level {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return logging.Info
	}
	return level
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &trace.Config{
		Enabled:         c.TraceEnabled,
		TraceSampleRate: c.TraceSampleRate,
		Endpoint:        c.TraceEndpoint,
		AppName:         consts.Name,
		Agent:           consts.Name,
		Version:         consts.Version,
	}
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
