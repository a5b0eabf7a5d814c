package main

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config holds the process settings shared by all commands. Each value
// can be overwritten with a command line flag.
type Config struct {
	// Home is the directory holding the ledger database.
	Home string `env:"ESCROWD_HOME"`
	// ChainID is used when generating a new genesis.
	ChainID string `env:"ESCROWD_CHAIN_ID" envDefault:"escrow-local"`
	// KeyPath is the default private key file.
	KeyPath string `env:"ESCROWD_PRIV_KEY"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `env:"ESCROWD_LOG_LEVEL" envDefault:"error"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var conf Config
	if err := env.Parse(&conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "parse env: %s", err)
	}
	if conf.Home == "" {
		conf.Home = filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	}
	if conf.KeyPath == "" {
		conf.KeyPath = filepath.Join(os.ExpandEnv("$HOME"), ".escrowd.priv.key")
	}
	return conf, nil
}

// Logger returns a logger writing to stderr, filtered by the configured
// level.
func (c Config) Logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	allowed, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, allowed), nil
}
