// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/fundme
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package node

import (
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/direct-state-transfer/fundme/currency"
)

// Price feed types.
const (
	PriceFeedMock      = "mock"
	PriceFeedChainlink = "chainlink"
)

type (
	// Config represents the configuration parameters for the node.
	Config struct {
		LogLevel string
		LogFile  string
		RPCAddr  string

		Network    string
		PriceFeed  PriceFeedConfig
		MinimumUSD string // In USD, such as "50".
		Accounts   AccountsConfig
	}

	// PriceFeedConfig selects the price feed used by the contract.
	//
	// The mock feed is deployed by the node with Decimals and InitialAnswer.
	// For the chainlink feed, the node connects to ChainURL and reads the
	// aggregator at Address. If Address is empty, the ETH / USD feed of the
	// network is used.
	PriceFeedConfig struct {
		Type          string
		ChainURL      string
		Address       string
		Decimals      uint8
		InitialAnswer string // Integer answer scaled by Decimals.
		Timeout       time.Duration
	}

	// AccountsConfig describes the development accounts managed by the node.
	// They are derived from the mnemonic and each one starts with Balance
	// (in ETH). The account at index Deployer deploys and owns the contract.
	AccountsConfig struct {
		Mnemonic string
		Count    int
		Balance  string
		Deployer int
	}
)

// DefaultMnemonic is the mnemonic of the well known development accounts of
// hardhat and ganache. Never use these accounts on a public network.
const DefaultMnemonic = "test test test test test test test test test test test junk"

// SetDefaults sets the default values of the node configuration on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("rpcaddr", "127.0.0.1:8545")
	v.SetDefault("network", "dev")
	v.SetDefault("pricefeed.type", PriceFeedMock)
	v.SetDefault("pricefeed.decimals", 8)
	v.SetDefault("pricefeed.initialanswer", "200000000000")
	v.SetDefault("pricefeed.timeout", 10*time.Second)
	v.SetDefault("minimumusd", "50")
	v.SetDefault("accounts.mnemonic", DefaultMnemonic)
	v.SetDefault("accounts.count", 10)
	v.SetDefault("accounts.balance", "10000")
	v.SetDefault("accounts.deployer", 0)
}

// ParseConfig parses the node configuration from the file using the given
// viper instance. Values set on the viper instance (for example, by binding
// command line flags) override the values in the file. If configFile is
// empty, only the values on the viper instance and the defaults are used.
func ParseConfig(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(filepath.Clean(configFile))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshalling config")
	}
	return cfg, cfg.Validate()
}

// Validate checks the values in the configuration.
func (cfg Config) Validate() error {
	if _, ok := KnownNetworks[cfg.Network]; !ok {
		return errors.Errorf("unknown network %q", cfg.Network)
	}
	if _, err := currency.NewParser(currency.USD).Parse(cfg.MinimumUSD); err != nil {
		return errors.WithMessage(err, "minimumusd")
	}
	if err := cfg.PriceFeed.validate(); err != nil {
		return errors.WithMessage(err, "pricefeed")
	}
	return cfg.Accounts.validate()
}

func (cfg PriceFeedConfig) validate() error {
	switch cfg.Type {
	case PriceFeedMock:
		if cfg.Decimals > 18 {
			return errors.New("decimals must be at most 18")
		}
		if _, ok := parseInt(cfg.InitialAnswer); !ok {
			return errors.Errorf("invalid initial answer %q", cfg.InitialAnswer)
		}
	case PriceFeedChainlink:
		if cfg.ChainURL == "" {
			return errors.New("chain url is required for chainlink price feed")
		}
		if cfg.Address != "" && !common.IsHexAddress(cfg.Address) {
			return errors.Errorf("invalid address %q", cfg.Address)
		}
	default:
		return errors.Errorf("unknown type %q", cfg.Type)
	}
	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

func (cfg AccountsConfig) validate() error {
	if cfg.Count < 1 {
		return errors.New("accounts: count must be at least 1")
	}
	if cfg.Deployer < 0 || cfg.Deployer >= cfg.Count {
		return errors.Errorf("accounts: deployer index %d out of range", cfg.Deployer)
	}
	if _, err := currency.NewParser(currency.ETH).Parse(cfg.Balance); err != nil {
		return errors.WithMessage(err, "accounts: balance")
	}
	return nil
}

// WriteConfig writes the configuration as yaml to the given file. It fails if
// the file already exists.
func WriteConfig(cfg Config, configFile string) error {
	v := viper.New()
	v.Set("loglevel", cfg.LogLevel)
	v.Set("logfile", cfg.LogFile)
	v.Set("rpcaddr", cfg.RPCAddr)
	v.Set("network", cfg.Network)
	v.Set("pricefeed.type", cfg.PriceFeed.Type)
	v.Set("pricefeed.chainurl", cfg.PriceFeed.ChainURL)
	v.Set("pricefeed.address", cfg.PriceFeed.Address)
	v.Set("pricefeed.decimals", cfg.PriceFeed.Decimals)
	v.Set("pricefeed.initialanswer", cfg.PriceFeed.InitialAnswer)
	v.Set("pricefeed.timeout", cfg.PriceFeed.Timeout.String())
	v.Set("minimumusd", cfg.MinimumUSD)
	v.Set("accounts.mnemonic", cfg.Accounts.Mnemonic)
	v.Set("accounts.count", cfg.Accounts.Count)
	v.Set("accounts.balance", cfg.Accounts.Balance)
	v.Set("accounts.deployer", cfg.Accounts.Deployer)
	return errors.Wrap(v.SafeWriteConfigAs(filepath.Clean(configFile)), "writing config file")
}
