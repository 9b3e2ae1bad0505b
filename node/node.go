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

// Package node sets up a funding contract with its price feed and the
// development accounts, as configured.
package node

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/bank"
	"github.com/direct-state-transfer/fundme/contract"
	"github.com/direct-state-transfer/fundme/currency"
	"github.com/direct-state-transfer/fundme/log"
	"github.com/direct-state-transfer/fundme/metrics"
	"github.com/direct-state-transfer/fundme/priceconv"
	"github.com/direct-state-transfer/fundme/pricefeed"
	"github.com/direct-state-transfer/fundme/pricefeed/chainlink"
	"github.com/direct-state-transfer/fundme/state"
)

// Info describes the deployment managed by the node.
type Info struct {
	Network    string         `json:"network"`
	ChainID    uint64         `json:"chainId"`
	Contract   common.Address `json:"contract"`
	Owner      common.Address `json:"owner"`
	PriceFeed  common.Address `json:"priceFeed"`
	FeedType   string         `json:"priceFeedType"`
	MinimumUSD string         `json:"minimumUsd"`
}

// Node holds a deployed funding contract and the development accounts that
// can call it.
type Node struct {
	log.Logger

	cfg       Config
	network   Network
	store     *state.Store
	bank      *bank.Bank
	metrics   *metrics.Metrics
	accounts  []Account
	feed      fundme.PriceFeed
	mockFeed  *pricefeed.MockAggregator
	converter priceconv.Converter
	contract  *contract.Contract

	closeOnce sync.Once
	closeFeed func()
}

// New initializes the logger, derives and funds the development accounts,
// deploys the price feed if required and then deploys the contract from the
// deployer account.
//
// On development networks a mock aggregator is deployed with nonce 0 of the
// deployer and the contract with nonce 1. Otherwise, the contract is
// deployed with nonce 0 and uses the chainlink feed of the network.
func New(cfg Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid config")
	}
	if err := log.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, errors.WithMessage(err, "initializing logger for node")
	}

	n := &Node{
		Logger:  log.NewLoggerWithField("node", 1), // ID of the node is always 1.
		cfg:     cfg,
		network: KnownNetworks[cfg.Network],
		store:   state.NewStore(),
		bank:    bank.New(),
		metrics: metrics.New(),
	}

	var err error
	if n.accounts, err = NewDevAccounts(cfg.Accounts.Mnemonic, cfg.Accounts.Count, cfg.Accounts.Deployer); err != nil {
		return nil, err
	}
	if err = n.fundAccounts(); err != nil {
		return nil, err
	}

	deployer := n.accounts[cfg.Accounts.Deployer].Address
	nonce, err := n.deployPriceFeed(deployer)
	if err != nil {
		return nil, err
	}

	n.converter = priceconv.New(n.feed)

	minimumUSD, _ := currency.NewParser(currency.USD).Parse(cfg.MinimumUSD) // Validated.
	n.contract, err = contract.New(contract.Config{
		Deployer:   deployer,
		Nonce:      nonce,
		PriceFeed:  n.feed,
		MinimumUSD: minimumUSD,
		Store:      n.store,
		Bank:       n.bank,
		Recorder:   n.metrics,
	})
	if err != nil {
		n.Close()
		return nil, errors.WithMessage(err, "deploying contract")
	}
	n.Logger.Infof("Deployed contract at %s, owner %s, price feed %s",
		n.contract.Address().Hex(), deployer.Hex(), n.feed.Address().Hex())
	n.SetReceiver(deployer, n.logTransfers(deployer))
	return n, nil
}

// logTransfers returns a receiver that logs the transfers to the account,
// along with the state of the contract seen during the transfer.
func (n *Node) logTransfers(to common.Address) fundme.Receiver {
	eth := currency.NewParser(currency.ETH)
	return fundme.ReceiverFunc(func(from common.Address, amount *big.Int, view fundme.StateView) error {
		n.Logger.Infof("Account %s received %s ETH from %s, contract has %d funder(s) and %s ETH",
			to.Hex(), eth.Print(amount), from.Hex(), view.NumFunders(), eth.Print(view.BalanceOf(from)))
		return nil
	})
}

func (n *Node) fundAccounts() error {
	balance, err := currency.NewParser(currency.ETH).Parse(n.cfg.Accounts.Balance)
	if err != nil {
		return errors.WithMessage(err, "parsing account balance")
	}
	tx := n.store.Begin()
	defer tx.Discard()
	for _, acc := range n.accounts {
		bank.Mint(tx, acc.Address, balance)
	}
	return errors.WithMessage(tx.Commit(), "funding accounts")
}

// deployPriceFeed sets up the price feed and returns the nonce of the
// deployer for deploying the contract.
func (n *Node) deployPriceFeed(deployer common.Address) (uint64, error) {
	pfCfg := n.cfg.PriceFeed
	if pfCfg.Type == PriceFeedMock {
		answer, _ := parseInt(pfCfg.InitialAnswer) // Validated.
		n.mockFeed = pricefeed.NewMockAggregator(crypto.CreateAddress(deployer, 0), pfCfg.Decimals, answer)
		n.feed = n.mockFeed
		n.Logger.Infof("Deployed mock price feed at %s", n.mockFeed.Address().Hex())
		return 1, nil
	}

	addr := pfCfg.Address
	if addr == "" {
		addr = n.network.EthUsdPriceFeed
	}
	if addr == "" {
		return 0, errors.Errorf("no price feed address configured for network %s", n.network.Name)
	}
	feed, err := chainlink.Dial(pfCfg.ChainURL, common.HexToAddress(addr), pfCfg.Timeout)
	if err != nil {
		return 0, errors.WithMessage(err, "connecting to price feed")
	}
	if err := feed.Validate(context.Background()); err != nil {
		feed.Close()
		return 0, errors.WithMessage(err, "validating price feed")
	}
	n.feed, n.closeFeed = feed, feed.Close
	return 0, nil
}

// Contract returns the contract deployed by the node.
func (n *Node) Contract() fundme.ContractAPI {
	return n.contract
}

// Metrics returns the metrics of the node.
func (n *Node) Metrics() *metrics.Metrics {
	return n.metrics
}

// Info returns the description of the deployment.
func (n *Node) Info() Info {
	n.Logger.Debug("Received request: node.Info")
	return Info{
		Network:    n.network.Name,
		ChainID:    n.network.ChainID,
		Contract:   n.contract.Address(),
		Owner:      n.contract.GetOwner(),
		PriceFeed:  n.contract.GetPriceFeed(),
		FeedType:   n.cfg.PriceFeed.Type,
		MinimumUSD: currency.NewParser(currency.USD).Print(n.contract.MinimumUSD()),
	}
}

// Accounts returns the development accounts.
func (n *Node) Accounts() []Account {
	accs := make([]Account, len(n.accounts))
	copy(accs, n.accounts)
	return accs
}

// ResolveAccount returns the address of a development account, given its
// address as hex string or its name.
func (n *Node) ResolveAccount(nameOrAddr string) (common.Address, error) {
	for _, acc := range n.accounts {
		if acc.Name != "" && acc.Name == nameOrAddr {
			return acc.Address, nil
		}
	}
	if common.IsHexAddress(nameOrAddr) {
		addr := common.HexToAddress(nameOrAddr)
		for _, acc := range n.accounts {
			if acc.Address == addr {
				return addr, nil
			}
		}
	}
	return common.Address{}, fundme.NewErrUnknownAccount(nameOrAddr)
}

// BalanceOf returns the balance of any address.
func (n *Node) BalanceOf(addr common.Address) *big.Int {
	return bank.BalanceOf(n.store, addr)
}

// SetReceiver registers a receiver for transfers to the address, replacing
// the current one. The owner has a receiver logging withdrawals by default.
func (n *Node) SetReceiver(addr common.Address, r fundme.Receiver) {
	n.bank.SetReceiver(addr, r)
}

// EthPrice returns the price of one ETH in USD with 18 decimals, as used by
// the contract.
func (n *Node) EthPrice(ctx context.Context) (*big.Int, error) {
	return n.converter.GetPrice(ctx)
}

// SetMockAnswer updates the answer of the mock aggregator.
func (n *Node) SetMockAnswer(answer *big.Int) error {
	n.Logger.Debug("Received request: node.SetMockAnswer")
	if n.mockFeed == nil {
		return fundme.NewErrInvalidArgument("pricefeed.type", n.cfg.PriceFeed.Type, PriceFeedMock,
			"price feed is not a mock aggregator")
	}
	if answer == nil || answer.Sign() <= 0 {
		return fundme.NewErrInvalidArgument("answer", answer.String(), "positive integer", "invalid answer")
	}
	n.mockFeed.UpdateAnswer(answer)
	return nil
}

// Close releases the connection to the price feed, if any.
func (n *Node) Close() {
	n.closeOnce.Do(func() {
		if n.closeFeed != nil {
			n.closeFeed()
		}
	})
}

func parseInt(s string) (*big.Int, bool) {
	return new(big.Int).SetString(strings.TrimSpace(s), 10)
}
