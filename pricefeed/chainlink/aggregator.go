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

// Package chainlink reads prices from a Chainlink AggregatorV3Interface
// contract on an ethereum node.
package chainlink

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/fundme"
)

// AggregatorV3ABI is the subset of the AggregatorV3Interface used for reading
// prices.
const AggregatorV3ABI = `[
{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"description","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"latestRoundData","outputs":[{"internalType":"uint80","name":"roundId","type":"uint80"},{"internalType":"int256","name":"answer","type":"int256"},{"internalType":"uint256","name":"startedAt","type":"uint256"},{"internalType":"uint256","name":"updatedAt","type":"uint256"},{"internalType":"uint80","name":"answeredInRound","type":"uint80"}],"stateMutability":"view","type":"function"}
]`

var parsedABI abi.ABI

func init() {
	var err error
	if parsedABI, err = abi.JSON(strings.NewReader(AggregatorV3ABI)); err != nil {
		panic("parsing aggregator abi: " + err.Error())
	}
}

// Aggregator is a price feed backed by an aggregator contract. Each call is
// an eth_call on the latest block, bounded by the timeout.
type Aggregator struct {
	address  common.Address
	caller   bind.ContractCaller
	contract *bind.BoundContract
	timeout  time.Duration
	closer   func()
}

// Dial connects to the ethereum node at url and returns an aggregator for the
// contract at address.
func Dial(url string, address common.Address, timeout time.Duration) (*Aggregator, error) {
	client, err := ethclient.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to ethereum node")
	}
	a := NewAggregator(address, client, timeout)
	a.closer = client.Close
	return a, nil
}

// NewAggregator returns an aggregator for the contract at address that uses
// the given caller for reading.
func NewAggregator(address common.Address, caller bind.ContractCaller, timeout time.Duration) *Aggregator {
	return &Aggregator{
		address:  address,
		caller:   caller,
		contract: bind.NewBoundContract(address, parsedABI, caller, nil, nil),
		timeout:  timeout,
	}
}

// Address implements fundme.PriceFeed.
func (a *Aggregator) Address() common.Address {
	return a.address
}

// Decimals implements fundme.PriceFeed.
func (a *Aggregator) Decimals(ctx context.Context) (uint8, error) {
	out, err := a.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Errorf("unexpected type %T for decimals", out[0])
	}
	return decimals, nil
}

// Description returns the description of the feed, such as "ETH / USD".
func (a *Aggregator) Description(ctx context.Context) (string, error) {
	out, err := a.call(ctx, "description")
	if err != nil {
		return "", err
	}
	desc, ok := out[0].(string)
	if !ok {
		return "", errors.Errorf("unexpected type %T for description", out[0])
	}
	return desc, nil
}

// LatestRoundData implements fundme.PriceFeed.
func (a *Aggregator) LatestRoundData(ctx context.Context) (fundme.RoundData, error) {
	out, err := a.call(ctx, "latestRoundData")
	if err != nil {
		return fundme.RoundData{}, err
	}
	values := make([]*big.Int, len(out))
	for i := range out {
		v, ok := out[i].(*big.Int)
		if !ok {
			return fundme.RoundData{}, errors.Errorf("unexpected type %T in latest round data", out[i])
		}
		values[i] = v
	}
	return fundme.RoundData{
		RoundID:         values[0],
		Answer:          values[1],
		StartedAt:       values[2],
		UpdatedAt:       values[3],
		AnsweredInRound: values[4],
	}, nil
}

// Validate checks if a contract is deployed at the address of the aggregator
// and answers with a price.
func (a *Aggregator) Validate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	code, err := a.caller.CodeAt(ctx, a.address, nil)
	if err != nil {
		return errors.Wrap(err, "reading contract code")
	}
	if len(code) == 0 {
		return errors.Errorf("no contract deployed at %s", a.address.Hex())
	}
	_, err = a.LatestRoundData(ctx)
	return errors.WithMessage(err, "invalid aggregator contract at given address")
}

// Close closes the connection to the ethereum node, if the aggregator owns
// one.
func (a *Aggregator) Close() {
	if a.closer != nil {
		a.closer()
	}
}

func (a *Aggregator) call(ctx context.Context, method string) ([]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var out []interface{}
	if err := a.contract.Call(&bind.CallOpts{Context: ctx}, &out, method); err != nil {
		return nil, errors.Wrapf(err, "calling %s on aggregator %s", method, a.address.Hex())
	}
	if len(out) == 0 {
		return nil, errors.Errorf("empty result for %s", method)
	}
	return out, nil
}
