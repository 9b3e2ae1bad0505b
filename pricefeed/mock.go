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

// Package pricefeed provides price feeds for development networks, where no
// oracle contract is deployed.
package pricefeed

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/direct-state-transfer/fundme"
)

// Default values used when deploying a mock aggregator on a development
// network: an ETH / USD price of 2000 with 8 decimals.
const (
	DefaultDecimals      uint8 = 8
	DefaultInitialAnswer int64 = 2000e8
)

// MockAggregator is an in-process price feed that answers with a settable
// price, like the MockV3Aggregator contract.
type MockAggregator struct {
	address  common.Address
	decimals uint8

	mu        sync.RWMutex
	round     fundme.RoundData
	timestamp func() time.Time
}

// NewMockAggregator returns a mock aggregator deployed at the given address
// that answers with initialAnswer in round 1.
func NewMockAggregator(address common.Address, decimals uint8, initialAnswer *big.Int) *MockAggregator {
	a := &MockAggregator{
		address:   address,
		decimals:  decimals,
		timestamp: time.Now,
	}
	a.UpdateAnswer(initialAnswer)
	return a
}

// Address implements fundme.PriceFeed.
func (a *MockAggregator) Address() common.Address {
	return a.address
}

// Decimals implements fundme.PriceFeed.
func (a *MockAggregator) Decimals(ctx context.Context) (uint8, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return a.decimals, nil
}

// LatestRoundData implements fundme.PriceFeed.
func (a *MockAggregator) LatestRoundData(ctx context.Context) (fundme.RoundData, error) {
	if err := ctx.Err(); err != nil {
		return fundme.RoundData{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return copyRound(a.round), nil
}

// UpdateAnswer starts a new round with the given answer.
func (a *MockAggregator) UpdateAnswer(answer *big.Int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	roundID := big.NewInt(1)
	if a.round.RoundID != nil {
		roundID.Add(a.round.RoundID, roundID)
	}
	now := big.NewInt(a.timestamp().Unix())
	a.round = fundme.RoundData{
		RoundID:         roundID,
		Answer:          new(big.Int).Set(answer),
		StartedAt:       now,
		UpdatedAt:       new(big.Int).Set(now),
		AnsweredInRound: new(big.Int).Set(roundID),
	}
}

func copyRound(r fundme.RoundData) fundme.RoundData {
	return fundme.RoundData{
		RoundID:         new(big.Int).Set(r.RoundID),
		Answer:          new(big.Int).Set(r.Answer),
		StartedAt:       new(big.Int).Set(r.StartedAt),
		UpdatedAt:       new(big.Int).Set(r.UpdatedAt),
		AnsweredInRound: new(big.Int).Set(r.AnsweredInRound),
	}
}
