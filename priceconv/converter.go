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

// Package priceconv converts native currency amounts into their USD
// equivalent using a price feed.
//
// All USD amounts have 18 decimals, the same as wei.
package priceconv

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/direct-state-transfer/fundme"
)

// Decimals is the number of decimals in the prices and USD amounts returned
// by the converter.
const Decimals = 18

var precision = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Converter reads the feed on every call. Prices are never cached.
type Converter struct {
	feed fundme.PriceFeed
}

// New returns a converter that uses the given price feed.
func New(feed fundme.PriceFeed) Converter {
	return Converter{feed: feed}
}

// Feed returns the price feed used by the converter.
func (c Converter) Feed() fundme.PriceFeed {
	return c.feed
}

// GetPrice returns the price of one ETH in USD with 18 decimals.
//
// An ErrOracleUnavailable error is returned if the feed could not be read,
// the answer is not positive or the feed has more than 18 decimals.
func (c Converter) GetPrice(ctx context.Context) (*big.Int, error) {
	round, err := c.feed.LatestRoundData(ctx)
	if err != nil {
		return nil, c.unavailable(errors.WithMessage(err, "reading latest round data"))
	}
	if round.Answer == nil || round.Answer.Sign() <= 0 {
		return nil, c.unavailable(errors.Errorf("invalid answer %v", round.Answer))
	}
	decimals, err := c.feed.Decimals(ctx)
	if err != nil {
		return nil, c.unavailable(errors.WithMessage(err, "reading decimals"))
	}
	if decimals > Decimals {
		return nil, c.unavailable(errors.Errorf("feed has %d decimals, at most %d are supported",
			decimals, Decimals))
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(Decimals-decimals)), nil)
	return new(big.Int).Mul(round.Answer, scale), nil
}

// ConvertToUsd returns the USD equivalent of the amount in wei, with 18
// decimals.
func (c Converter) ConvertToUsd(ctx context.Context, amount *big.Int) (*big.Int, error) {
	price, err := c.GetPrice(ctx)
	if err != nil {
		return nil, err
	}
	usd := new(big.Int).Mul(price, amount)
	return usd.Quo(usd, precision), nil
}

// MeetsMinimum returns the USD equivalent of the amount and whether it is at
// least the minimum.
func (c Converter) MeetsMinimum(ctx context.Context, amount, minimumUSD *big.Int) (*big.Int, bool, error) {
	usd, err := c.ConvertToUsd(ctx, amount)
	if err != nil {
		return nil, false, err
	}
	return usd, usd.Cmp(minimumUSD) >= 0, nil
}

func (c Converter) unavailable(reason error) error {
	return fundme.NewErrOracleUnavailable(c.feed.Address(), reason)
}
