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

package priceconv_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/internal/mocks"
	"github.com/direct-state-transfer/fundme/priceconv"
)

var feedAddr = common.HexToAddress("0x694AA1769357215DE4FAC081bf1f309aDC325306")

func newFeed(answer int64, decimals uint8) *mocks.PriceFeed {
	feed := &mocks.PriceFeed{}
	feed.On("Address").Return(feedAddr)
	feed.On("LatestRoundData", mock.Anything).Return(fundme.RoundData{
		RoundID:         big.NewInt(1),
		Answer:          big.NewInt(answer),
		StartedAt:       big.NewInt(0),
		UpdatedAt:       big.NewInt(0),
		AnsweredInRound: big.NewInt(1),
	}, nil)
	feed.On("Decimals", mock.Anything).Return(decimals, nil)
	return feed
}

func ether(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid number " + s)
	}
	return v
}

func Test_Converter_ConvertToUsd(t *testing.T) {
	tests := []struct {
		name     string
		answer   int64
		decimals uint8
		amount   string
		wantUSD  string
	}{
		{"happy_one_eth", 2000e8, 8, "1000000000000000000", "2000000000000000000000"},
		{"happy_minimum_boundary", 2000e8, 8, "25000000000000000", "50000000000000000000"},
		{"happy_fraction_truncated", 2000e8, 8, "1", "2000"},
		{"happy_zero", 2000e8, 8, "0", "0"},
		{"happy_no_decimals", 1500, 0, "2000000000000000000", "3000000000000000000000"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			feed := newFeed(tc.answer, tc.decimals)
			c := priceconv.New(feed)
			got, err := c.ConvertToUsd(context.Background(), ether(tc.amount))
			require.NoError(t, err)
			assert.Equal(t, tc.wantUSD, got.String())
		})
	}
}

func Test_Converter_GetPrice_ReadsEveryCall(t *testing.T) {
	feed := newFeed(2000e8, 8)
	c := priceconv.New(feed)

	for i := 0; i < 3; i++ {
		price, err := c.GetPrice(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2000000000000000000000", price.String())
	}
	feed.AssertNumberOfCalls(t, "LatestRoundData", 3)
	feed.AssertNumberOfCalls(t, "Decimals", 3)
}

func Test_Converter_MeetsMinimum(t *testing.T) {
	c := priceconv.New(newFeed(2000e8, 8))
	minimum := ether("50000000000000000000")

	_, ok, err := c.MeetsMinimum(context.Background(), ether("25000000000000000"), minimum)
	require.NoError(t, err)
	assert.True(t, ok)

	usd, ok, err := c.MeetsMinimum(context.Background(), ether("24999999999999999"), minimum)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, -1, usd.Cmp(minimum))
}

func Test_Converter_FailsClosed(t *testing.T) {
	t.Run("err_feed", func(t *testing.T) {
		feed := &mocks.PriceFeed{}
		feed.On("Address").Return(feedAddr)
		feed.On("LatestRoundData", mock.Anything).Return(fundme.RoundData{}, assert.AnError)

		_, err := priceconv.New(feed).ConvertToUsd(context.Background(), big.NewInt(1))
		require.Error(t, err)
		assert.True(t, fundme.IsCode(err, fundme.ErrOracleUnavailable))
	})

	t.Run("err_decimals", func(t *testing.T) {
		feed := &mocks.PriceFeed{}
		feed.On("Address").Return(feedAddr)
		feed.On("LatestRoundData", mock.Anything).Return(fundme.RoundData{Answer: big.NewInt(1)}, nil)
		feed.On("Decimals", mock.Anything).Return(uint8(0), assert.AnError)

		_, err := priceconv.New(feed).ConvertToUsd(context.Background(), big.NewInt(1))
		assert.True(t, fundme.IsCode(err, fundme.ErrOracleUnavailable))
	})

	for name, answer := range map[string]int64{"err_zero_answer": 0, "err_negative_answer": -1} {
		answer := answer
		t.Run(name, func(t *testing.T) {
			_, err := priceconv.New(newFeed(answer, 8)).ConvertToUsd(context.Background(), big.NewInt(1))
			assert.True(t, fundme.IsCode(err, fundme.ErrOracleUnavailable))
		})
	}

	t.Run("err_too_many_decimals", func(t *testing.T) {
		_, err := priceconv.New(newFeed(1, 19)).ConvertToUsd(context.Background(), big.NewInt(1))
		require.Error(t, err)
		apiErr := fundme.APIError{}
		require.ErrorAs(t, err, &apiErr)
		info, ok := apiErr.AddInfo().(fundme.OracleUnavailableInfo)
		require.True(t, ok)
		assert.Equal(t, feedAddr.Hex(), info.PriceFeed)
		assert.Contains(t, info.Reason, "19 decimals")
	})
}
