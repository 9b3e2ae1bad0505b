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

package chainlink_test

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/pricefeed/chainlink"
)

var (
	feedAddr   = common.HexToAddress("0x694AA1769357215DE4FAC081bf1f309aDC325306")
	roundID, _ = new(big.Int).SetString("18446744073709562300", 10)
)

// fakeCaller answers eth_calls on the aggregator with fixed values.
type fakeCaller struct {
	t       *testing.T
	abi     abi.ABI
	code    []byte
	outputs map[string][]interface{}
	err     error
	calls   int
}

func newFakeCaller(t *testing.T) *fakeCaller {
	parsed, err := abi.JSON(strings.NewReader(chainlink.AggregatorV3ABI))
	require.NoError(t, err)
	return &fakeCaller{
		t:    t,
		abi:  parsed,
		code: []byte{0x60, 0x80},
		outputs: map[string][]interface{}{
			"decimals":    {uint8(8)},
			"description": {"ETH / USD"},
			"latestRoundData": {
				roundID, big.NewInt(2000e8),
				big.NewInt(1700000000), big.NewInt(1700000012), roundID,
			},
		},
	}
}

func (c *fakeCaller) CodeAt(_ context.Context, _ common.Address, _ *big.Int) ([]byte, error) {
	return c.code, c.err
}

func (c *fakeCaller) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	require.Equal(c.t, feedAddr, *call.To)
	method, err := c.abi.MethodById(call.Data[:4])
	require.NoError(c.t, err)
	return method.Outputs.Pack(c.outputs[method.Name]...)
}

func Test_Aggregator_Interface(t *testing.T) {
	assert.Implements(t, (*fundme.PriceFeed)(nil), new(chainlink.Aggregator))
}

func Test_Aggregator(t *testing.T) {
	ctx := context.Background()

	t.Run("happy", func(t *testing.T) {
		caller := newFakeCaller(t)
		a := chainlink.NewAggregator(feedAddr, caller, time.Second)
		assert.Equal(t, feedAddr, a.Address())

		decimals, err := a.Decimals(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint8(8), decimals)

		desc, err := a.Description(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ETH / USD", desc)

		round, err := a.LatestRoundData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "200000000000", round.Answer.String())
		assert.Equal(t, "1700000012", round.UpdatedAt.String())
		assert.Equal(t, "18446744073709562300", round.RoundID.String())
		assert.Equal(t, 3, caller.calls)
	})

	t.Run("happy_negative_answer_decoded", func(t *testing.T) {
		caller := newFakeCaller(t)
		caller.outputs["latestRoundData"][1] = big.NewInt(-1)
		round, err := chainlink.NewAggregator(feedAddr, caller, time.Second).LatestRoundData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "-1", round.Answer.String())
	})

	t.Run("err_call", func(t *testing.T) {
		caller := newFakeCaller(t)
		caller.err = errors.New("connection refused")
		_, err := chainlink.NewAggregator(feedAddr, caller, time.Second).LatestRoundData(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latestRoundData")
	})
}

func Test_Aggregator_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy", func(t *testing.T) {
		a := chainlink.NewAggregator(feedAddr, newFakeCaller(t), time.Second)
		assert.NoError(t, a.Validate(ctx))
	})

	t.Run("err_no_code", func(t *testing.T) {
		caller := newFakeCaller(t)
		caller.code = nil
		err := chainlink.NewAggregator(feedAddr, caller, time.Second).Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no contract deployed")
	})
}
