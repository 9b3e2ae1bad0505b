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

package pricefeed_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme/pricefeed"
)

func Test_MockAggregator(t *testing.T) {
	addr := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	a := pricefeed.NewMockAggregator(addr, pricefeed.DefaultDecimals, big.NewInt(pricefeed.DefaultInitialAnswer))
	ctx := context.Background()

	t.Run("happy_initial", func(t *testing.T) {
		assert.Equal(t, addr, a.Address())
		decimals, err := a.Decimals(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint8(8), decimals)

		round, err := a.LatestRoundData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "200000000000", round.Answer.String())
		assert.Equal(t, "1", round.RoundID.String())
	})

	t.Run("happy_update_answer", func(t *testing.T) {
		pricefeed.SetClock(a, func() time.Time { return time.Unix(1700000000, 0) })
		a.UpdateAnswer(big.NewInt(3000e8))

		round, err := a.LatestRoundData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "300000000000", round.Answer.String())
		assert.Equal(t, "2", round.RoundID.String())
		assert.Equal(t, "2", round.AnsweredInRound.String())
		assert.Equal(t, "1700000000", round.UpdatedAt.String())
	})

	t.Run("happy_returned_round_is_a_copy", func(t *testing.T) {
		round, err := a.LatestRoundData(ctx)
		require.NoError(t, err)
		round.Answer.SetInt64(1)

		round, err = a.LatestRoundData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "300000000000", round.Answer.String())
	})

	t.Run("err_context_cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := a.LatestRoundData(cctx)
		assert.Error(t, err)
		_, err = a.Decimals(cctx)
		assert.Error(t, err)
	})
}
