//go:build integration
// +build integration

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
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme/pricefeed/chainlink"
)

// Set FUNDME_CHAIN_URL to the websocket endpoint of a sepolia node to run
// these tests against the ETH / USD feed deployed there.
const sepoliaEthUsdFeed = "0x694AA1769357215DE4FAC081bf1f309aDC325306"

func chainURL(t *testing.T) string {
	url := os.Getenv("FUNDME_CHAIN_URL")
	if url == "" {
		t.Skip("FUNDME_CHAIN_URL not set")
	}
	if !isBlockchainRunning(url) {
		t.Fatalf("cannot connect to ethereum node at %s", url)
	}
	return url
}

func isBlockchainRunning(url string) bool {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func Test_Aggregator_Sepolia(t *testing.T) {
	a, err := chainlink.Dial(chainURL(t), common.HexToAddress(sepoliaEthUsdFeed), 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	ctx := context.Background()
	require.NoError(t, a.Validate(ctx))

	decimals, err := a.Decimals(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(8), decimals)

	round, err := a.LatestRoundData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, round.Answer.Sign())
}
