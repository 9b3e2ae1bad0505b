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

package metrics_test

import (
	"math/big"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/metrics"
)

func Test_Metrics_RecordOp(t *testing.T) {
	m := metrics.New()

	m.RecordOp(fundme.OpFund, fundme.Receipt{Op: fundme.OpFund, StorageReads: 3, StorageWrites: 3}, nil)
	m.RecordOp(fundme.OpFund, fundme.Receipt{}, fundme.NewErrInsufficientValue(big.NewInt(1), big.NewInt(2), big.NewInt(3)))
	m.RecordOp(fundme.OpWithdraw, fundme.Receipt{}, fundme.NewErrNotOwner(common.Address{}))
	m.RecordOp(fundme.OpEfficientWithdraw, fundme.Receipt{
		Op:            fundme.OpEfficientWithdraw,
		Transferred:   new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18)),
		StorageReads:  4,
		StorageWrites: 5,
	}, nil)

	expected := `
# HELP fundme_contract_operations_total Number of contract operations by operation and result
# TYPE fundme_contract_operations_total counter
fundme_contract_operations_total{op="efficientWithdraw",result="ok"} 1
fundme_contract_operations_total{op="fund",result="101"} 1
fundme_contract_operations_total{op="fund",result="ok"} 1
fundme_contract_operations_total{op="withdraw",result="201"} 1
# HELP fundme_contract_withdrawn_eth_total ETH transferred out of the contract by withdrawals
# TYPE fundme_contract_withdrawn_eth_total counter
fundme_contract_withdrawn_eth_total 3
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"fundme_contract_operations_total", "fundme_contract_withdrawn_eth_total"))
	n, err := testutil.GatherAndCount(m.Registry(), "fundme_contract_storage_reads")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func Test_Metrics_Handler(t *testing.T) {
	m := metrics.New()
	m.RecordOp(fundme.OpFund, fundme.Receipt{StorageReads: 1}, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `fundme_contract_storage_reads_count{op="fund"} 1`)
}
