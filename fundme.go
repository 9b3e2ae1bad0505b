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

// Package fundme defines domain types and services for the fundme node.
package fundme

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Operation names used in receipts, logs and metrics.
const (
	OpFund              = "fund"
	OpWithdraw          = "withdraw"
	OpEfficientWithdraw = "efficientWithdraw"
)

// RoundData is the answer of a price feed for one round, in the layout of the
// AggregatorV3Interface latestRoundData call.
type RoundData struct {
	RoundID         *big.Int
	Answer          *big.Int // Price scaled by 10^Decimals of the feed.
	StartedAt       *big.Int
	UpdatedAt       *big.Int
	AnsweredInRound *big.Int
}

//go:generate mockery -name PriceFeed -output ./internal/mocks

// PriceFeed is an external source of the ETH / USD exchange rate.
//
// Implementations are expected to query the source on every call.
type PriceFeed interface {
	// Address is the reference (contract address) of the feed.
	Address() common.Address
	Decimals(ctx context.Context) (uint8, error)
	LatestRoundData(ctx context.Context) (RoundData, error)
}

// Authorizer is a capability check for privileged operations.
type Authorizer interface {
	// Authorize returns nil if the caller may perform the privileged operation.
	Authorize(caller common.Address) error
}

// StateView is a read-only view of the contract state. Receivers get a view of
// the in-flight transaction when value is transferred to them.
type StateView interface {
	NumFunders() uint64
	FunderAt(index uint64) (common.Address, error)
	AmountFundedBy(addr common.Address) *big.Int
	BalanceOf(addr common.Address) *big.Int
}

//go:generate mockery -name Receiver -output ./internal/mocks

// Receiver is notified when an account receives value. Returning an error
// rejects the transfer.
//
// Receive is called while the contract operation is in progress. Reads of the
// contract made meanwhile see the in-flight state, and mutating operations on
// it fail with ErrReentrantCall.
type Receiver interface {
	Receive(from common.Address, amount *big.Int, view StateView) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(from common.Address, amount *big.Int, view StateView) error

// Receive implements Receiver.
func (f ReceiverFunc) Receive(from common.Address, amount *big.Int, view StateView) error {
	return f(from, amount, view)
}

// Receipt describes a committed contract operation.
type Receipt struct {
	TxHash common.Hash
	Op     string
	From   common.Address

	Value       *big.Int // Value attached to the call.
	Transferred *big.Int // Value transferred out of the contract.

	// Number of state slots read and written by the operation.
	StorageReads  uint64
	StorageWrites uint64
}

//go:generate mockery -name ContractAPI -output ./internal/mocks

// ContractAPI is the public surface of a funding contract.
type ContractAPI interface {
	Fund(ctx context.Context, caller common.Address, value *big.Int) (Receipt, error)
	Withdraw(ctx context.Context, caller common.Address) (Receipt, error)
	EfficientWithdraw(ctx context.Context, caller common.Address) (Receipt, error)

	GetPriceFeed() common.Address
	GetFunder(index uint64) (common.Address, error)
	GetAddressToAmountFunded(addr common.Address) *big.Int
	GetOwner() common.Address

	Address() common.Address
	Balance() *big.Int
	NumFunders() uint64
	MinimumUSD() *big.Int
}

// Currency represents a parser that can convert between string representation of a currency and
// its equivalent value in base unit represented as a big.Int.
type Currency interface {
	Parse(string) (*big.Int, error)
	Print(*big.Int) string
}
