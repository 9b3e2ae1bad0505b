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

// Package jsonrpc serves the funding contract over ethereum style JSON-RPC,
// on http and websocket transports.
//
// Methods are registered in the "fundme" namespace, e.g. fundme_fund.
// Amounts are sent as ETH decimal strings and returned both as hex encoded
// wei and as ETH strings. Errors carry the code of the fundme.APIError as
// the JSON-RPC error code and its additional info as the error data.
package jsonrpc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/currency"
	"github.com/direct-state-transfer/fundme/log"
	"github.com/direct-state-transfer/fundme/node"
)

// Namespace of the API methods.
const Namespace = "fundme"

// NodeAPI is the node functionality used by the API.
type NodeAPI interface {
	Contract() fundme.ContractAPI
	Info() node.Info
	Accounts() []node.Account
	ResolveAccount(nameOrAddr string) (common.Address, error)
	BalanceOf(addr common.Address) *big.Int
	EthPrice(ctx context.Context) (*big.Int, error)
	SetMockAnswer(answer *big.Int) error
}

type (
	// Amount is a value in wei, along with its rounded ETH representation.
	Amount struct {
		Wei   *hexutil.Big `json:"wei"`
		Ether string       `json:"ether"`
	}

	// Receipt describes a committed contract operation.
	Receipt struct {
		TxHash        common.Hash    `json:"txHash"`
		Op            string         `json:"op"`
		From          common.Address `json:"from"`
		Value         Amount         `json:"value"`
		Transferred   Amount         `json:"transferred"`
		StorageReads  hexutil.Uint64 `json:"storageReads"`
		StorageWrites hexutil.Uint64 `json:"storageWrites"`
	}

	// ContractInfo describes the deployment and the current state of the
	// contract.
	ContractInfo struct {
		node.Info
		Balance    Amount         `json:"balance"`
		NumFunders hexutil.Uint64 `json:"numFunders"`
	}

	// AccountInfo is a development account with its balance.
	AccountInfo struct {
		node.Account
		Balance Amount `json:"balance"`
	}

	// Price is the price of one ETH in USD.
	Price struct {
		USD string       `json:"usd"`
		Raw *hexutil.Big `json:"raw"` // With 18 decimals.
	}
)

// FundMeAPI implements the methods of the fundme namespace. All of its
// exported methods are served.
type FundMeAPI struct {
	logger log.Logger
	n      NodeAPI
	eth    fundme.Currency
	usd    fundme.Currency
}

// NewFundMeAPI returns the API for the given node.
func NewFundMeAPI(n NodeAPI) *FundMeAPI {
	return &FundMeAPI{
		logger: log.NewLoggerWithField("api", Namespace),
		n:      n,
		eth:    currency.NewParser(currency.ETH),
		usd:    currency.NewParser(currency.USD),
	}
}

// Fund sends value (in ETH) from the account to the contract.
func (a *FundMeAPI) Fund(ctx context.Context, from, value string) (*Receipt, error) {
	a.logger.Debug("Received request: fundme.Fund")
	caller, err := a.n.ResolveAccount(from)
	if err != nil {
		return nil, a.apiError(err)
	}
	amount, err := a.eth.Parse(value)
	if err != nil {
		return nil, a.apiError(fundme.NewErrInvalidArgument("value", value, "ETH amount", err.Error()))
	}
	r, err := a.n.Contract().Fund(ctx, caller, amount)
	if err != nil {
		return nil, a.apiError(err)
	}
	return a.receipt(r), nil
}

// Withdraw withdraws the balance of the contract to the account, which must
// be the owner.
func (a *FundMeAPI) Withdraw(ctx context.Context, from string) (*Receipt, error) {
	a.logger.Debug("Received request: fundme.Withdraw")
	caller, err := a.n.ResolveAccount(from)
	if err != nil {
		return nil, a.apiError(err)
	}
	r, err := a.n.Contract().Withdraw(ctx, caller)
	if err != nil {
		return nil, a.apiError(err)
	}
	return a.receipt(r), nil
}

// EfficientWithdraw is the same as Withdraw, with fewer storage reads.
func (a *FundMeAPI) EfficientWithdraw(ctx context.Context, from string) (*Receipt, error) {
	a.logger.Debug("Received request: fundme.EfficientWithdraw")
	caller, err := a.n.ResolveAccount(from)
	if err != nil {
		return nil, a.apiError(err)
	}
	r, err := a.n.Contract().EfficientWithdraw(ctx, caller)
	if err != nil {
		return nil, a.apiError(err)
	}
	return a.receipt(r), nil
}

// GetPriceFeed returns the address of the price feed used by the contract.
func (a *FundMeAPI) GetPriceFeed() common.Address {
	return a.n.Contract().GetPriceFeed()
}

// GetFunder returns the funder at the index.
func (a *FundMeAPI) GetFunder(index uint64) (common.Address, error) {
	addr, err := a.n.Contract().GetFunder(index)
	return addr, a.apiError(err)
}

// GetAddressToAmountFunded returns the amount funded by the address.
func (a *FundMeAPI) GetAddressToAmountFunded(addr common.Address) Amount {
	return a.amount(a.n.Contract().GetAddressToAmountFunded(addr))
}

// GetOwner returns the owner of the contract.
func (a *FundMeAPI) GetOwner() common.Address {
	return a.n.Contract().GetOwner()
}

// GetBalance returns the balance of an address or a named account.
func (a *FundMeAPI) GetBalance(account string) (Amount, error) {
	if common.IsHexAddress(account) {
		return a.amount(a.n.BalanceOf(common.HexToAddress(account))), nil
	}
	addr, err := a.n.ResolveAccount(account)
	if err != nil {
		return Amount{}, a.apiError(err)
	}
	return a.amount(a.n.BalanceOf(addr)), nil
}

// ContractInfo returns the deployment and state of the contract.
func (a *FundMeAPI) ContractInfo() ContractInfo {
	c := a.n.Contract()
	return ContractInfo{
		Info:       a.n.Info(),
		Balance:    a.amount(c.Balance()),
		NumFunders: hexutil.Uint64(c.NumFunders()),
	}
}

// Accounts returns the development accounts with their balances.
func (a *FundMeAPI) Accounts() []AccountInfo {
	accs := a.n.Accounts()
	infos := make([]AccountInfo, len(accs))
	for i := range accs {
		infos[i] = AccountInfo{Account: accs[i], Balance: a.amount(a.n.BalanceOf(accs[i].Address))}
	}
	return infos
}

// EthPrice returns the current price of ETH as seen by the contract.
func (a *FundMeAPI) EthPrice(ctx context.Context) (*Price, error) {
	price, err := a.n.EthPrice(ctx)
	if err != nil {
		return nil, a.apiError(err)
	}
	return &Price{USD: a.usd.Print(price), Raw: (*hexutil.Big)(price)}, nil
}

// SetMockAnswer sets the answer of the mock price feed. The answer is a
// decimal integer string scaled by the decimals of the feed.
func (a *FundMeAPI) SetMockAnswer(answer string) error {
	a.logger.Debug("Received request: fundme.SetMockAnswer")
	v, ok := new(big.Int).SetString(answer, 10)
	if !ok {
		return a.apiError(fundme.NewErrInvalidArgument("answer", answer, "decimal integer", "invalid answer"))
	}
	return a.apiError(a.n.SetMockAnswer(v))
}

func (a *FundMeAPI) amount(wei *big.Int) Amount {
	if wei == nil {
		wei = new(big.Int)
	}
	return Amount{Wei: (*hexutil.Big)(wei), Ether: a.eth.Print(wei)}
}

func (a *FundMeAPI) receipt(r fundme.Receipt) *Receipt {
	return &Receipt{
		TxHash:        r.TxHash,
		Op:            r.Op,
		From:          r.From,
		Value:         a.amount(r.Value),
		Transferred:   a.amount(r.Transferred),
		StorageReads:  hexutil.Uint64(r.StorageReads),
		StorageWrites: hexutil.Uint64(r.StorageWrites),
	}
}

// apiError returns the APIError in the chain of err, so that its code reaches
// the client. Other errors are reported as ErrUnknownInternal.
func (a *FundMeAPI) apiError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr fundme.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	a.logger.Error(err)
	return fundme.NewErrUnknownInternal(err)
}
