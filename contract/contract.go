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

// Package contract implements the funding contract: contributions gated by a
// minimum USD value and owner-only withdrawal of the collected balance.
package contract

import (
	"context"
	"encoding/binary"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/access"
	"github.com/direct-state-transfer/fundme/bank"
	"github.com/direct-state-transfer/fundme/ledger"
	"github.com/direct-state-transfer/fundme/log"
	"github.com/direct-state-transfer/fundme/priceconv"
	"github.com/direct-state-transfer/fundme/state"
)

// DefaultMinimumUSD is the minimum contribution of 50 USD, with 18 decimals.
var DefaultMinimumUSD = new(big.Int).Mul(big.NewInt(50), big.NewInt(1e18))

// Recorder is notified about every mutating operation, successful or not.
// The receipt is the zero value if the operation failed.
type Recorder interface {
	RecordOp(op string, receipt fundme.Receipt, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordOp(string, fundme.Receipt, error) {}

// Config holds the parameters for deploying a contract.
type Config struct {
	// Deployer becomes the owner. The contract address is derived from the
	// deployer and the nonce.
	Deployer common.Address
	Nonce    uint64

	PriceFeed  fundme.PriceFeed
	MinimumUSD *big.Int // DefaultMinimumUSD if nil.

	Store    *state.Store
	Bank     *bank.Bank
	Recorder Recorder // Optional.
}

type readMode int

const (
	// readLive reads the funders from storage on every access.
	readLive readMode = iota
	// readSnapshot copies the funders into memory once.
	readSnapshot
)

// Contract is a funding contract deployed on the node.
//
// Operations are executed one at a time, including the price feed read of
// Fund, so a slow feed delays every other call until its timeout. Each
// mutating operation runs in a state transaction that is committed only if
// the operation succeeds.
//
// While the recipient of a withdrawal is notified, reads are served from the
// in-flight transaction and mutating operations fail with ErrReentrantCall.
type Contract struct {
	log.Logger

	mu         sync.RWMutex
	transfer   atomic.Pointer[transfer]
	address    common.Address
	gate       access.OwnerGate
	converter  priceconv.Converter
	minimumUSD *big.Int
	store      *state.Store
	bank       *bank.Bank
	recorder   Recorder
	txCount    uint64
}

// New deploys a contract with the given configuration.
func New(cfg Config) (*Contract, error) {
	if cfg.PriceFeed == nil {
		return nil, errors.New("price feed is required")
	}
	if cfg.Store == nil || cfg.Bank == nil {
		return nil, errors.New("store and bank are required")
	}
	minimumUSD := DefaultMinimumUSD
	if cfg.MinimumUSD != nil {
		if cfg.MinimumUSD.Sign() < 0 {
			return nil, errors.New("minimum usd must not be negative")
		}
		minimumUSD = cfg.MinimumUSD
	}
	var recorder Recorder = nopRecorder{}
	if cfg.Recorder != nil {
		recorder = cfg.Recorder
	}

	address := crypto.CreateAddress(cfg.Deployer, cfg.Nonce)
	return &Contract{
		Logger:     log.NewLoggerWithField("contract", address.Hex()),
		address:    address,
		gate:       access.NewOwnerGate(cfg.Deployer),
		converter:  priceconv.New(cfg.PriceFeed),
		minimumUSD: new(big.Int).Set(minimumUSD),
		store:      cfg.Store,
		bank:       cfg.Bank,
		recorder:   recorder,
	}, nil
}

// Fund records a contribution of value from the caller. The value must be
// worth at least the minimum USD amount at the current price.
func (c *Contract) Fund(ctx context.Context, caller common.Address, value *big.Int) (fundme.Receipt, error) {
	c.Logger.Debug("Received request: contract.Fund")
	if err := c.checkReentry(fundme.OpFund, caller); err != nil {
		return fundme.Receipt{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	receipt, err := c.fund(ctx, caller, value)
	c.recorder.RecordOp(fundme.OpFund, receipt, err)
	if err != nil {
		c.Logger.Error(err)
	}
	return receipt, err
}

func (c *Contract) fund(ctx context.Context, caller common.Address, value *big.Int) (fundme.Receipt, error) {
	if value == nil || value.Sign() < 0 {
		return fundme.Receipt{}, fundme.NewErrInvalidArgument("value", value.String(),
			"non-negative amount", "invalid value")
	}
	valueUSD, ok, err := c.converter.MeetsMinimum(ctx, value, c.minimumUSD)
	if err != nil {
		return fundme.Receipt{}, err
	}
	if !ok {
		return fundme.Receipt{}, fundme.NewErrInsufficientValue(value, valueUSD, c.minimumUSD)
	}

	tx := c.store.Begin()
	defer tx.Discard()
	if err := bank.Move(tx, caller, c.address, value); err != nil {
		return fundme.Receipt{}, err
	}
	ledger.New(tx).Record(caller, value)
	return c.commit(tx, fundme.OpFund, caller, value, new(big.Int))
}

// Withdraw resets the funding record and transfers the whole balance of the
// contract to the owner. Only the owner may call it.
func (c *Contract) Withdraw(ctx context.Context, caller common.Address) (fundme.Receipt, error) {
	c.Logger.Debug("Received request: contract.Withdraw")
	return c.withdraw(fundme.OpWithdraw, caller, readLive)
}

// EfficientWithdraw has the same effect as Withdraw. It reads the funders
// from storage once, instead of on every iteration of the reset.
func (c *Contract) EfficientWithdraw(ctx context.Context, caller common.Address) (fundme.Receipt, error) {
	c.Logger.Debug("Received request: contract.EfficientWithdraw")
	return c.withdraw(fundme.OpEfficientWithdraw, caller, readSnapshot)
}

func (c *Contract) withdraw(op string, caller common.Address, mode readMode) (fundme.Receipt, error) {
	if err := c.checkReentry(op, caller); err != nil {
		return fundme.Receipt{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	receipt, err := c.resetAndSweep(op, caller, mode)
	c.recorder.RecordOp(op, receipt, err)
	if err != nil {
		c.Logger.Error(err)
	}
	return receipt, err
}

// resetAndSweep clears the funding record before transferring the balance,
// so that the recipient observes the final state.
func (c *Contract) resetAndSweep(op string, caller common.Address, mode readMode) (fundme.Receipt, error) {
	if err := c.gate.Authorize(caller); err != nil {
		return fundme.Receipt{}, err
	}

	tx := c.store.Begin()
	defer tx.Discard()

	l := ledger.New(tx)
	switch mode {
	case readLive:
		l.ResetFrom(l.Live())
	case readSnapshot:
		l.ResetFrom(l.Snapshot())
	default:
		return fundme.Receipt{}, fundme.NewErrUnknownInternal(errors.Errorf("unknown read mode %d", mode))
	}

	amount := bank.BalanceOf(tx, c.address)
	if err := bank.Move(tx, c.address, caller, amount); err != nil {
		return fundme.Receipt{}, err
	}
	if err := c.notify(tx, caller, amount); err != nil {
		return fundme.Receipt{}, err
	}
	return c.commit(tx, op, caller, new(big.Int), amount)
}

// transfer is the in-flight state of a withdrawal while its recipient is
// notified. closed is set before the transaction is committed or discarded.
type transfer struct {
	mu     sync.RWMutex
	view   txView
	closed bool
}

// notify calls the receiver of the recipient with the transfer published, so
// that calls back into the contract neither block nor see stale state.
func (c *Contract) notify(tx *state.Tx, to common.Address, amount *big.Int) error {
	t := &transfer{view: newTxView(tx.Unmetered())}
	c.transfer.Store(t)
	defer func() {
		c.transfer.Store(nil)
		t.mu.Lock()
		t.closed = true
		t.mu.Unlock()
	}()
	return c.bank.Notify(c.address, to, amount, t.view)
}

func (c *Contract) checkReentry(op string, caller common.Address) error {
	if c.transfer.Load() == nil {
		return nil
	}
	err := fundme.NewErrReentrantCall(op, caller, c.address)
	c.recorder.RecordOp(op, fundme.Receipt{}, err)
	c.Logger.Error(err)
	return err
}

// read calls f with the in-flight state if a recipient is being notified and
// with the committed state otherwise.
func (c *Contract) read(f func(v txView)) {
	if t := c.transfer.Load(); t != nil {
		t.mu.RLock()
		if !t.closed {
			defer t.mu.RUnlock()
			f(t.view)
			return
		}
		t.mu.RUnlock()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	f(newTxView(c.store))
}

func (c *Contract) commit(tx *state.Tx, op string, caller common.Address, value, transferred *big.Int) (
	fundme.Receipt, error) {
	meter := tx.Meter()
	if err := tx.Commit(); err != nil {
		return fundme.Receipt{}, fundme.NewErrUnknownInternal(errors.WithMessage(err, "committing state"))
	}
	c.txCount++
	return fundme.Receipt{
		TxHash:        c.txHash(op, caller),
		Op:            op,
		From:          caller,
		Value:         value,
		Transferred:   transferred,
		StorageReads:  meter.Reads,
		StorageWrites: meter.Writes,
	}, nil
}

func (c *Contract) txHash(op string, caller common.Address) common.Hash {
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], c.txCount)
	return crypto.Keccak256Hash(c.address.Bytes(), caller.Bytes(), count[:], []byte(op))
}

// GetPriceFeed returns the address of the price feed.
func (c *Contract) GetPriceFeed() common.Address {
	return c.converter.Feed().Address()
}

// GetFunder returns the funder at the given index of the funders.
func (c *Contract) GetFunder(index uint64) (funder common.Address, err error) {
	c.read(func(v txView) { funder, err = v.FunderAt(index) })
	return funder, err
}

// GetAddressToAmountFunded returns the amount funded by the address since the
// last withdrawal.
func (c *Contract) GetAddressToAmountFunded(addr common.Address) (amount *big.Int) {
	c.read(func(v txView) { amount = v.AmountFundedBy(addr) })
	return amount
}

// GetOwner returns the address of the owner.
func (c *Contract) GetOwner() common.Address {
	return c.gate.Owner()
}

// Address returns the address of the contract.
func (c *Contract) Address() common.Address {
	return c.address
}

// Balance returns the balance of the contract.
func (c *Contract) Balance() (balance *big.Int) {
	c.read(func(v txView) { balance = v.BalanceOf(c.address) })
	return balance
}

// NumFunders returns the number of entries in the funders.
func (c *Contract) NumFunders() (n uint64) {
	c.read(func(v txView) { n = v.NumFunders() })
	return n
}

// MinimumUSD returns the minimum contribution in USD, with 18 decimals.
func (c *Contract) MinimumUSD() *big.Int {
	return new(big.Int).Set(c.minimumUSD)
}

// txView is the read-only view of an in-flight transaction given to
// receivers.
type txView struct {
	ledger.View
	r state.Reader
}

func newTxView(r state.Reader) txView {
	return txView{View: ledger.NewView(r), r: r}
}

func (v txView) BalanceOf(addr common.Address) *big.Int {
	return bank.BalanceOf(v.r, addr)
}
