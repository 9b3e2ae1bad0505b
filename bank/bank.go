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

// Package bank keeps the native currency balances of accounts in the state
// and moves value between them.
package bank

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/state"
)

const balancePrefix = "bank/balance"

// Bank holds the receivers registered for accounts. Balances live in the
// state and are passed to each call, so that they change together with the
// rest of the state of a transaction.
type Bank struct {
	mu        sync.RWMutex
	receivers map[common.Address]fundme.Receiver
}

// New returns a bank without receivers.
func New() *Bank {
	return &Bank{receivers: make(map[common.Address]fundme.Receiver)}
}

// SetReceiver registers the receiver to be notified on transfers to addr.
// A nil receiver removes the registration.
func (b *Bank) SetReceiver(addr common.Address, r fundme.Receiver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r == nil {
		delete(b.receivers, addr)
		return
	}
	b.receivers[addr] = r
}

func (b *Bank) receiver(addr common.Address) fundme.Receiver {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.receivers[addr]
}

// BalanceOf returns the balance of the account.
func BalanceOf(r state.Reader, addr common.Address) *big.Int {
	return state.GetBig(r, state.AddressKey(balancePrefix, addr))
}

// Mint credits the account with new value. Used for allocating the balances
// of development accounts.
func Mint(rw state.ReadWriter, addr common.Address, amount *big.Int) {
	key := state.AddressKey(balancePrefix, addr)
	bal := state.GetBig(rw, key)
	state.PutBig(rw, key, bal.Add(bal, amount))
}

// Move debits the amount from one account and credits it to the other,
// without notifying anyone.
func Move(rw state.ReadWriter, from, to common.Address, amount *big.Int) error {
	fromKey := state.AddressKey(balancePrefix, from)
	fromBal := state.GetBig(rw, fromKey)
	if fromBal.Cmp(amount) < 0 {
		return fundme.NewErrInsufficientBalance(from, fromBal, amount)
	}
	state.PutBig(rw, fromKey, fromBal.Sub(fromBal, amount))

	toKey := state.AddressKey(balancePrefix, to)
	toBal := state.GetBig(rw, toKey)
	state.PutBig(rw, toKey, toBal.Add(toBal, amount))
	return nil
}

// Notify calls the receiver of the recipient, if one is registered, for a
// transfer that was already moved. The receiver sees the state through view.
// If it rejects the transfer, an ErrTransferFailed error is returned and the
// caller must discard the transaction.
func (b *Bank) Notify(from, to common.Address, amount *big.Int, view fundme.StateView) error {
	r := b.receiver(to)
	if r == nil {
		return nil
	}
	if err := r.Receive(from, new(big.Int).Set(amount), view); err != nil {
		return fundme.NewErrTransferFailed(to, amount, err)
	}
	return nil
}
