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

// Package ledger implements the record of contributions: the funders in the
// order of contribution and the cumulative amount funded by each of them.
//
// The funders are stored like a dynamic array in contract storage, as a
// length slot and one slot per element. An identity that funds more than once
// appears more than once.
package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/state"
)

const (
	fundersPrefix = "ledger/funders"
	amountPrefix  = "ledger/amount"
)

var fundersLenKey = state.Key(fundersPrefix, []byte("len"))

// FunderSeq is a sequence of funders that drives a reset.
type FunderSeq interface {
	Len() uint64
	At(i uint64) common.Address
}

// View reads the funding record.
type View struct {
	r state.Reader
}

// NewView returns a view of the funding record in the given state.
func NewView(r state.Reader) View {
	return View{r: r}
}

// NumFunders returns the number of entries in the funders.
func (v View) NumFunders() uint64 {
	return state.GetUint64(v.r, fundersLenKey)
}

// FunderAt returns the funder at the given index.
func (v View) FunderAt(index uint64) (common.Address, error) {
	n := v.NumFunders()
	if index >= n {
		return common.Address{}, fundme.NewErrIndexOutOfBounds(index, n)
	}
	return v.funderAt(index), nil
}

func (v View) funderAt(index uint64) common.Address {
	return state.GetAddress(v.r, state.IndexKey(fundersPrefix, index))
}

// AmountFundedBy returns the cumulative amount funded by the address, zero if
// it never funded.
func (v View) AmountFundedBy(addr common.Address) *big.Int {
	return state.GetBig(v.r, state.AddressKey(amountPrefix, addr))
}

// Ledger reads and writes the funding record in the state.
type Ledger struct {
	View
	rw state.ReadWriter
}

// New returns a ledger operating on the given state.
func New(rw state.ReadWriter) *Ledger {
	return &Ledger{View: NewView(rw), rw: rw}
}

// Record appends the funder to the funders and adds the amount to its
// cumulative amount.
func (l *Ledger) Record(funder common.Address, amount *big.Int) {
	n := l.NumFunders()
	state.PutAddress(l.rw, state.IndexKey(fundersPrefix, n), funder)
	state.PutUint64(l.rw, fundersLenKey, n+1)

	key := state.AddressKey(amountPrefix, funder)
	total := state.GetBig(l.rw, key)
	state.PutBig(l.rw, key, total.Add(total, amount))
}

// Live returns the funders as stored. Every call to Len and At reads the
// state.
func (l *Ledger) Live() FunderSeq {
	return liveSeq{l}
}

// Snapshot copies the funders into memory with one read per slot.
func (l *Ledger) Snapshot() FunderSeq {
	n := l.NumFunders()
	s := make(snapshotSeq, n)
	for i := uint64(0); i < n; i++ {
		s[i] = l.funderAt(i)
	}
	return s
}

// ResetFrom zeroes the amount of every funder in seq and then clears the
// funders. The funders are cleared only after the loop, so a live seq reads
// the same funders as a snapshot would.
func (l *Ledger) ResetFrom(seq FunderSeq) {
	for i := uint64(0); i < seq.Len(); i++ {
		state.PutBig(l.rw, state.AddressKey(amountPrefix, seq.At(i)), nil)
	}
	l.clearFunders()
}

// ResetAll zeroes the amounts of all funders and clears the funders.
func (l *Ledger) ResetAll() {
	l.ResetFrom(l.Snapshot())
}

func (l *Ledger) clearFunders() {
	n := l.NumFunders()
	for i := uint64(0); i < n; i++ {
		l.rw.Delete(state.IndexKey(fundersPrefix, i))
	}
	state.PutUint64(l.rw, fundersLenKey, 0)
}

type liveSeq struct {
	l *Ledger
}

func (s liveSeq) Len() uint64 {
	return s.l.NumFunders()
}

func (s liveSeq) At(i uint64) common.Address {
	return s.l.funderAt(i)
}

type snapshotSeq []common.Address

func (s snapshotSeq) Len() uint64 {
	return uint64(len(s))
}

func (s snapshotSeq) At(i uint64) common.Address {
	return s[i]
}
