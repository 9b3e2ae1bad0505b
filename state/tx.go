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

package state

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

// ErrTxClosed is returned when committing a transaction that was already
// committed or discarded.
var ErrTxClosed = errors.New("transaction already closed")

type slot struct {
	value   []byte
	deleted bool
}

// Meter counts the slot accesses made through a transaction.
type Meter struct {
	Reads  uint64
	Writes uint64
}

// Tx is a set of changes on top of the committed state of a store.
// Reads see the changes made in the same transaction. Nothing is visible to
// other readers of the store until Commit.
//
// Tx is not safe for concurrent use.
type Tx struct {
	store  *Store
	dirty  map[string]slot
	meter  Meter
	closed bool
}

// Get implements Reader.
func (tx *Tx) Get(key []byte) []byte {
	tx.meter.Reads++
	return tx.get(key)
}

func (tx *Tx) get(key []byte) []byte {
	if s, ok := tx.dirty[string(key)]; ok {
		if s.deleted {
			return nil
		}
		return s.value
	}
	return tx.store.Get(key)
}

// Unmetered returns a reader of the transaction that does not count reads.
// Reads through it may run concurrently with each other, but not with writes
// to the transaction or with closing it.
func (tx *Tx) Unmetered() Reader {
	return unmeteredTx{tx}
}

type unmeteredTx struct {
	tx *Tx
}

func (u unmeteredTx) Get(key []byte) []byte {
	return u.tx.get(key)
}

// Put implements Writer.
func (tx *Tx) Put(key, value []byte) {
	tx.meter.Writes++
	v := make([]byte, len(value))
	copy(v, value)
	tx.dirty[string(key)] = slot{value: v}
}

// Delete implements Writer.
func (tx *Tx) Delete(key []byte) {
	tx.meter.Writes++
	tx.dirty[string(key)] = slot{deleted: true}
}

// Meter returns the slot accesses made so far.
func (tx *Tx) Meter() Meter {
	return tx.meter
}

// Commit writes all changes of the transaction to the store.
func (tx *Tx) Commit() error {
	if tx.closed {
		return ErrTxClosed
	}
	tx.closed = true

	b := new(leveldb.Batch)
	for _, k := range sortedKeys(tx.dirty) {
		s := tx.dirty[k]
		if s.deleted {
			b.Delete([]byte(k))
		} else {
			b.Put([]byte(k), s.value)
		}
	}
	tx.dirty = nil
	return tx.store.apply(b)
}

// Discard drops all changes of the transaction. It is safe to call Discard
// after Commit, so it can be deferred.
func (tx *Tx) Discard() {
	tx.closed = true
	tx.dirty = nil
}
