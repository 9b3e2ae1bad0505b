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

// Package state implements the in-memory key value store holding the
// contract state. All changes are made through transactions (Tx) that are
// either committed as a whole or discarded.
package state

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
)

type (
	// Reader reads state slots. Get returns nil for a slot that was never
	// written or was deleted.
	Reader interface {
		Get(key []byte) []byte
	}

	// Writer writes state slots.
	Writer interface {
		Put(key, value []byte)
		Delete(key []byte)
	}

	// ReadWriter reads and writes state slots.
	ReadWriter interface {
		Reader
		Writer
	}
)

// Store is an in-memory key value store backed by a goleveldb memdb.
type Store struct {
	mu sync.RWMutex
	db *memdb.DB
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{db: memdb.New(comparer.DefaultComparer, 0)}
}

// Get returns the committed value of the slot.
func (s *Store) Get(key []byte) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, err := s.db.Get(key)
	if err != nil {
		// memdb returns only ErrNotFound.
		return nil
	}
	return value
}

// Len returns the number of slots in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Len()
}

// Begin starts a new transaction on the store.
func (s *Store) Begin() *Tx {
	return &Tx{
		store: s,
		dirty: make(map[string]slot),
	}
}

// apply writes the batch to the memdb. Readers of the store do not see a
// partially applied batch.
func (s *Store) apply(b *leveldb.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &memdbReplay{db: s.db}
	if err := b.Replay(r); err != nil {
		return errors.Wrap(err, "replaying batch")
	}
	return errors.Wrap(r.err, "writing to memdb")
}

// memdbReplay implements leveldb.BatchReplay for writing into a memdb.
type memdbReplay struct {
	db  *memdb.DB
	err error
}

func (r *memdbReplay) Put(key, value []byte) {
	if r.err == nil {
		r.err = r.db.Put(key, value)
	}
}

func (r *memdbReplay) Delete(key []byte) {
	if r.err != nil {
		return
	}
	if err := r.db.Delete(key); err != nil && err != memdb.ErrNotFound {
		r.err = err
	}
}

// sortedKeys returns the keys of the dirty slots in ascending order, so that
// batches are built deterministically.
func sortedKeys(dirty map[string]slot) []string {
	keys := make([]string, 0, len(dirty))
	for k := range dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
