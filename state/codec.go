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
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Key joins the prefix and the parts into a slot key.
func Key(prefix string, parts ...[]byte) []byte {
	k := []byte(prefix)
	for _, p := range parts {
		k = append(k, '/')
		k = append(k, p...)
	}
	return k
}

// IndexKey returns the slot key for the i-th element under prefix.
func IndexKey(prefix string, i uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], i)
	return Key(prefix, b[:])
}

// AddressKey returns the slot key for the address under prefix.
func AddressKey(prefix string, addr common.Address) []byte {
	return Key(prefix, addr.Bytes())
}

// GetUint64 reads an uint64 slot. Absent slots read as zero.
func GetUint64(r Reader, key []byte) uint64 {
	v := r.Get(key)
	if len(v) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

// PutUint64 writes an uint64 slot. Zero deletes the slot.
func PutUint64(w Writer, key []byte, value uint64) {
	if value == 0 {
		w.Delete(key)
		return
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], value)
	w.Put(key, b[:])
}

// GetBig reads an unsigned big integer slot. Absent slots read as zero.
func GetBig(r Reader, key []byte) *big.Int {
	return new(big.Int).SetBytes(r.Get(key))
}

// PutBig writes an unsigned big integer slot. Zero deletes the slot.
func PutBig(w Writer, key []byte, value *big.Int) {
	if value == nil || value.Sign() == 0 {
		w.Delete(key)
		return
	}
	w.Put(key, value.Bytes())
}

// GetAddress reads an address slot. Absent slots read as the zero address.
func GetAddress(r Reader, key []byte) common.Address {
	return common.BytesToAddress(r.Get(key))
}

// PutAddress writes an address slot.
func PutAddress(w Writer, key []byte, addr common.Address) {
	w.Put(key, addr.Bytes())
}
