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

// Package access implements authorization of privileged contract operations.
package access

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/direct-state-transfer/fundme"
)

// OwnerGate authorizes only the owner, which is fixed when the gate is
// created.
type OwnerGate struct {
	owner common.Address
}

// NewOwnerGate returns a gate that admits only the owner.
func NewOwnerGate(owner common.Address) OwnerGate {
	return OwnerGate{owner: owner}
}

// Owner returns the address of the owner.
func (g OwnerGate) Owner() common.Address {
	return g.owner
}

// Authorize returns an ErrNotOwner error if the caller is not the owner.
func (g OwnerGate) Authorize(caller common.Address) error {
	if caller != g.owner {
		return fundme.NewErrNotOwner(caller)
	}
	return nil
}
