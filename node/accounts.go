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

package node

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/pkg/errors"
)

// DefaultHDPath is the root path used for deriving the development accounts.
const DefaultHDPath = "m/44'/60'/0'/0/"

// Named accounts.
const (
	AccountDeployer = "deployer"
	AccountUser     = "user"
)

// Account is a development account managed by the node.
type Account struct {
	Name    string         `json:"name,omitempty"`
	Index   int            `json:"index"`
	Address common.Address `json:"address"`
}

// NewDevAccounts derives n accounts from the mnemonic using DefaultHDPath.
// The account at the deployer index is named "deployer" and the one after it
// "user".
func NewDevAccounts(mnemonic string, n, deployer int) ([]Account, error) {
	w, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, errors.Wrap(err, "initializing hd wallet")
	}
	accs := make([]Account, n)
	for i := 0; i < n; i++ {
		path, err := hdwallet.ParseDerivationPath(fmt.Sprintf("%s%d", DefaultHDPath, i))
		if err != nil {
			return nil, errors.Wrap(err, "parsing derivation path")
		}
		acc, err := w.Derive(path, false)
		if err != nil {
			return nil, errors.Wrapf(err, "deriving account %d", i)
		}
		accs[i] = Account{Index: i, Address: acc.Address}
		switch i {
		case deployer:
			accs[i].Name = AccountDeployer
		case deployer + 1:
			accs[i].Name = AccountUser
		}
	}
	return accs, nil
}
