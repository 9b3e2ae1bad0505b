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

package bank_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/bank"
	"github.com/direct-state-transfer/fundme/state"
)

var (
	alice = common.HexToAddress("0x8450c0055cB180C7C37A25866132A740b812937B")
	bob   = common.HexToAddress("0xc4bA4815c82727554e4c12A07a139b74c6742322")
)

func Test_Move(t *testing.T) {
	tx := state.NewStore().Begin()
	defer tx.Discard()
	bank.Mint(tx, alice, big.NewInt(100))

	t.Run("happy", func(t *testing.T) {
		require.NoError(t, bank.Move(tx, alice, bob, big.NewInt(40)))
		assert.Equal(t, "60", bank.BalanceOf(tx, alice).String())
		assert.Equal(t, "40", bank.BalanceOf(tx, bob).String())
	})

	t.Run("err_insufficient_balance", func(t *testing.T) {
		err := bank.Move(tx, alice, bob, big.NewInt(61))
		require.Error(t, err)
		assert.True(t, fundme.IsCode(err, fundme.ErrInsufficientBalance))
		assert.Equal(t, "60", bank.BalanceOf(tx, alice).String())
		assert.Equal(t, "40", bank.BalanceOf(tx, bob).String())
	})
}

func Test_Bank_Notify(t *testing.T) {
	t.Run("happy_no_receiver", func(t *testing.T) {
		assert.NoError(t, bank.New().Notify(alice, bob, big.NewInt(100), nil))
	})

	t.Run("happy_receiver_notified", func(t *testing.T) {
		b := bank.New()
		var gotFrom common.Address
		var gotAmount *big.Int
		b.SetReceiver(bob, fundme.ReceiverFunc(func(from common.Address, amount *big.Int, _ fundme.StateView) error {
			gotFrom, gotAmount = from, amount
			return nil
		}))
		amount := big.NewInt(30)
		require.NoError(t, b.Notify(alice, bob, amount, nil))
		assert.Equal(t, alice, gotFrom)
		assert.Equal(t, "30", gotAmount.String())

		gotAmount.SetInt64(0)
		assert.Equal(t, "30", amount.String(), "receiver must get a copy of the amount")
	})

	t.Run("err_receiver_rejects", func(t *testing.T) {
		b := bank.New()
		b.SetReceiver(bob, fundme.ReceiverFunc(func(common.Address, *big.Int, fundme.StateView) error {
			return errors.New("no thanks")
		}))
		err := b.Notify(alice, bob, big.NewInt(30), nil)
		require.Error(t, err)
		assert.True(t, fundme.IsCode(err, fundme.ErrTransferFailed))

		b.SetReceiver(bob, nil)
		assert.NoError(t, b.Notify(alice, bob, big.NewInt(30), nil))
	})
}
