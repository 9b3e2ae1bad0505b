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

package access_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme"
	"github.com/direct-state-transfer/fundme/access"
)

func Test_OwnerGate(t *testing.T) {
	owner := common.HexToAddress("0x8450c0055cB180C7C37A25866132A740b812937B")
	other := common.HexToAddress("0xc4bA4815c82727554e4c12A07a139b74c6742322")
	g := access.NewOwnerGate(owner)

	t.Run("happy", func(t *testing.T) {
		assert.Equal(t, owner, g.Owner())
		assert.NoError(t, g.Authorize(owner))
	})

	t.Run("err_not_owner", func(t *testing.T) {
		err := g.Authorize(other)
		require.Error(t, err)
		assert.True(t, fundme.IsCode(err, fundme.ErrNotOwner))

		apiErr := fundme.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, fundme.AuthError, apiErr.Category())
		assert.Equal(t, "FundMe__NotOwner", apiErr.Message())
		assert.Equal(t, other.Hex(), apiErr.AddInfo().(fundme.NotOwnerInfo).Caller)
	})

	t.Run("err_zero_address", func(t *testing.T) {
		assert.Error(t, g.Authorize(common.Address{}))
	})
}
