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

package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_init_Registrations(t *testing.T) {
	for name, wantPlaces := range map[string]int32{ETH: ethPlacesToRound, USD: usdPlacesToRound} {
		p, ok := currencies[name].(parser)
		require.True(t, ok, name)
		assert.Equal(t, name, p.name)
		assert.Equal(t, wantPlaces, p.placesToRound)
		assert.Equal(t, "1000000000000000000", p.multiplier.String(), "%s uses 18 decimals", name)
	}
}

func Test_IsSupported_NilParser(t *testing.T) {
	const name = "registered_as_nil"
	currencies[name] = nil
	t.Cleanup(func() { delete(currencies, name) })

	assert.False(t, IsSupported(name))
	assert.Nil(t, NewParser(name))
}
