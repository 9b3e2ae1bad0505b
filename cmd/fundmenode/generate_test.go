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

package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/fundme/node"
)

func Test_generateNodeConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "node.yaml")

	t.Run("happy", func(t *testing.T) {
		require.NoError(t, generateNodeConfig(file))

		got, err := node.ParseConfig(viper.New(), file)
		require.NoError(t, err)
		want, err := node.ParseConfig(viper.New(), "")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("err_file_exists", func(t *testing.T) {
		err := generateNodeConfig(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exists file")
	})
}
