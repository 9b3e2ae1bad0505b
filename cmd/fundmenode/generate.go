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
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/direct-state-transfer/fundme/node"
)

const outputF = "output"

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String(outputF, defaultConfigFile, "path of the generated node config file")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate node config file with default values",
	Long: `
Generate node config file (node.yaml) with default values for running the
node on the dev network with a mock price feed. It fails if the file exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := cmd.Flags().GetString(outputF)
		if err != nil {
			panic("unknown flag output\n")
		}
		if err := generateNodeConfig(out); err != nil {
			fmt.Printf("Error generating node config: %v\n", err)
			return
		}
		fmt.Printf("Generated node config file - %q\n", out)
	},
}

func generateNodeConfig(file string) error {
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		return errors.Errorf("exists file - %s", file)
	}
	cfg, err := node.ParseConfig(viper.New(), "")
	if err != nil {
		return err
	}
	return node.WriteConfig(cfg, file)
}
