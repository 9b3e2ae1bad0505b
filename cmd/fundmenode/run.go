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
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/direct-state-transfer/fundme/api/jsonrpc"
	"github.com/direct-state-transfer/fundme/node"
)

const (
	// flag names for run command.
	configfileF    = "configfile"
	loglevelF      = "loglevel"
	logfileF       = "logfile"
	rpcaddrF       = "rpcaddr"
	networkF       = "network"
	pricefeedF     = "pricefeed"
	chainurlF      = "chainurl"
	feedaddressF   = "feedaddress"
	feedtimeoutF   = "feedtimeout"
	minimumusdF    = "minimumusd"
	accountsCountF = "accounts"

	// default values for flags in run command.
	defaultConfigFile = "node.yaml"
)

var (
	// node level viper instance for parsing configuration from flags and configuration files.
	nodeViper *viper.Viper

	// flags in the run command are bound to the viper keys, to override the values from config file.
	flagsToBind = map[string]string{
		loglevelF:      "loglevel",
		logfileF:       "logfile",
		rpcaddrF:       "rpcaddr",
		networkF:       "network",
		pricefeedF:     "pricefeed.type",
		chainurlF:      "pricefeed.chainurl",
		feedaddressF:   "pricefeed.address",
		feedtimeoutF:   "pricefeed.timeout",
		minimumusdF:    "minimumusd",
		accountsCountF: "accounts.count",
	}
)

func init() {
	nodeViper = viper.New()
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String(configfileF, defaultConfigFile, "node config file. Use empty string for defaults only")

	runCmd.Flags().String(loglevelF, "", "Log level. Supported levels: debug, info, error")
	runCmd.Flags().String(logfileF, "", "Log file path. Use empty string for stdout")
	runCmd.Flags().String(rpcaddrF, "", "Address at which the json-rpc api is served")
	runCmd.Flags().String(networkF, "", "Network name. Supported networks: dev, sepolia")
	runCmd.Flags().String(pricefeedF, "", "Price feed type. Supported types: mock, chainlink")
	runCmd.Flags().String(chainurlF, "", "URL of the ethereum node for reading the chainlink price feed")
	runCmd.Flags().String(feedaddressF, "", "Address of the chainlink price feed as hex string with 0x prefix")
	runCmd.Flags().Duration(feedtimeoutF, time.Duration(0), "Max duration to wait for a price feed response")
	runCmd.Flags().String(minimumusdF, "", "Minimum contribution in USD")
	runCmd.Flags().Int(accountsCountF, 0, "Number of development accounts")

	// Bind only the flags set on the command line, so that unset flags do
	// not override the values in the config file.
	runCmd.PreRun = func(cmd *cobra.Command, _ []string) {
		for flag, key := range flagsToBind {
			if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
				nodeViper.BindPFlag(key, f) // nolint: errcheck, gosec	// flag is not nil.
			}
		}
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the fundme node",
	Long: `
Start the fundme node. It deploys the contract (and a mock price feed on the
dev network) from the deployer account and serves the contract via json-rpc
over http and websocket. Prometheus metrics are served at /metrics.

Configuration can be specified in the config file or via flags. If both
config file and flags are given, values in flags are used.`,
	Run: run,
}

func run(cmd *cobra.Command, args []string) {
	nodeCfgFile, err := cmd.Flags().GetString(configfileF)
	if err != nil {
		panic("unknown flag configFile\n")
	}
	if nodeCfgFile != "" {
		if _, err := os.Stat(nodeCfgFile); os.IsNotExist(err) && !cmd.Flags().Changed(configfileF) {
			nodeCfgFile = ""
		}
	}
	fmt.Printf("Using node config file - %q\n", nodeCfgFile)

	nodeCfg, err := node.ParseConfig(nodeViper, nodeCfgFile)
	if err != nil {
		fmt.Printf("Error reading node config: %v\n", err)
		return
	}

	n, err := node.New(nodeCfg)
	if err != nil {
		fmt.Printf("Error initializing node: %v\n", err)
		return
	}
	defer n.Close()

	s, err := jsonrpc.NewServer(n, n.Metrics().Handler())
	if err != nil {
		fmt.Printf("Error initializing json-rpc server: %v\n", err)
		return
	}

	fmt.Printf("%s\n\n", prettify(n.Info()))
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		if err := s.Close(); err != nil {
			fmt.Printf("Error stopping server: %v\n", err)
		}
	}()

	l, err := net.Listen("tcp", nodeCfg.RPCAddr)
	if err != nil {
		fmt.Printf("Error listening at %s: %v\n", nodeCfg.RPCAddr, err)
		return
	}
	fmt.Printf("Started fundme json-rpc API server with the above deployment at %s\n", l.Addr())
	if err := s.Serve(l); err != nil {
		fmt.Printf("Server returned with error: %v\n", err)
	}
}

func prettify(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
