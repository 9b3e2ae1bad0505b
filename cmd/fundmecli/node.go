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
	"github.com/abiosoft/ishell"

	"github.com/direct-state-transfer/fundme/api/jsonrpc"
)

var (
	nodeCmd = &ishell.Cmd{
		Name: "node",
		Help: "Node command. Usage: node [command]",
		Func: node,
	}

	nodeConnectCmd = &ishell.Cmd{
		Name: "connect",
		Help: "Connect to a running fundme node instance. Usage: node connect [url]",
		Func: nodeConnect,
	}

	nodeInfoCmd = &ishell.Cmd{
		Name: "info",
		Help: "Print the deployment and state of the contract. Usage: node info",
		Func: nodeInfo,
	}

	nodeAccountsCmd = &ishell.Cmd{
		Name: "accounts",
		Help: "Print the development accounts and their balances. Usage: node accounts",
		Func: nodeAccounts,
	}

	balanceCmd = &ishell.Cmd{
		Name: "balance",
		Help: "Print balance of an account. Usage: balance [account name or address]",
		Func: balance,
	}
)

func init() {
	nodeCmd.AddCmd(nodeConnectCmd)
	nodeCmd.AddCmd(nodeInfoCmd)
	nodeCmd.AddCmd(nodeAccountsCmd)
}

func node(c *ishell.Context) {
	c.Println(c.Cmd.HelpText())
}

func nodeConnect(c *ishell.Context) {
	noArgsReq := 1
	if len(c.Args) != noArgsReq {
		c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), noArgsReq))
		c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
		return
	}

	url := c.Args[0]
	if err := connect(url); err != nil {
		c.Printf("%s\n\n", redf("Error connecting to fundme node at %s: %v", url, err))
		return
	}
	c.Printf("%s\n\n", greenf("Connected to fundme node at %s", url))
}

func nodeInfo(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var info jsonrpc.ContractInfo
	if err := call(&info, "contractInfo"); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Contract info:\n%s", prettify(info)))
}

func nodeAccounts(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var accs []jsonrpc.AccountInfo
	if err := call(&accs, "accounts"); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Accounts:\n%s", prettify(accs)))
}

func balance(c *ishell.Context) {
	if !checkArgs(c, 1) {
		return
	}
	var bal jsonrpc.Amount
	if err := call(&bal, "getBalance", c.Args[0]); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Balance of %s: %s ETH", c.Args[0], bal.Ether))
}
