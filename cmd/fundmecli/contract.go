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
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/ethereum/go-ethereum/common"

	"github.com/direct-state-transfer/fundme/api/jsonrpc"
	fundmenode "github.com/direct-state-transfer/fundme/node"
)

// stagingFundValue is the contribution made by the staging flow, in ETH.
const stagingFundValue = "0.05"

var (
	contractCmd = &ishell.Cmd{
		Name: "contract",
		Help: "Contract command. Usage: contract [command]",
		Func: contract,
	}

	contractFundCmd = &ishell.Cmd{
		Name: "fund",
		Help: "Fund the contract. Usage: contract fund [from account] [amount in ETH]",
		Func: contractFund,
	}

	contractWithdrawCmd = &ishell.Cmd{
		Name: "withdraw",
		Help: "Withdraw all funds to the owner. Usage: contract withdraw [from account]",
		Func: contractWithdraw("withdraw"),
	}

	contractEfficientWithdrawCmd = &ishell.Cmd{
		Name: "efficient-withdraw",
		Help: "Withdraw all funds to the owner, reading the funders once. Usage: contract efficient-withdraw [from account]",
		Func: contractWithdraw("efficientWithdraw"),
	}

	contractFunderCmd = &ishell.Cmd{
		Name: "funder",
		Help: "Print the funder at the index. Usage: contract funder [index]",
		Func: contractFunder,
	}

	contractAmountCmd = &ishell.Cmd{
		Name: "amount",
		Help: "Print the amount funded by the address. Usage: contract amount [address]",
		Func: contractAmount,
	}

	contractOwnerCmd = &ishell.Cmd{
		Name: "owner",
		Help: "Print the owner and the price feed of the contract. Usage: contract owner",
		Func: contractOwner,
	}

	stagingCmd = &ishell.Cmd{
		Name: "staging",
		Help: "Fund 0.05 ETH from user and withdraw as deployer. Usage: staging",
		Func: staging,
	}
)

func init() {
	contractCmd.AddCmd(contractFundCmd)
	contractCmd.AddCmd(contractWithdrawCmd)
	contractCmd.AddCmd(contractEfficientWithdrawCmd)
	contractCmd.AddCmd(contractFunderCmd)
	contractCmd.AddCmd(contractAmountCmd)
	contractCmd.AddCmd(contractOwnerCmd)
}

func contract(c *ishell.Context) {
	c.Println(c.Cmd.HelpText())
}

func contractFund(c *ishell.Context) {
	if !checkArgs(c, 2) {
		return
	}
	var r jsonrpc.Receipt
	if err := call(&r, "fund", c.Args[0], c.Args[1]); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Funded %s ETH from %s:\n%s", r.Value.Ether, r.From.Hex(), prettify(r)))
}

func contractWithdraw(method string) func(*ishell.Context) {
	return func(c *ishell.Context) {
		if !checkArgs(c, 1) {
			return
		}
		var r jsonrpc.Receipt
		if err := call(&r, method, c.Args[0]); err != nil {
			printErr(c, err)
			return
		}
		c.Printf("%s\n\n", greenf("Withdrawn %s ETH to %s:\n%s", r.Transferred.Ether, r.From.Hex(), prettify(r)))
	}
}

func contractFunder(c *ishell.Context) {
	if !checkArgs(c, 1) {
		return
	}
	index, err := strconv.ParseUint(c.Args[0], 10, 64)
	if err != nil {
		c.Printf("%s\n\n", redf("Invalid index %q: %v", c.Args[0], err))
		return
	}
	var funder common.Address
	if err := call(&funder, "getFunder", index); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Funder at %d: %s", index, funder.Hex()))
}

func contractAmount(c *ishell.Context) {
	if !checkArgs(c, 1) {
		return
	}
	if !common.IsHexAddress(c.Args[0]) {
		c.Printf("%s\n\n", redf("Invalid address %q", c.Args[0]))
		return
	}
	var amount jsonrpc.Amount
	if err := call(&amount, "getAddressToAmountFunded", common.HexToAddress(c.Args[0])); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Amount funded by %s: %s ETH", c.Args[0], amount.Ether))
}

func contractOwner(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var owner, feed common.Address
	if err := call(&owner, "getOwner"); err != nil {
		printErr(c, err)
		return
	}
	if err := call(&feed, "getPriceFeed"); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Owner: %s\nPrice feed: %s", owner.Hex(), feed.Hex()))
}

// staging funds the contract from the user account and withdraws everything
// to the deployer, which owns the contract.
func staging(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var fundR, withdrawR jsonrpc.Receipt
	if err := call(&fundR, "fund", fundmenode.AccountUser, stagingFundValue); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n", greenf("Funded %s ETH from %s", fundR.Value.Ether, fundmenode.AccountUser))

	if err := call(&withdrawR, "efficientWithdraw", fundmenode.AccountDeployer); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Withdrawn %s ETH to %s", withdrawR.Transferred.Ether, fundmenode.AccountDeployer))
}
