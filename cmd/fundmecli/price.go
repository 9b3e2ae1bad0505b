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
	priceCmd = &ishell.Cmd{
		Name: "price",
		Help: "Price command. Usage: price [command]",
		Func: price,
	}

	priceGetCmd = &ishell.Cmd{
		Name: "get",
		Help: "Print the price of one ETH in USD as read from the price feed. Usage: price get",
		Func: priceGet,
	}

	priceSetCmd = &ishell.Cmd{
		Name: "set",
		Help: "Set the answer of the mock price feed, in feed units. Usage: price set [answer]",
		Func: priceSet,
	}
)

func init() {
	priceCmd.AddCmd(priceGetCmd)
	priceCmd.AddCmd(priceSetCmd)
}

func price(c *ishell.Context) {
	c.Println(c.Cmd.HelpText())
}

func priceGet(c *ishell.Context) {
	if !checkArgs(c, 0) {
		return
	}
	var p jsonrpc.Price
	if err := call(&p, "ethPrice"); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("1 ETH = %s USD", p.USD))
}

func priceSet(c *ishell.Context) {
	if !checkArgs(c, 1) {
		return
	}
	if err := call(nil, "setMockAnswer", c.Args[0]); err != nil {
		printErr(c, err)
		return
	}
	c.Printf("%s\n\n", greenf("Mock price feed answer set to %s", c.Args[0]))
}
