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
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/fatih/color"

	"github.com/direct-state-transfer/fundme/api/jsonrpc"
)

// shell wraps the ishell type with a mutex, so that output from concurrent
// commands is not interleaved.
type shell struct {
	*ishell.Shell
	sync.Mutex
}

// singleton instance of ishell that can be accessed throught this program.
var sh *shell

var (
	nodeURL = "http://127.0.0.1:8545"

	// singleton instance of client that will be used for all commands.
	client *rpc.Client

	callTimeout = 10 * time.Second

	// SPrintf style functions that produce colored text.
	redf, greenf func(format string, a ...interface{}) string
)

func init() {
	redf = color.New(color.FgRed).SprintfFunc()
	greenf = color.New(color.FgGreen).SprintfFunc()
}

func main() {
	// New shell includes help, clear, exit commands by default.
	sh = &shell{
		Shell: ishell.New(),
	}
	// Read and write history to $HOME/.ishell_history
	sh.SetHomeHistoryPath(".ishell_history")

	sh.AddCmd(nodeCmd)
	sh.AddCmd(contractCmd)
	sh.AddCmd(priceCmd)
	sh.AddCmd(balanceCmd)
	sh.AddCmd(stagingCmd)

	sh.Printf("FundMe cli application.\n\n")

	if err := connect(nodeURL); err != nil {
		sh.Printf("%s\n\n", redf("Error connecting to fundme node at %s: %v", nodeURL, err))
	} else {
		sh.Printf("Connected to fundme node at %s\n\n", nodeURL)
	}

	sh.Run()
}

// connect dials the node and checks that it serves the fundme api.
func connect(url string) error {
	c, err := rpc.Dial(url)
	if err != nil {
		return err
	}
	var info jsonrpc.ContractInfo
	if err := callWith(c, &info, "contractInfo"); err != nil {
		c.Close()
		return err
	}
	if client != nil {
		client.Close()
	}
	client = c
	return nil
}

// call invokes the method in fundme namespace on the connected node.
func call(result interface{}, method string, args ...interface{}) error {
	return callWith(client, result, method, args...)
}

func callWith(c *rpc.Client, result interface{}, method string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return c.CallContext(ctx, result, jsonrpc.Namespace+"_"+method, args...)
}

// checkArgs prints the error and the help text of the command if not
// connected or if the number of args is not as wanted.
func checkArgs(c *ishell.Context, noArgsReq int) bool {
	if client == nil {
		c.Printf("%s\n\n", redf("Not connected to fundme node, connect using 'node connect' command"))
		return false
	}
	if len(c.Args) != noArgsReq {
		c.Printf("%s\n\n", redf("Got %d arg(s). Want %d.", len(c.Args), noArgsReq))
		c.Printf("Command help:\t%s\n\n", c.Cmd.Help)
		return false
	}
	return true
}

// printErr prints the error returned by the node along with its code.
func printErr(c *ishell.Context, err error) {
	if rpcErr, ok := err.(rpc.Error); ok { // nolint: errorlint	// rpc client returns the error as is.
		c.Printf("%s\n\n", redf("Error (code %d) from fundme node: %v", rpcErr.ErrorCode(), err))
		return
	}
	c.Printf("%s\n\n", redf("Error sending command to fundme node: %v", err))
}

func prettify(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
