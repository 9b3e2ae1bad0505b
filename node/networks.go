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

package node

// Network describes a chain the node can be configured for.
type Network struct {
	Name    string
	ChainID uint64

	// EthUsdPriceFeed is the address of the chainlink ETH / USD aggregator.
	// Empty for development networks, where a mock aggregator is deployed.
	EthUsdPriceFeed string
}

// IsDev returns true for development networks.
func (n Network) IsDev() bool {
	return n.EthUsdPriceFeed == ""
}

// KnownNetworks holds the networks supported by the node, by name.
var KnownNetworks = map[string]Network{
	"sepolia": {
		Name:            "sepolia",
		ChainID:         11155111,
		EthUsdPriceFeed: "0x694AA1769357215DE4FAC081bf1f309aDC325306",
	},
	"dev": {
		Name:    "dev",
		ChainID: 31337,
	},
}
