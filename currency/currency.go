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
	"math/big"

	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/direct-state-transfer/fundme"
)

const (
	// ETH represents the ethereum currency.
	ETH = "ETH"
	// USD represents US dollar amounts as computed by the price converter,
	// with 18 decimals.
	USD = "USD"

	ethPlacesToRound = 6
	usdPlacesToRound = 2
	usdDecimals      = 18
)

var currencies map[string]fundme.Currency

func init() {
	currencies = make(map[string]fundme.Currency)

	currencies[ETH] = parser{
		multiplier:    decimal.NewFromFloat(params.Ether),
		placesToRound: ethPlacesToRound,
		name:          ETH,
	}
	currencies[USD] = parser{
		multiplier:    decimal.New(1, usdDecimals),
		placesToRound: usdPlacesToRound,
		name:          USD,
	}
}

// IsSupported checks if there is parser regsitered for the currency
// represented by the given string.
func IsSupported(currency string) bool {
	p, ok := currencies[currency]
	return ok && p != nil
}

// NewParser returns the currency parser. It returns nil if unsupported currency is used.
// so check if exists before usage.
func NewParser(currency string) fundme.Currency {
	return currencies[currency]
}

// parser converts between a decimal string and the base unit of a currency
// that has a fixed number of decimals.
type parser struct {
	multiplier    decimal.Decimal
	placesToRound int32
	name          string
}

// Parse parses the given currency string, converts it to the base unit and returns a
// big.Int representation of the value.
// For ETH it can parse decimal values upto 1e-18 (the minimum value of the currency,
// 1 wei) without loss of accuracy.
func (p parser) Parse(input string) (*big.Int, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decimal string")
	}
	if amount.IsNegative() {
		return nil, errors.New("amount should not be negative")
	}

	amountBaseUnit := amount.Mul(p.multiplier)
	if !amountBaseUnit.IsZero() && amountBaseUnit.LessThan(decimal.NewFromInt(1)) {
		return nil, errors.Errorf("amount is too small, should be larger than 1e-18 %s", p.name)
	}
	if !amountBaseUnit.Equal(amountBaseUnit.Truncate(0)) {
		return nil, errors.Errorf("amount has more than 18 decimal places of %s", p.name)
	}
	return amountBaseUnit.BigInt(), nil
}

// Print converts the input in base unit to the currency and returns a string representation of it.
// The returned string is rounded off (6 decimal places for ETH, 2 for USD) for visual representation.
func (p parser) Print(input *big.Int) string {
	if input == nil {
		input = new(big.Int)
	}
	amount := decimal.NewFromBigInt(input, 0)
	return amount.Div(p.multiplier).StringFixedBank(p.placesToRound)
}
