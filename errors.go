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

package fundme

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrorCategory represents the category of the error, which describes how the
// error should be handled by the client.
type ErrorCategory int

const (
	// ClientError is caused by the errors in the request from the client:
	// too small a contribution, an unknown account or an index past the end
	// of the funders.
	//
	// To resolve this, the client should provide valid arguments and retry.
	ClientError ErrorCategory = iota

	// AuthError is caused when the caller is not allowed to perform the
	// operation: it is not the owner, or it calls a mutating operation while
	// the contract is transferring value. Retrying the same call in the same
	// situation will not help.
	AuthError

	// ExternalError is caused by a system outside the contract: the price
	// feed could not be read or the recipient rejected a transfer. No state
	// was changed and the client may retry.
	ExternalError

	// InternalError is caused due to unintended behavior in the node software.
	//
	// To resolve this, user should manually inspect the error message and
	// handle it.
	InternalError
)

// String implements the stringer interface for ErrorCategory.
func (c ErrorCategory) String() string {
	return [...]string{
		"Client",
		"Auth",
		"External",
		"Internal",
	}[c]
}

// ErrorCode is a numeric code assigned to identify the specific type of error.
// The keys in the additional field is fixed for each error code.
type ErrorCode int

// Error code definitions.
const (
	ErrInsufficientValue   ErrorCode = 101
	ErrInsufficientBalance ErrorCode = 102
	ErrIndexOutOfBounds    ErrorCode = 103
	ErrInvalidArgument     ErrorCode = 104
	ErrUnknownAccount      ErrorCode = 105
	ErrNotOwner            ErrorCode = 201
	ErrReentrantCall       ErrorCode = 202
	ErrTransferFailed      ErrorCode = 301
	ErrOracleUnavailable   ErrorCode = 302
	ErrUnknownInternal     ErrorCode = 401
)

// APIError represents the error that will be returned by the API of the node.
type APIError struct {
	category ErrorCategory
	code     ErrorCode
	message  string
	addInfo  interface{}
}

// Category returns the error category for this API Error.
func (e APIError) Category() ErrorCategory {
	return e.category
}

// Code returns the error code for this API Error.
func (e APIError) Code() ErrorCode {
	return e.code
}

// Message returns the error message for this API Error.
func (e APIError) Message() string {
	return e.message
}

// AddInfo returns the additional info for this API Error.
func (e APIError) AddInfo() interface{} {
	return e.addInfo
}

// Error implement the error interface for API error.
func (e APIError) Error() string {
	return fmt.Sprintf("Category: %s, Code: %d, Message: %s, AddInfo: %+v",
		e.Category(), e.Code(), e.Message(), e.AddInfo())
}

// ErrorCode implements the rpc.Error interface of go-ethereum, so that the
// code is sent to json-rpc clients.
func (e APIError) ErrorCode() int {
	return int(e.code)
}

// ErrorData implements the rpc.DataError interface of go-ethereum.
func (e APIError) ErrorData() interface{} {
	return e.addInfo
}

// CodeOf returns the error code of the APIError in the chain of err.
// It returns ErrUnknownInternal for any other non nil error and 0 for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return 0
	}
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code()
	}
	return ErrUnknownInternal
}

// IsCode reports whether the APIError in the chain of err has the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

type (
	// InsufficientValueInfo represents the fields in the additional info for
	// ErrInsufficientValue. Amounts are in wei, USD values with 18 decimals.
	InsufficientValueInfo struct {
		Value      string
		ValueUSD   string
		MinimumUSD string
	}

	// InsufficientBalanceInfo represents the fields in the additional info for
	// ErrInsufficientBalance.
	InsufficientBalanceInfo struct {
		Account  string
		Balance  string
		Required string
	}

	// IndexOutOfBoundsInfo represents the fields in the additional info for
	// ErrIndexOutOfBounds.
	IndexOutOfBoundsInfo struct {
		Index  uint64
		Length uint64
	}

	// InvalidArgumentInfo represents the fields in the additional info for
	// ErrInvalidArgument.
	InvalidArgumentInfo struct {
		Name        string
		Value       string
		Requirement string
	}

	// UnknownAccountInfo represents the fields in the additional info for
	// ErrUnknownAccount.
	UnknownAccountInfo struct {
		Account string
	}

	// NotOwnerInfo represents the fields in the additional info for
	// ErrNotOwner.
	NotOwnerInfo struct {
		Caller string
	}

	// ReentrantCallInfo represents the fields in the additional info for
	// ErrReentrantCall.
	ReentrantCallInfo struct {
		Op       string
		Caller   string
		Contract string
	}

	// TransferFailedInfo represents the fields in the additional info for
	// ErrTransferFailed.
	TransferFailedInfo struct {
		Recipient string
		Amount    string
		Reason    string
	}

	// OracleUnavailableInfo represents the fields in the additional info for
	// ErrOracleUnavailable.
	OracleUnavailableInfo struct {
		PriceFeed string
		Reason    string
	}
)

// NewErrInsufficientValue returns an ErrInsufficientValue API Error for a
// contribution whose USD equivalent is below the minimum.
func NewErrInsufficientValue(value, valueUSD, minimumUSD *big.Int) APIError {
	return APIError{
		category: ClientError,
		code:     ErrInsufficientValue,
		message:  "Didn't send enough ETH",
		addInfo: InsufficientValueInfo{
			Value:      value.String(),
			ValueUSD:   valueUSD.String(),
			MinimumUSD: minimumUSD.String(),
		},
	}
}

// NewErrInsufficientBalance returns an ErrInsufficientBalance API Error when
// the account cannot pay the required amount.
func NewErrInsufficientBalance(account common.Address, balance, required *big.Int) APIError {
	return APIError{
		category: ClientError,
		code:     ErrInsufficientBalance,
		message:  "insufficient balance in account",
		addInfo: InsufficientBalanceInfo{
			Account:  account.Hex(),
			Balance:  balance.String(),
			Required: required.String(),
		},
	}
}

// NewErrIndexOutOfBounds returns an ErrIndexOutOfBounds API Error for a read
// past the end of the funders.
func NewErrIndexOutOfBounds(index, length uint64) APIError {
	return APIError{
		category: ClientError,
		code:     ErrIndexOutOfBounds,
		message:  "index out of bounds",
		addInfo: IndexOutOfBoundsInfo{
			Index:  index,
			Length: length,
		},
	}
}

// NewErrInvalidArgument returns an ErrInvalidArgument API Error with the given
// argument name, value, requirement for the argument and the error message.
func NewErrInvalidArgument(name, value, requirement, message string) APIError {
	return APIError{
		category: ClientError,
		code:     ErrInvalidArgument,
		message:  message,
		addInfo: InvalidArgumentInfo{
			Name:        name,
			Value:       value,
			Requirement: requirement,
		},
	}
}

// NewErrUnknownAccount returns an ErrUnknownAccount API Error for an account
// that is not managed by the node.
func NewErrUnknownAccount(account string) APIError {
	return APIError{
		category: ClientError,
		code:     ErrUnknownAccount,
		message:  "account not managed by this node",
		addInfo:  UnknownAccountInfo{Account: account},
	}
}

// NewErrNotOwner returns an ErrNotOwner API Error for the given caller.
func NewErrNotOwner(caller common.Address) APIError {
	return APIError{
		category: AuthError,
		code:     ErrNotOwner,
		message:  "FundMe__NotOwner",
		addInfo:  NotOwnerInfo{Caller: caller.Hex()},
	}
}

// NewErrReentrantCall returns an ErrReentrantCall API Error for a mutating
// operation called while the contract is notifying the recipient of a
// transfer.
func NewErrReentrantCall(op string, caller, contract common.Address) APIError {
	return APIError{
		category: AuthError,
		code:     ErrReentrantCall,
		message:  "reentrant call",
		addInfo: ReentrantCallInfo{
			Op:       op,
			Caller:   caller.Hex(),
			Contract: contract.Hex(),
		},
	}
}

// NewErrTransferFailed returns an ErrTransferFailed API Error when the
// recipient rejected a transfer.
func NewErrTransferFailed(recipient common.Address, amount *big.Int, reason error) APIError {
	return APIError{
		category: ExternalError,
		code:     ErrTransferFailed,
		message:  "Call failed",
		addInfo: TransferFailedInfo{
			Recipient: recipient.Hex(),
			Amount:    amount.String(),
			Reason:    reasonString(reason),
		},
	}
}

// NewErrOracleUnavailable returns an ErrOracleUnavailable API Error when the
// price feed could not be read or returned an invalid price.
func NewErrOracleUnavailable(priceFeed common.Address, reason error) APIError {
	return APIError{
		category: ExternalError,
		code:     ErrOracleUnavailable,
		message:  "price feed unavailable",
		addInfo: OracleUnavailableInfo{
			PriceFeed: priceFeed.Hex(),
			Reason:    reasonString(reason),
		},
	}
}

// NewErrUnknownInternal returns an ErrUnknownInternal API Error with the given
// error message.
func NewErrUnknownInternal(err error) APIError {
	return APIError{
		category: InternalError,
		code:     ErrUnknownInternal,
		message:  reasonString(err),
	}
}

func reasonString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
