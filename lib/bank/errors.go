// Copyright 2024 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bank

import "errors"

var (
	// ErrInvalidAmount is returned for non-positive amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal or transfer exceeds
	// the available balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCreditLimitExceeded is returned when a borrow would exceed the
	// credit limit.
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")

	// ErrNotOwner is returned when an account does not belong to the party
	// it is claimed for.
	ErrNotOwner = errors.New("account not owned by party")

	// ErrNotFound is returned when a lookup by name, number or id fails.
	ErrNotFound = errors.New("not found")

	// ErrSameAccount is returned when source and target are the same account.
	ErrSameAccount = errors.New("source and target account are the same")

	// ErrUnsupported is returned when an operation is not defined for the
	// kind of account.
	ErrUnsupported = errors.New("operation not supported for account kind")

	// ErrOverpayment is returned by credit payments exceeding the owed
	// amount when overpayments are rejected.
	ErrOverpayment = errors.New("payment exceeds amount owed")

	// ErrDuplicateAccount is returned when an owner already holds an account
	// with the same number.
	ErrDuplicateAccount = errors.New("duplicate account number")
)
