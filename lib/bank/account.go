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

// Package bank implements accounts, their owners and the movement of funds
// between them.
package bank

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/sboehler/teller/lib/money"
)

var sequence atomic.Uint64

// Account is a balance-bearing account of one of the kinds in Kinds.
//
// For checking and savings accounts the balance never drops below zero
// (below the negated overdraft limit for checking). For credit accounts a
// negative balance is the amount owed, which never exceeds the credit limit.
type Account struct {
	mu sync.Mutex

	// seq orders accounts for locking.
	seq uint64

	kind   Kind
	number string

	balance decimal.Decimal

	// checking only
	overdraftLimit decimal.Decimal

	// credit only
	creditLimit decimal.Decimal
	principal   decimal.Decimal
	overpayment Overpayment

	recorder Recorder
}

// AccountBuilder builds accounts.
type AccountBuilder struct {
	Kind    Kind
	Number  string
	Balance decimal.Decimal

	// OverdraftLimit is the amount a checking account may be overdrawn by.
	OverdraftLimit decimal.Decimal

	// CreditLimit and Overpayment apply to credit accounts.
	CreditLimit decimal.Decimal
	Overpayment Overpayment

	Recorder Recorder
}

// Build validates the builder and creates the account.
func (ab AccountBuilder) Build() (*Account, error) {
	switch ab.Kind {
	case CHECKING, SAVINGS, CREDIT:
	default:
		return nil, fmt.Errorf("account %s: invalid kind %v", ab.Number, ab.Kind)
	}
	if ab.OverdraftLimit.IsNegative() {
		return nil, fmt.Errorf("account %s: negative overdraft limit %s", ab.Number, ab.OverdraftLimit)
	}
	if ab.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("account %s: negative credit limit %s", ab.Number, ab.CreditLimit)
	}
	a := &Account{
		seq:      sequence.Add(1),
		kind:     ab.Kind,
		number:   ab.Number,
		balance:  ab.Balance,
		recorder: ab.Recorder,
	}
	if a.recorder == nil {
		a.recorder = Discard
	}
	switch ab.Kind {
	case CHECKING:
		a.overdraftLimit = ab.OverdraftLimit
	case CREDIT:
		a.creditLimit = ab.CreditLimit
		a.overpayment = ab.Overpayment
		if ab.Balance.IsNegative() {
			a.principal = ab.Balance.Neg()
		}
	}
	return a, nil
}

func mustBuild(ab AccountBuilder) *Account {
	a, err := ab.Build()
	if err != nil {
		panic(err)
	}
	return a
}

// NewChecking creates a checking account without overdraft.
func NewChecking(number string, balance decimal.Decimal, r Recorder) *Account {
	return mustBuild(AccountBuilder{Kind: CHECKING, Number: number, Balance: balance, Recorder: r})
}

// NewSavings creates a savings account.
func NewSavings(number string, balance decimal.Decimal, r Recorder) *Account {
	return mustBuild(AccountBuilder{Kind: SAVINGS, Number: number, Balance: balance, Recorder: r})
}

// NewCredit creates a credit account. It panics if limit is negative.
func NewCredit(number string, balance, limit decimal.Decimal, r Recorder) *Account {
	return mustBuild(AccountBuilder{Kind: CREDIT, Number: number, Balance: balance, CreditLimit: limit, Recorder: r})
}

// Kind returns the account kind.
func (a *Account) Kind() Kind {
	return a.kind
}

// Number returns the account number.
func (a *Account) Number() string {
	return a.number
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s)", a.kind, a.number)
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// OverdraftLimit returns the overdraft limit. It is zero for all but
// checking accounts.
func (a *Account) OverdraftLimit() decimal.Decimal {
	return a.overdraftLimit
}

// CreditLimit returns the credit limit. It is zero for all but credit
// accounts.
func (a *Account) CreditLimit() decimal.Decimal {
	return a.creditLimit
}

// Principal returns the borrowed and unpaid amount of a credit account.
func (a *Account) Principal() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.principal
}

// InquireBalance returns the current balance and records the inquiry.
func (a *Account) InquireBalance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	record(a.recorder, "Balance inquiry for %s: %s", a.number, money.Dollars(a.balance))
	return a.balance
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deposit(amount)
}

// Withdraw removes amount from the balance.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(amount)
}

// Transfer moves amount from a to target. Credit accounts do not support
// transfers.
func (a *Account) Transfer(target *Account, amount decimal.Decimal) error {
	switch a.kind {
	case CHECKING, SAVINGS:
	case CREDIT:
		return fmt.Errorf("transfer from %s: %w", a.number, ErrUnsupported)
	}
	if target == nil {
		return fmt.Errorf("transfer from %s: target account %w", a.number, ErrNotFound)
	}
	if target == a {
		return fmt.Errorf("transfer from %s: %w", a.number, ErrSameAccount)
	}
	unlock := lockPair(a, target)
	defer unlock()
	if err := move(a, target, amount); err != nil {
		return fmt.Errorf("transfer from %s to %s: %w", a.number, target.number, err)
	}
	return nil
}

// Borrow draws amount from a credit account.
func (a *Account) Borrow(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.kind != CREDIT {
		return fmt.Errorf("borrow on %s: %w", a.number, ErrUnsupported)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("borrow on %s: %w", a.number, ErrInvalidAmount)
	}
	if a.balance.Abs().Add(amount).GreaterThan(a.creditLimit) {
		return fmt.Errorf("borrow of %s on %s (limit %s): %w", money.Dollars(amount), a.number, money.Dollars(a.creditLimit), ErrCreditLimitExceeded)
	}
	a.balance = a.balance.Sub(amount)
	a.principal = a.principal.Add(amount)
	record(a.recorder, "Borrow of %s on %s. New balance: %s", money.Dollars(amount), a.number, money.Dollars(a.balance))
	return nil
}

// Pay pays amount towards a credit account. Unless the account rejects
// overpayments, the payment is not capped at the owed amount.
func (a *Account) Pay(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.kind != CREDIT {
		return fmt.Errorf("payment to %s: %w", a.number, ErrUnsupported)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("payment to %s: %w", a.number, ErrInvalidAmount)
	}
	if a.overpayment == OverpaymentReject && amount.GreaterThan(a.balance.Neg()) {
		return fmt.Errorf("payment of %s to %s (owed %s): %w", money.Dollars(amount), a.number, money.Dollars(a.balance.Neg()), ErrOverpayment)
	}
	a.balance = a.balance.Add(amount)
	a.principal = a.principal.Sub(amount)
	record(a.recorder, "Payment of %s to %s. New balance: %s", money.Dollars(amount), a.number, money.Dollars(a.balance))
	return nil
}

// available returns the amount which can be withdrawn. Callers must hold
// the lock.
func (a *Account) available() decimal.Decimal {
	switch a.kind {
	case CHECKING:
		return a.balance.Add(a.overdraftLimit)
	case SAVINGS, CREDIT:
		return a.balance
	}
	panic(fmt.Sprintf("invalid account kind %v", a.kind))
}

func (a *Account) checkWithdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.available()) {
		return fmt.Errorf("%s available, %s requested: %w", money.Dollars(a.available()), money.Dollars(amount), ErrInsufficientFunds)
	}
	return nil
}

func (a *Account) deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("deposit to %s: %w", a.number, ErrInvalidAmount)
	}
	a.balance = a.balance.Add(amount)
	record(a.recorder, "Deposit of %s to %s. New balance: %s", money.Dollars(amount), a.number, money.Dollars(a.balance))
	return nil
}

func (a *Account) withdraw(amount decimal.Decimal) error {
	if err := a.checkWithdraw(amount); err != nil {
		return fmt.Errorf("withdrawal from %s: %w", a.number, err)
	}
	a.balance = a.balance.Sub(amount)
	record(a.recorder, "Withdrawal of %s from %s. New balance: %s", money.Dollars(amount), a.number, money.Dollars(a.balance))
	return nil
}

func (a *Account) reverse(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
	record(a.recorder, "Reversal of %s to %s. New balance: %s", money.Dollars(amount), a.number, money.Dollars(a.balance))
}

// move withdraws amount from one account and deposits it to the other.
// Either both steps take effect or neither does. Callers must hold the
// locks of both accounts.
func move(from, to *Account, amount decimal.Decimal) error {
	if err := from.withdraw(amount); err != nil {
		return err
	}
	if err := to.deposit(amount); err != nil {
		from.reverse(amount)
		return err
	}
	return nil
}

// lockPair locks two distinct accounts in sequence order.
func lockPair(a, b *Account) func() {
	first, second := a, b
	if second.seq < first.seq {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
