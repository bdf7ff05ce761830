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

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sboehler/teller/lib/money"
)

// Owner is a customer holding an ordered set of accounts. Account numbers
// are unique within an owner.
type Owner struct {
	mu        sync.RWMutex
	id        string
	firstName string
	lastName  string
	accounts  []*Account
	recorder  Recorder
}

// NewOwner creates an owner without accounts.
func NewOwner(id, firstName, lastName string, r Recorder) *Owner {
	if r == nil {
		r = Discard
	}
	return &Owner{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		recorder:  r,
	}
}

// ID returns the customer id.
func (o *Owner) ID() string {
	return o.id
}

// FirstName returns the first name.
func (o *Owner) FirstName() string {
	return o.firstName
}

// LastName returns the last name.
func (o *Owner) LastName() string {
	return o.lastName
}

// Name returns the full name.
func (o *Owner) Name() string {
	return strings.TrimSpace(o.firstName + " " + o.lastName)
}

func (o *Owner) String() string {
	return o.Name()
}

// Add appends an account.
func (o *Owner) Add(a *Account) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, existing := range o.accounts {
		if existing.number == a.number {
			return fmt.Errorf("%s: account %s: %w", o.Name(), a.number, ErrDuplicateAccount)
		}
	}
	o.accounts = append(o.accounts, a)
	return nil
}

// Accounts returns the accounts in the order they were added.
func (o *Owner) Accounts() []*Account {
	o.mu.RLock()
	defer o.mu.RUnlock()
	res := make([]*Account, len(o.accounts))
	copy(res, o.accounts)
	return res
}

// AccountOf returns the first account of the given kind.
func (o *Owner) AccountOf(k Kind) (*Account, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, a := range o.accounts {
		if a.kind == k {
			return a, true
		}
	}
	return nil, false
}

// InquireAccount returns the accounts with the given number. Since numbers
// are unique per owner, there is at most one.
func (o *Owner) InquireAccount(number string) []*Account {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var res []*Account
	for _, a := range o.accounts {
		if a.number == number {
			res = append(res, a)
		}
	}
	return res
}

// Account returns the account with the given number.
func (o *Owner) Account(number string) (*Account, error) {
	if as := o.InquireAccount(number); len(as) > 0 {
		return as[0], nil
	}
	return nil, fmt.Errorf("%s: account %s: %w", o.Name(), number, ErrNotFound)
}

// Owns returns whether a is one of the owner's accounts.
func (o *Owner) Owns(a *Account) bool {
	if a == nil {
		return false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, owned := range o.accounts {
		if owned == a {
			return true
		}
	}
	return false
}

// Transfer moves amount between two of the owner's accounts.
func (o *Owner) Transfer(from, to *Account, amount decimal.Decimal) error {
	if !o.Owns(from) {
		return fmt.Errorf("%s: source account %v: %w", o.Name(), from, ErrNotOwner)
	}
	if !o.Owns(to) {
		return fmt.Errorf("%s: target account %v: %w", o.Name(), to, ErrNotOwner)
	}
	if err := from.Transfer(to, amount); err != nil {
		return err
	}
	record(o.recorder, "%s transferred %s from %s to %s", o.Name(), money.Dollars(amount), from.number, to.number)
	return nil
}

// Pay moves amount from one of the owner's accounts to an account of
// receiver. Ownership of both accounts is checked before any balance is
// touched.
func (o *Owner) Pay(receiver *Owner, from, to *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("payment: %w", ErrInvalidAmount)
	}
	if !o.Owns(from) {
		return fmt.Errorf("payment: source account %v does not belong to %s: %w", from, o.Name(), ErrNotOwner)
	}
	if receiver == nil || !receiver.Owns(to) {
		return fmt.Errorf("payment: destination account %v does not belong to receiver: %w", to, ErrNotOwner)
	}
	if from == to {
		return fmt.Errorf("payment: %w", ErrSameAccount)
	}
	unlock := lockPair(from, to)
	err := move(from, to, amount)
	unlock()
	if err != nil {
		return fmt.Errorf("payment failed: %w", err)
	}
	record(o.recorder, "%s paid %s %s", o.Name(), receiver.Name(), money.Dollars(amount))
	return nil
}
