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

import "fmt"

// Kind is the kind of an account.
type Kind int

const (
	// CHECKING represents a checking account.
	CHECKING Kind = iota
	// SAVINGS represents a savings account.
	SAVINGS
	// CREDIT represents a credit account.
	CREDIT
)

// Kinds is an array with the ordered account kinds, in the order in which
// they appear in a customer record.
var Kinds = []Kind{CHECKING, SAVINGS, CREDIT}

func (k Kind) String() string {
	switch k {
	case CHECKING:
		return "Checking"
	case SAVINGS:
		return "Savings"
	case CREDIT:
		return "Credit"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Overpayment determines how credit payments beyond the owed amount are
// treated.
type Overpayment int

const (
	// OverpaymentAllow accepts any positive payment. The balance may become
	// positive and the principal negative.
	OverpaymentAllow Overpayment = iota
	// OverpaymentReject rejects payments larger than the owed amount.
	OverpaymentReject
)

func (o Overpayment) String() string {
	switch o {
	case OverpaymentAllow:
		return "allow"
	case OverpaymentReject:
		return "reject"
	}
	return fmt.Sprintf("Overpayment(%d)", int(o))
}

// ParseOverpayment parses an overpayment policy name.
func ParseOverpayment(s string) (Overpayment, error) {
	switch s {
	case "", "allow":
		return OverpaymentAllow, nil
	case "reject":
		return OverpaymentReject, nil
	}
	return 0, fmt.Errorf("invalid overpayment policy %q (want allow or reject)", s)
}
