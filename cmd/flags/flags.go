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

package flags

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/sboehler/teller/lib/money"
)

// AmountFlag manages a flag to parse a positive amount.
type AmountFlag struct {
	val decimal.Decimal
	set bool
}

var _ pflag.Value = (*AmountFlag)(nil)

func (af AmountFlag) String() string {
	if !af.set {
		return ""
	}
	return money.Fixed(af.val)
}

// Set implements pflag.Value.
func (af *AmountFlag) Set(v string) error {
	d, err := money.Parse(v)
	if err != nil {
		return err
	}
	af.val, af.set = d, true
	return nil
}

// Type implements pflag.Value.
func (af AmountFlag) Type() string {
	return "<amount>"
}

// Value returns the amount.
func (af AmountFlag) Value() decimal.Decimal {
	return af.val
}

// ChoiceFlag manages a flag which takes one of a fixed set of values.
type ChoiceFlag struct {
	choices []string
	val     string
}

var _ pflag.Value = (*ChoiceFlag)(nil)

// NewChoiceFlag creates a flag. The first choice is the default.
func NewChoiceFlag(choices ...string) ChoiceFlag {
	return ChoiceFlag{choices: choices, val: choices[0]}
}

func (cf ChoiceFlag) String() string {
	return cf.val
}

// Set implements pflag.Value.
func (cf *ChoiceFlag) Set(v string) error {
	for _, c := range cf.choices {
		if c == v {
			cf.val = v
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, want one of %s", v, strings.Join(cf.choices, ", "))
}

// Type implements pflag.Value.
func (cf ChoiceFlag) Type() string {
	return strings.Join(cf.choices, "|")
}

// Value returns the selected choice.
func (cf ChoiceFlag) Value() string {
	return cf.val
}
