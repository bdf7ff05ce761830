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

// Package money parses and formats monetary amounts.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places amounts are written with.
const Places = 2

// Parse parses an amount. A leading dollar sign and thousands separators
// are accepted.
func Parse(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "$")
	t = strings.ReplaceAll(t, ",", "")
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// Fixed formats d with exactly two decimal places, without currency sign.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Dollars formats d as a dollar amount, e.g. $-12.50.
func Dollars(d decimal.Decimal) string {
	return "$" + Fixed(d)
}

// Grouped formats d with two decimal places and thousands separators,
// e.g. -1,234.50.
func Grouped(d decimal.Decimal) string {
	d = d.Round(Places)
	s := Fixed(d.Abs())
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
