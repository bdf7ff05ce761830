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

package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/money"
	"github.com/sboehler/teller/lib/session"
	"github.com/sboehler/teller/lib/table"
)

func findAccount(s *session.Session, owner, number string) (*bank.Owner, *bank.Account, error) {
	o, err := s.Directory.Owner(owner)
	if err != nil {
		return nil, nil, err
	}
	a, err := o.Account(number)
	if err != nil {
		return nil, nil, err
	}
	return o, a, nil
}

func deposit(s *session.Session, o *bank.Owner, a *bank.Account, amount decimal.Decimal) error {
	if err := a.Deposit(amount); err != nil {
		return err
	}
	s.Record(fmt.Sprintf("%s deposited %s to %s", o.Name(), money.Dollars(amount), a.Number()))
	return nil
}

func withdraw(s *session.Session, o *bank.Owner, a *bank.Account, amount decimal.Decimal) error {
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	s.Record(fmt.Sprintf("%s withdrew %s from %s", o.Name(), money.Dollars(amount), a.Number()))
	return nil
}

func render(w io.Writer, tbl *table.Table, asCSV, color bool) error {
	out := bufio.NewWriter(w)
	defer out.Flush()
	var r table.Renderer
	if asCSV {
		r = &table.CSVRenderer{}
	} else {
		r = &table.TextRenderer{Color: color}
	}
	return r.Render(tbl, out)
}

func accountsTable(o *bank.Owner, balance func(*bank.Account) decimal.Decimal) *table.Table {
	tbl := table.New(3)
	tbl.AddSeparatorRow()
	tbl.AddRow().AddText("Account", table.Left).AddText("Kind", table.Left).AddText("Balance", table.Right)
	tbl.AddSeparatorRow()
	for _, a := range o.Accounts() {
		tbl.AddRow().AddText(a.Number(), table.Left).AddText(a.Kind().String(), table.Left).AddAmount(balance(a))
	}
	tbl.AddSeparatorRow()
	return tbl
}
