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
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sboehler/teller/cmd/flags"
	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/common/compare"
	"github.com/sboehler/teller/lib/session"
	"github.com/sboehler/teller/lib/table"
)

// CreateAccountsCmd creates the command.
func CreateAccountsCmd() *cobra.Command {

	r := accountsRunner{
		sort: flags.NewChoiceFlag("file", "name", "balance"),
	}

	c := &cobra.Command{
		Use:   "accounts",
		Short: "list all customers and their balances",
		Args:  cobra.NoArgs,
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type accountsRunner struct {
	flags.Session

	sort         flags.ChoiceFlag
	asCSV, color bool
}

func (r *accountsRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().VarP(&r.sort, "sort", "s", "order of the customers")
	c.Flags().BoolVar(&r.asCSV, "csv", false, "render as CSV")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

type customer struct {
	name  string
	owner *bank.Owner
	total decimal.Decimal
}

func (r *accountsRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		var (
			names     = s.Directory.Names()
			customers = make([]customer, 0, len(names))
		)
		for i, o := range s.Directory.Owners() {
			c := customer{name: names[i], owner: o}
			for _, a := range o.Accounts() {
				c.total = c.total.Add(a.Balance())
			}
			customers = append(customers, c)
		}
		switch r.sort.Value() {
		case "name":
			compare.Sort(customers, compare.Combine(
				compare.By(func(c customer) string { return c.owner.LastName() }, compare.Fold),
				compare.By(func(c customer) string { return c.name }, compare.Fold),
			))
		case "balance":
			compare.Sort(customers, compare.Desc(compare.By(func(c customer) decimal.Decimal { return c.total }, compare.Decimal)))
		}

		tbl := table.New(3 + len(bank.Kinds))
		tbl.AddSeparatorRow()
		header := tbl.AddRow().AddText("ID", table.Left).AddText("Name", table.Left)
		for _, k := range bank.Kinds {
			header.AddText(k.String(), table.Right)
		}
		header.AddText("Total", table.Right)
		tbl.AddSeparatorRow()
		var total decimal.Decimal
		for _, c := range customers {
			row := tbl.AddRow().AddText(c.owner.ID(), table.Left).AddText(c.name, table.Left)
			for _, k := range bank.Kinds {
				if a, ok := c.owner.AccountOf(k); ok {
					row.AddAmount(a.Balance())
				} else {
					row.AddEmpty()
				}
			}
			row.AddAmount(c.total)
			total = total.Add(c.total)
		}
		tbl.AddSeparatorRow()
		if !r.asCSV {
			row := tbl.AddRow().AddText("", table.Left).AddText("Total", table.Left)
			for range bank.Kinds {
				row.AddEmpty()
			}
			row.AddAmount(total)
			tbl.AddSeparatorRow()
		}
		return render(cmd.OutOrStdout(), tbl, r.asCSV, r.color)
	})
}
