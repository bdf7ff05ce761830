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
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sboehler/teller/cmd/flags"
	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/money"
	"github.com/sboehler/teller/lib/session"
)

// CreateBalanceCmd creates the command.
func CreateBalanceCmd() *cobra.Command {

	var r balanceRunner

	c := &cobra.Command{
		Use:   "balance <owner>",
		Short: "show the balances of a customer",
		Long:  `Inquire the balances of all accounts of a customer. Each inquiry is recorded in the transaction log.`,
		Args:  cobra.ExactArgs(1),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type balanceRunner struct {
	flags.Session

	asCSV, color bool
}

func (r *balanceRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().BoolVar(&r.asCSV, "csv", false, "render as CSV")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *balanceRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		o, err := s.Directory.Owner(args[0])
		if err != nil {
			return err
		}
		tbl := accountsTable(o, func(a *bank.Account) decimal.Decimal {
			b := a.InquireBalance()
			s.Record(fmt.Sprintf("%s made a balance inquiry on %s. Balance: %s", o.Name(), a.Number(), money.Dollars(b)))
			return b
		})
		if !r.asCSV {
			fmt.Fprintf(cmd.OutOrStdout(), "Accounts of %s (ID %s)\n", o.Name(), o.ID())
		}
		return render(cmd.OutOrStdout(), tbl, r.asCSV, r.color)
	})
}
