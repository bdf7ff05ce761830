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

	"github.com/spf13/cobra"

	"github.com/sboehler/teller/cmd/flags"
	"github.com/sboehler/teller/lib/money"
	"github.com/sboehler/teller/lib/session"
)

// CreateBorrowCmd creates the command.
func CreateBorrowCmd() *cobra.Command {
	r := creditRunner{repay: false}
	c := &cobra.Command{
		Use:   "borrow <owner> <credit-account>",
		Short: "borrow on a credit account",
		Args:  cobra.ExactArgs(2),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

// CreateRepayCmd creates the command.
func CreateRepayCmd() *cobra.Command {
	r := creditRunner{repay: true}
	c := &cobra.Command{
		Use:   "repay <owner> <credit-account>",
		Short: "pay towards a credit account",
		Long:  `Pay towards a credit account. Whether payments beyond the owed amount are accepted depends on the credit_overpayment setting.`,
		Args:  cobra.ExactArgs(2),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type creditRunner struct {
	flags.Session

	repay  bool
	amount flags.AmountFlag
}

func (r *creditRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().VarP(&r.amount, "amount", "a", "amount")
	c.MarkFlagRequired("amount")
}

func (r *creditRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		_, a, err := findAccount(s, args[0], args[1])
		if err != nil {
			return err
		}
		verb := "Borrowed"
		if r.repay {
			verb = "Paid"
			err = a.Pay(r.amount.Value())
		} else {
			err = a.Borrow(r.amount.Value())
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %v. New balance: %s, principal: %s, limit: %s\n",
			verb, money.Dollars(r.amount.Value()), a, money.Dollars(a.Balance()), money.Dollars(a.Principal()), money.Dollars(a.CreditLimit()))
		return nil
	})
}
