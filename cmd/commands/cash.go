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

// CreateDepositCmd creates the command.
func CreateDepositCmd() *cobra.Command {
	r := cashRunner{withdraw: false}
	c := &cobra.Command{
		Use:   "deposit <owner> <account>",
		Short: "deposit money to an account",
		Args:  cobra.ExactArgs(2),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

// CreateWithdrawCmd creates the command.
func CreateWithdrawCmd() *cobra.Command {
	r := cashRunner{withdraw: true}
	c := &cobra.Command{
		Use:   "withdraw <owner> <account>",
		Short: "withdraw money from an account",
		Long:  `Withdraw money from an account. Checking accounts may be overdrawn up to the configured overdraft limit.`,
		Args:  cobra.ExactArgs(2),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type cashRunner struct {
	flags.Session

	withdraw bool
	amount   flags.AmountFlag
}

func (r *cashRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().VarP(&r.amount, "amount", "a", "amount")
	c.MarkFlagRequired("amount")
}

func (r *cashRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		o, a, err := findAccount(s, args[0], args[1])
		if err != nil {
			return err
		}
		amount := r.amount.Value()
		if r.withdraw {
			if err := withdraw(s, o, a, amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Withdrew %s from %v. New balance: %s\n", money.Dollars(amount), a, money.Dollars(a.Balance()))
			return nil
		}
		if err := deposit(s, o, a, amount); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deposited %s to %v. New balance: %s\n", money.Dollars(amount), a, money.Dollars(a.Balance()))
		return nil
	})
}
