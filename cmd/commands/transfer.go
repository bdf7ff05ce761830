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

// CreateTransferCmd creates the command.
func CreateTransferCmd() *cobra.Command {

	var r transferRunner

	c := &cobra.Command{
		Use:   "transfer <owner> <from> <to>",
		Short: "move money between two accounts of a customer",
		Long:  `Move money between two accounts of the same customer. Credit accounts cannot be the source of a transfer.`,
		Args:  cobra.ExactArgs(3),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type transferRunner struct {
	flags.Session

	amount flags.AmountFlag
}

func (r *transferRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().VarP(&r.amount, "amount", "a", "amount")
	c.MarkFlagRequired("amount")
}

func (r *transferRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		o, from, err := findAccount(s, args[0], args[1])
		if err != nil {
			return err
		}
		to, err := o.Account(args[2])
		if err != nil {
			return err
		}
		if err := o.Transfer(from, to, r.amount.Value()); err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Transferred %s from %v to %v.\n", money.Dollars(r.amount.Value()), from, to)
		fmt.Fprintf(w, "New balances: %s %s, %s %s\n", from.Number(), money.Dollars(from.Balance()), to.Number(), money.Dollars(to.Balance()))
		return nil
	})
}
