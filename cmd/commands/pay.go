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

// CreatePayCmd creates the command.
func CreatePayCmd() *cobra.Command {

	var r payRunner

	c := &cobra.Command{
		Use:   "pay <payer> <from> <payee> <to>",
		Short: "pay another customer",
		Long:  `Pay money from an account of the payer to an account of the payee. Both accounts must belong to the respective customer.`,
		Args:  cobra.ExactArgs(4),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type payRunner struct {
	flags.Session

	amount flags.AmountFlag
}

func (r *payRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().VarP(&r.amount, "amount", "a", "amount")
	c.MarkFlagRequired("amount")
}

func (r *payRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		payer, from, err := findAccount(s, args[0], args[1])
		if err != nil {
			return err
		}
		payee, err := s.Directory.Owner(args[2])
		if err != nil {
			return err
		}
		to, err := payee.Account(args[3])
		if err != nil {
			return err
		}
		if err := payer.Pay(payee, from, to, r.amount.Value()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s paid %s %s. New balance of %s: %s\n",
			payer.Name(), payee.Name(), money.Dollars(r.amount.Value()), from.Number(), money.Dollars(from.Balance()))
		return nil
	})
}
