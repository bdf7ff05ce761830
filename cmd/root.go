// Copyright 2020 Silvio Böhler
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

// Package cmd is the main command file for Cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sboehler/teller/cmd/commands"
	"github.com/sboehler/teller/cmd/completion"
)

// CreateCmd creates the root command with all subcommands.
func CreateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "teller",
		Short: "teller is a ledger for a small retail bank",
		Long: `teller keeps the checking, savings and credit accounts of the customers in a CSV file
and records every operation in an append-only transaction log.`,
		SilenceUsage: true,
	}
	c.AddCommand(
		commands.CreateBalanceCmd(),
		commands.CreateDepositCmd(),
		commands.CreateWithdrawCmd(),
		commands.CreateTransferCmd(),
		commands.CreatePayCmd(),
		commands.CreateBorrowCmd(),
		commands.CreateRepayCmd(),
		commands.CreateLookupCmd(),
		commands.CreateSearchCmd(),
		commands.CreateAccountsCmd(),
		commands.CreateHistoryCmd(),
		commands.CreateApplyCmd(),
	)
	c.AddCommand(completion.CreateCmd(c))
	return c
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	c := CreateCmd()
	c.SilenceErrors = true
	if err := c.Execute(); err != nil {
		fmt.Fprintln(c.ErrOrStderr(), err)
		os.Exit(1)
	}
}
