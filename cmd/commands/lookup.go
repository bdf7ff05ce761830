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
	"github.com/sboehler/teller/lib/table"
)

// CreateLookupCmd creates the command.
func CreateLookupCmd() *cobra.Command {

	var r lookupRunner

	c := &cobra.Command{
		Use:   "lookup <account>",
		Short: "find an account by its number",
		Long:  `Find an account by its number across all customers. The inquiry is recorded in the transaction log.`,
		Args:  cobra.ExactArgs(1),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type lookupRunner struct {
	flags.Session

	asCSV, color bool
}

func (r *lookupRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().BoolVar(&r.asCSV, "csv", false, "render as CSV")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *lookupRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		o, a, err := s.Directory.FindAccount(args[0])
		if err != nil {
			return err
		}
		balance := a.Balance()
		s.Record(fmt.Sprintf("Bank Manager inquired about account %s. Balance: %s", a.Number(), money.Dollars(balance)))

		tbl := table.New(5)
		tbl.AddSeparatorRow()
		tbl.AddRow().
			AddText("Owner", table.Left).
			AddText("ID", table.Left).
			AddText("Account", table.Left).
			AddText("Kind", table.Left).
			AddText("Balance", table.Right)
		tbl.AddSeparatorRow()
		tbl.AddRow().
			AddText(o.Name(), table.Left).
			AddText(o.ID(), table.Left).
			AddText(a.Number(), table.Left).
			AddText(a.Kind().String(), table.Left).
			AddAmount(balance)
		tbl.AddSeparatorRow()
		return render(cmd.OutOrStdout(), tbl, r.asCSV, r.color)
	})
}
