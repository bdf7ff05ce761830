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
	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/session"
	"github.com/sboehler/teller/lib/table"
)

// CreateSearchCmd creates the command.
func CreateSearchCmd() *cobra.Command {

	var r searchRunner

	c := &cobra.Command{
		Use:   "search <query>",
		Short: "find customers by name",
		Long:  `Find customers whose first or last name contains the query, ignoring case.`,
		Args:  cobra.ExactArgs(1),
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type searchRunner struct {
	flags.Session

	asCSV bool
}

func (r *searchRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().BoolVar(&r.asCSV, "csv", false, "render as CSV")
}

func (r *searchRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		owners := s.Directory.Search(args[0])
		if len(owners) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No customers match %q.\n", args[0])
			return nil
		}
		tbl := table.New(2 + len(bank.Kinds))
		tbl.AddSeparatorRow()
		header := tbl.AddRow().AddText("ID", table.Left).AddText("Name", table.Left)
		for _, k := range bank.Kinds {
			header.AddText(k.String(), table.Left)
		}
		tbl.AddSeparatorRow()
		for _, o := range owners {
			row := tbl.AddRow().AddText(o.ID(), table.Left).AddText(o.Name(), table.Left)
			for _, k := range bank.Kinds {
				if a, ok := o.AccountOf(k); ok {
					row.AddText(a.Number(), table.Left)
				} else {
					row.AddEmpty()
				}
			}
		}
		tbl.AddSeparatorRow()
		return render(cmd.OutOrStdout(), tbl, r.asCSV, false)
	})
}
