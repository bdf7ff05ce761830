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

	"github.com/spf13/cobra"

	"github.com/sboehler/teller/cmd/flags"
	"github.com/sboehler/teller/lib/session"
)

// CreateHistoryCmd creates the command.
func CreateHistoryCmd() *cobra.Command {

	var r historyRunner

	c := &cobra.Command{
		Use:   "history",
		Short: "print the transaction log",
		Args:  cobra.NoArgs,
		RunE:  r.run,
	}
	r.setupFlags(c)
	return c
}

type historyRunner struct {
	flags.Session

	last int
}

func (r *historyRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().IntVarP(&r.last, "last", "n", 0, "print only the last n entries (0 for all)")
}

func (r *historyRunner) run(cmd *cobra.Command, args []string) error {
	return r.Session.Run(cmd, func(s *session.Session) error {
		n := r.last
		if n <= 0 {
			n = -1
		}
		entries := s.Log.Last(n)
		out := bufio.NewWriter(cmd.OutOrStdout())
		defer out.Flush()
		if len(entries) == 0 {
			_, err := fmt.Fprintln(out, "No transactions.")
			return err
		}
		for _, e := range entries {
			if _, err := fmt.Fprintln(out, e); err != nil {
				return err
			}
		}
		return nil
	})
}
