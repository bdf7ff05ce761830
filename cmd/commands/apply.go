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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sboehler/teller/cmd/flags"
	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/common/compare"
	"github.com/sboehler/teller/lib/common/set"
	"github.com/sboehler/teller/lib/money"
	"github.com/sboehler/teller/lib/session"
	"github.com/sboehler/teller/lib/table"
)

// CreateApplyCmd creates the command.
func CreateApplyCmd() *cobra.Command {

	var r applyRunner

	c := &cobra.Command{
		Use:   "apply <batch.csv>",
		Short: "apply a batch of operations",
		Long: `Apply the operations in a CSV file with the columns op, owner, account, amount, payee and payee_account.
Supported operations are deposit, withdraw, transfer (from account to payee_account of the same owner),
pay, borrow and repay. Failing lines are reported at the end and do not stop the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run,
	}
	r.setupFlags(c)
	return c
}

type applyRunner struct {
	flags.Session

	progress, color bool
}

func (r *applyRunner) setupFlags(c *cobra.Command) {
	r.Session.Setup(c)
	c.Flags().BoolVar(&r.progress, "progress", true, "show a progress bar")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

type batchField int

const (
	batchOp batchField = iota
	batchOwner
	batchAccount
	batchAmount
	batchPayee
	batchPayeeAccount
)

var batchHeaders = []string{"op", "owner", "account", "amount", "payee", "payee_account"}

type operation struct {
	line                int
	op                  string
	owner, account      string
	amount              decimal.Decimal
	payee, payeeAccount string

	// err is set if the line could not be parsed
	err error
}

func (r *applyRunner) run(cmd *cobra.Command, args []string) error {
	ops, err := readBatch(args[0])
	if err != nil {
		return err
	}
	return r.Session.Run(cmd, func(s *session.Session) error {
		var (
			bar     = pb.New(len(ops)).SetWriter(cmd.ErrOrStderr()).Set(pb.Static, true)
			touched = set.New[*bank.Owner]()
			applied int
			errs    error
		)
		if r.progress {
			bar.Start()
		}
		for _, op := range ops {
			owners, err := op.apply(s)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("line %d: %w", op.line, err))
			} else {
				applied++
				for _, o := range owners {
					touched.Add(o)
				}
			}
			bar.Increment()
			if r.progress {
				bar.Write()
			}
		}
		if r.progress {
			bar.Finish()
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Applied %d of %d operations.\n", applied, len(ops))
		for _, err := range multierr.Errors(errs) {
			fmt.Fprintf(w, "  %v\n", err)
		}
		if touched.Len() > 0 {
			tbl := table.New(3)
			tbl.AddSeparatorRow()
			tbl.AddRow().AddText("Owner", table.Left).AddText("Account", table.Left).AddText("Balance", table.Right)
			tbl.AddSeparatorRow()
			for _, o := range touched.Sorted(compare.By((*bank.Owner).Name, compare.Fold)) {
				for _, a := range o.Accounts() {
					tbl.AddRow().AddText(o.Name(), table.Left).AddText(a.Number(), table.Left).AddAmount(a.Balance())
				}
			}
			tbl.AddSeparatorRow()
			if err := render(w, tbl, false, r.color); err != nil {
				return multierr.Append(errs, err)
			}
		}
		if errs != nil {
			return fmt.Errorf("%d of %d operations failed", len(multierr.Errors(errs)), len(ops))
		}
		return nil
	})
}

func (op operation) apply(s *session.Session) ([]*bank.Owner, error) {
	if op.err != nil {
		return nil, op.err
	}
	o, a, err := findAccount(s, op.owner, op.account)
	if err != nil {
		return nil, err
	}
	switch op.op {
	case "deposit":
		return []*bank.Owner{o}, deposit(s, o, a, op.amount)
	case "withdraw":
		return []*bank.Owner{o}, withdraw(s, o, a, op.amount)
	case "transfer":
		to, err := o.Account(op.payeeAccount)
		if err != nil {
			return nil, err
		}
		return []*bank.Owner{o}, o.Transfer(a, to, op.amount)
	case "pay":
		payee, err := s.Directory.Owner(op.payee)
		if err != nil {
			return nil, err
		}
		to, err := payee.Account(op.payeeAccount)
		if err != nil {
			return nil, err
		}
		return []*bank.Owner{o, payee}, o.Pay(payee, a, to, op.amount)
	case "borrow":
		return []*bank.Owner{o}, a.Borrow(op.amount)
	case "repay":
		return []*bank.Owner{o}, a.Pay(op.amount)
	}
	return nil, fmt.Errorf("unknown operation %q", op.op)
}

func readBatch(path string) ([]operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = len(batchHeaders)
	if err := checkHeader(reader); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var ops []operation
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return ops, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			ops = append(ops, operation{line: perr.StartLine, err: perr.Err})
			continue
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		op := operation{
			line:         line,
			op:           strings.ToLower(strings.TrimSpace(rec[batchOp])),
			owner:        strings.TrimSpace(rec[batchOwner]),
			account:      strings.TrimSpace(rec[batchAccount]),
			payee:        strings.TrimSpace(rec[batchPayee]),
			payeeAccount: strings.TrimSpace(rec[batchPayeeAccount]),
		}
		op.amount, op.err = money.Parse(rec[batchAmount])
		ops = append(ops, op)
	}
}

func checkHeader(reader *csv.Reader) error {
	rec, err := reader.Read()
	if err != nil {
		return fmt.Errorf("cannot read header: %w", err)
	}
	for i, h := range batchHeaders {
		if got := strings.TrimSpace(rec[i]); got != h {
			return fmt.Errorf("invalid header: column %d is %q, want %q", i+1, got, h)
		}
	}
	return nil
}
