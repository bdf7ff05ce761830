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

// Package store loads owners and their accounts from a CSV file and writes
// balances back to it.
package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/money"
)

var (
	// ErrMalformedRecord is returned for a row which cannot be parsed.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrIO is returned when the file cannot be read or written.
	ErrIO = errors.New("i/o failure")
)

type field int

const (
	fieldID field = iota
	fieldFirstName
	fieldLastName
	fieldDOB
	fieldAddress
	fieldPhone
	fieldCheckingNumber
	fieldCheckingBalance
	fieldSavingsNumber
	fieldSavingsBalance
	fieldCreditNumber
	fieldCreditLimit
	fieldCreditBalance
	numFields
)

// ParseCharset returns the encoding for the given name.
func ParseCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return encoding.Nop, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("unsupported charset %q", name)
}

// Repository is the CSV file holding one owner with a checking, a savings
// and a credit account per row.
type Repository struct {
	Path string

	// Charset is the encoding of the file. Nil means UTF-8.
	Charset encoding.Encoding

	// Recorder is passed to every loaded owner and account.
	Recorder bank.Recorder

	// Overdraft is the overdraft limit of loaded checking accounts.
	Overdraft decimal.Decimal

	// Overpayment is the payment policy of loaded credit accounts.
	Overpayment bank.Overpayment
}

func (r *Repository) charset() encoding.Encoding {
	if r.Charset == nil {
		return encoding.Nop
	}
	return r.Charset
}

// Load reads all owners. Rows which cannot be parsed are skipped; the
// returned error combines one ErrMalformedRecord per skipped row. If the
// file cannot be read, Load returns an empty directory and ErrIO.
func (r *Repository) Load(ctx context.Context) (*bank.Directory, error) {
	dir := bank.NewDirectory()
	rows, err := r.read(ctx)
	if err != nil {
		return dir, err
	}
	var errs error
	for _, row := range rows {
		if row.header || (row.err == nil && len(row.fields) == 0) {
			continue
		}
		if row.err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w: %v", row.line, ErrMalformedRecord, row.err))
			continue
		}
		o, err := r.parse(trim(row.fields))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", row.line, err))
			continue
		}
		dir.Add(o)
	}
	return dir, errs
}

// Save writes the current balances of the owners in dir to the file. Each
// row is matched to an owner by its ID and only the three balance fields
// are replaced. All other bytes of the file, including rows which do not
// parse, are written through unchanged.
func (r *Repository) Save(ctx context.Context, dir *bank.Directory) error {
	rows, err := r.read(ctx)
	if err != nil {
		return err
	}
	pending := make(map[string][]*bank.Owner)
	for _, o := range dir.Owners() {
		pending[o.ID()] = append(pending[o.ID()], o)
	}
	var b strings.Builder
	for _, row := range rows {
		text := row.text
		if row.isRecord() {
			if _, err := r.parse(trim(row.fields)); err == nil {
				id := strings.TrimSpace(row.fields[fieldID])
				if owners := pending[id]; len(owners) > 0 {
					text = row.update(owners[0])
					pending[id] = owners[1:]
				}
			}
		}
		b.WriteString(text)
		b.WriteString(row.eol)
	}
	src := transform.NewReader(strings.NewReader(b.String()), r.charset().NewEncoder())
	if err := atomic.WriteFile(r.Path, src); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, r.Path, err)
	}
	return nil
}

// row is a physical line of the file.
type row struct {
	line      int
	text, eol string
	header    bool

	// fields and the byte offset of each field in text
	fields []string
	pos    []int
	err    error
}

func (rw row) isRecord() bool {
	return !rw.header && rw.err == nil && len(rw.fields) > 0
}

// update returns the text of the row with the balance fields replaced by
// the balances of o.
func (rw row) update(o *bank.Owner) string {
	text := rw.text
	for _, u := range []struct {
		kind  bank.Kind
		field field
	}{
		{bank.CREDIT, fieldCreditBalance},
		{bank.SAVINGS, fieldSavingsBalance},
		{bank.CHECKING, fieldCheckingBalance},
	} {
		a, ok := o.AccountOf(u.kind)
		if !ok {
			continue
		}
		begin, end := rw.pos[u.field], len(text)
		if int(u.field)+1 < len(rw.pos) {
			end = rw.pos[u.field+1] - 1
		}
		text = text[:begin] + money.Fixed(a.Balance()) + text[end:]
	}
	return text
}

// read splits the file into lines and parses each line on its own, so a
// malformed line cannot affect its neighbors. Blank lines yield rows
// without fields.
func (r *Repository) read(ctx context.Context) ([]row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	b, err = r.charset().NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrIO, r.Path, err)
	}
	var (
		rows   []row
		header = true
	)
	for i, chunk := range strings.SplitAfter(string(b), "\n") {
		if chunk == "" {
			continue
		}
		text := strings.TrimSuffix(strings.TrimSuffix(chunk, "\n"), "\r")
		rw := row{line: i + 1, text: text, eol: chunk[len(text):]}
		if strings.TrimSpace(text) != "" {
			rw.header, header = header, false
			rw.fields, rw.pos, rw.err = split(text)
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func split(line string) ([]string, []int, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	fields, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}
	pos := make([]int, len(fields))
	for i := range fields {
		_, col := reader.FieldPos(i)
		pos[i] = col - 1
	}
	return fields, pos, nil
}

func trim(fields []string) []string {
	res := make([]string, len(fields))
	for i, f := range fields {
		res[i] = strings.TrimSpace(f)
	}
	return res
}

func (r *Repository) parse(rec []string) (*bank.Owner, error) {
	if len(rec) < int(numFields) {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, numFields, len(rec))
	}
	var (
		amounts = make(map[field]decimal.Decimal)
		o       = bank.NewOwner(rec[fieldID], rec[fieldFirstName], rec[fieldLastName], r.Recorder)
	)
	for _, f := range []field{fieldCheckingBalance, fieldSavingsBalance, fieldCreditLimit, fieldCreditBalance} {
		d, err := money.Parse(rec[f])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		amounts[f] = d
	}
	for _, ab := range []bank.AccountBuilder{
		{
			Kind:           bank.CHECKING,
			Number:         rec[fieldCheckingNumber],
			Balance:        amounts[fieldCheckingBalance],
			OverdraftLimit: r.Overdraft,
		},
		{
			Kind:    bank.SAVINGS,
			Number:  rec[fieldSavingsNumber],
			Balance: amounts[fieldSavingsBalance],
		},
		{
			Kind:        bank.CREDIT,
			Number:      rec[fieldCreditNumber],
			Balance:     amounts[fieldCreditBalance],
			CreditLimit: amounts[fieldCreditLimit],
			Overpayment: r.Overpayment,
		},
	} {
		ab.Recorder = r.Recorder
		a, err := ab.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		if err := o.Add(a); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
	}
	return o, nil
}
