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

// Package table lays out owners, accounts and balances for the terminal or
// as CSV.
package table

import (
	"io"

	"github.com/shopspring/decimal"
)

// Renderer writes a table.
type Renderer interface {
	Render(*Table, io.Writer) error
}

// Table is a grid of cells with a fixed number of columns.
type Table struct {
	width int
	rows  []*Row
}

// New creates a table with the given number of columns.
func New(width int) *Table {
	return &Table{width: width}
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return t.width
}

// AddRow appends an empty row.
func (t *Table) AddRow() *Row {
	r := &Row{cells: make([]cell, 0, t.width)}
	t.rows = append(t.rows, r)
	return r
}

// AddSeparatorRow appends a horizontal rule.
func (t *Table) AddSeparatorRow() {
	r := t.AddRow()
	for i := 0; i < t.width; i++ {
		r.cells = append(r.cells, separatorCell{})
	}
}

// Row is a table row. Cells are added from left to right.
type Row struct {
	cells []cell
}

// AddText adds a text cell.
func (r *Row) AddText(content string, align Alignment) *Row {
	r.cells = append(r.cells, textCell{content: content, align: align})
	return r
}

// AddAmount adds a monetary amount.
func (r *Row) AddAmount(d decimal.Decimal) *Row {
	r.cells = append(r.cells, amountCell{d})
	return r
}

// AddEmpty adds an empty cell.
func (r *Row) AddEmpty() *Row {
	r.cells = append(r.cells, emptyCell{})
	return r
}

// FillEmpty pads the row with empty cells.
func (r *Row) FillEmpty() {
	for len(r.cells) < cap(r.cells) {
		r.AddEmpty()
	}
}

// Alignment is the horizontal alignment of a text cell.
type Alignment int

const (
	// Left aligns to the left.
	Left Alignment = iota
	// Right aligns to the right.
	Right
	// Center centers.
	Center
)

type cell interface {
	isSep() bool
}

type textCell struct {
	content string
	align   Alignment
}

func (textCell) isSep() bool { return false }

type amountCell struct {
	n decimal.Decimal
}

func (amountCell) isSep() bool { return false }

type separatorCell struct{}

func (separatorCell) isSep() bool { return true }

type emptyCell struct{}

func (emptyCell) isSep() bool { return false }
