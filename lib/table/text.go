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

package table

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/sboehler/teller/lib/money"
)

// TextRenderer renders a table with box-drawing characters. Negative
// amounts are red and positive amounts green if Color is set.
type TextRenderer struct {
	Color bool
}

var _ Renderer = (*TextRenderer)(nil)

// Render implements Renderer.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	var (
		widths = r.widths(t)
		red    = color.New(color.FgRed)
		green  = color.New(color.FgGreen)
		b      strings.Builder
	)
	if r.Color {
		red.EnableColor()
		green.EnableColor()
	} else {
		red.DisableColor()
		green.DisableColor()
	}
	for _, row := range t.rows {
		if len(row.cells) == 0 {
			continue
		}
		if row.cells[0].isSep() {
			b.WriteString("+-")
		} else {
			b.WriteString("| ")
		}
		for i, c := range row.cells {
			content, pad := r.layout(c, widths[i])
			b.WriteString(strings.Repeat(" ", pad.before))
			switch {
			case !isAmount(c):
				b.WriteString(content)
			case c.(amountCell).n.IsNegative():
				b.WriteString(red.Sprint(content))
			case c.(amountCell).n.IsPositive():
				b.WriteString(green.Sprint(content))
			default:
				b.WriteString(content)
			}
			b.WriteString(strings.Repeat(" ", pad.after))
			if i < len(row.cells)-1 {
				b.WriteString(separator(c, row.cells[i+1]))
			}
		}
		if row.cells[len(row.cells)-1].isSep() {
			b.WriteString("-+\n")
		} else {
			b.WriteString(" |\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type padding struct {
	before, after int
}

func (r *TextRenderer) layout(c cell, width int) (string, padding) {
	var content string
	switch t := c.(type) {
	case separatorCell:
		return strings.Repeat("-", width), padding{}
	case emptyCell:
		return "", padding{after: width}
	case amountCell:
		content = money.Grouped(t.n)
		n := utf8.RuneCountInString(content)
		return content, padding{before: width - n}
	case textCell:
		content = t.content
		n := utf8.RuneCountInString(content)
		switch t.align {
		case Right:
			return content, padding{before: width - n}
		case Center:
			before := (width - n) / 2
			return content, padding{before: before, after: width - n - before}
		}
		return content, padding{after: width - n}
	}
	panic(fmt.Sprintf("invalid cell type %T", c))
}

func (r *TextRenderer) widths(t *Table) []int {
	widths := make([]int, t.width)
	for _, row := range t.rows {
		for i, c := range row.cells {
			var n int
			switch v := c.(type) {
			case textCell:
				n = utf8.RuneCountInString(v.content)
			case amountCell:
				n = utf8.RuneCountInString(money.Grouped(v.n))
			}
			if n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func isAmount(c cell) bool {
	_, ok := c.(amountCell)
	return ok
}

func separator(left, right cell) string {
	switch {
	case left.isSep() && right.isSep():
		return "-+-"
	case left.isSep():
		return "-+ "
	case right.isSep():
		return " +-"
	}
	return " | "
}
