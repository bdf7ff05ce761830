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
	"encoding/csv"
	"io"

	"github.com/sboehler/teller/lib/money"
)

// CSVRenderer renders a table as CSV. Separator rows are omitted and
// amounts are written with two decimal places.
type CSVRenderer struct{}

var _ Renderer = (*CSVRenderer)(nil)

// Render implements Renderer.
func (r *CSVRenderer) Render(t *Table, w io.Writer) error {
	writer := csv.NewWriter(w)
	for _, row := range t.rows {
		if len(row.cells) == 0 || row.cells[0].isSep() {
			continue
		}
		rec := make([]string, 0, len(row.cells))
		for _, c := range row.cells {
			switch v := c.(type) {
			case textCell:
				rec = append(rec, v.content)
			case amountCell:
				rec = append(rec, money.Fixed(v.n))
			default:
				rec = append(rec, "")
			}
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
