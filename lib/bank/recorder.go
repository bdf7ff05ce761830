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

package bank

import (
	"fmt"
	"log/slog"
)

// Recorder durably records completed operations.
type Recorder interface {
	Record(text string) error
}

type discard struct{}

func (discard) Record(string) error { return nil }

// Discard is a Recorder which drops all entries.
var Discard Recorder = discard{}

// record writes an entry. The operation has already completed at this
// point, so a failure is reported but not returned.
func record(r Recorder, format string, args ...any) {
	if r == nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if err := r.Record(text); err != nil {
		slog.Warn("failed to record transaction", slog.String("entry", text), slog.Any("error", err))
	}
}
