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

// Package txlog implements the append-only transaction log.
package txlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/multierr"
)

// TimeFormat is the layout of entry timestamps.
const TimeFormat = "2006-01-02 15:04:05"

// Entry is a single line of the log.
type Entry struct {
	// Time is zero for lines which were not written with a timestamp.
	Time time.Time
	Text string
}

func (e Entry) String() string {
	if e.Time.IsZero() {
		return e.Text
	}
	return fmt.Sprintf("[%s] %s", e.Time.Format(TimeFormat), e.Text)
}

// ParseEntry parses a line. Lines without a leading timestamp are returned
// verbatim as the entry text.
func ParseEntry(line string) Entry {
	if len(line) < len(TimeFormat)+3 || line[0] != '[' || line[len(TimeFormat)+1] != ']' {
		return Entry{Text: line}
	}
	t, err := time.ParseInLocation(TimeFormat, line[1:len(TimeFormat)+1], time.Local)
	if err != nil {
		return Entry{Text: line}
	}
	return Entry{Time: t, Text: strings.TrimPrefix(line[len(TimeFormat)+2:], " ")}
}

// Log is an append-only transaction log backed by a file. Entries are kept
// in memory and appended to the file as they are recorded.
type Log struct {
	// Now returns the time of new entries.
	Now func() time.Time

	path    string
	mu      sync.Mutex
	entries []Entry

	// loaded is the file content read by Load, kept byte for byte. The
	// first nLoaded entries were parsed from it.
	loaded  string
	nLoaded int

	// set if the file does not end with a newline
	partial bool
}

// New creates a log for the given path. It does not touch the file.
func New(path string) *Log {
	return &Log{
		Now:  time.Now,
		path: path,
	}
}

// Open creates a log and loads the existing entries.
func Open(path string) (*Log, error) {
	l := New(path)
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the path of the backing file.
func (l *Log) Path() string {
	return l.path
}

// Load reads the existing entries from the backing file, creating the file
// if it does not exist.
func (l *Log) Load() error {
	f, err := os.OpenFile(l.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("open transaction log: %w", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read transaction log %s: %w", l.path, err)
	}
	content := string(b)
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		entries = append(entries, ParseEntry(line))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(entries, l.entries...)
	l.loaded, l.nLoaded = content, len(entries)
	l.partial = content != "" && !strings.HasSuffix(content, "\n")
	return nil
}

// Record adds an entry and appends it to the backing file. The entry is
// kept in memory even if the append fails.
func (l *Log) Record(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := Entry{Time: l.Now().Truncate(time.Second), Text: text}
	l.entries = append(l.entries, e)
	return l.append(e)
}

func (l *Log) append(e Entry) (err error) {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("append to transaction log: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	var prefix string
	if l.partial {
		prefix = "\n"
	}
	if _, err = fmt.Fprintf(f, "%s%v\n", prefix, e); err != nil {
		return fmt.Errorf("append to transaction log %s: %w", l.path, err)
	}
	l.partial = false
	return nil
}

// Entries returns a copy of all entries in the order they were recorded.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]Entry, len(l.entries))
	copy(res, l.entries)
	return res
}

// Last returns the n most recent entries.
func (l *Log) Last(n int) []Entry {
	es := l.Entries()
	if n < 0 || n >= len(es) {
		return es
	}
	return es[len(es)-n:]
}

// ExitUpdate replaces the backing file with the full history: the content
// read by Load unchanged, followed by the entries recorded since.
func (l *Log) ExitUpdate() error {
	l.mu.Lock()
	var buf bytes.Buffer
	buf.WriteString(l.loaded)
	recorded := l.entries[l.nLoaded:]
	if len(recorded) > 0 && l.loaded != "" && !strings.HasSuffix(l.loaded, "\n") {
		buf.WriteByte('\n')
	}
	for _, e := range recorded {
		fmt.Fprintln(&buf, e)
	}
	l.mu.Unlock()
	if err := atomic.WriteFile(l.path, &buf); err != nil {
		return fmt.Errorf("rewrite transaction log %s: %w", l.path, err)
	}
	return nil
}
