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

// Package cmdtest runs commands in tests.
package cmdtest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// Run executes cmd with the given arguments and returns its standard
// output. The test fails if the command returns an error.
func Run(t *testing.T, cmd *cobra.Command, args ...string) []byte {
	t.Helper()
	out, stderr, err := Execute(cmd, args...)
	if err != nil {
		t.Fatalf("%s %v returned unexpected error: %v\n%s", cmd.Name(), args, err, stderr)
	}
	return out
}

// Execute executes cmd with the given arguments and returns its standard
// output, its error output and its error.
func Execute(cmd *cobra.Command, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	err := cmd.ExecuteContext(context.Background())
	return stdout.Bytes(), stderr.Bytes(), err
}

// CopyFile copies the file at src into dir and returns the new path.
func CopyFile(t *testing.T, src, dir string) string {
	t.Helper()
	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if err := os.WriteFile(dst, b, 0644); err != nil {
		t.Fatal(err)
	}
	return dst
}
