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

package flags

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sboehler/teller/lib/config"
	"github.com/sboehler/teller/lib/session"
)

// Session manages the flags which locate the customer file and the
// transaction log.
type Session struct {
	config, data, log string
	verbose           bool
}

// Setup configures the flags.
func (sf *Session) Setup(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sf.config, "config", config.DefaultPath, "configuration file")
	cmd.Flags().StringVar(&sf.data, "data", "", "customer file (overrides the configuration)")
	cmd.Flags().StringVar(&sf.log, "log", "", "transaction log (overrides the configuration)")
	cmd.Flags().BoolVarP(&sf.verbose, "verbose", "v", false, "print debug output")
}

// Config reads the configuration and applies the flag overrides.
func (sf *Session) Config() (*config.Config, error) {
	cfg, err := config.Load(sf.config)
	if err != nil {
		return nil, err
	}
	if sf.data != "" {
		cfg.Data = sf.data
	}
	if sf.log != "" {
		cfg.Log = sf.log
	}
	return cfg, nil
}

// Logger creates the diagnostic logger, which writes to the command's
// error output.
func (sf *Session) Logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if sf.verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("run", uuid.NewString()), slog.String("cmd", cmd.Name()))
}

// Run opens a session, calls f and closes the session. Balances and the
// transaction log are written back even if f fails.
func (sf *Session) Run(cmd *cobra.Command, f func(*session.Session) error) (err error) {
	cfg, err := sf.Config()
	if err != nil {
		return err
	}
	var (
		ctx    = cmd.Context()
		logger = sf.Logger(cmd)
	)
	if ctx == nil {
		ctx = context.Background()
	}
	slog.SetDefault(logger)
	s, err := session.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.Close(ctx))
	}()
	return f(s)
}
