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

// Package session ties the repository and the transaction log together for
// the duration of a run.
package session

import (
	"context"
	"errors"
	"log/slog"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/config"
	"github.com/sboehler/teller/lib/store"
	"github.com/sboehler/teller/lib/txlog"
)

// Session holds the owners and the transaction log of a run.
type Session struct {
	Directory *bank.Directory
	Log       *txlog.Log

	repo   *store.Repository
	logger *slog.Logger

	// set if the respective file was read successfully
	dataLoaded, logLoaded bool
}

// Open loads the repository and the transaction log concurrently. Load
// problems are reported to logger and do not fail the session: skipped
// records are left out and an unreadable file yields no data. Only an
// invalid configuration is returned as an error.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := txlog.New(cfg.Log)
	repo, err := cfg.Repository(l)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Log:    l,
		repo:   repo,
		logger: logger,
	}
	var g errgroup.Group
	g.Go(func() error {
		if err := l.Load(); err != nil {
			logger.Error("cannot load transaction log", slog.String("path", cfg.Log), slog.Any("error", err))
			return nil
		}
		s.logLoaded = true
		logger.Debug("loaded transaction log", slog.String("path", cfg.Log), slog.Int("entries", len(l.Entries())))
		return nil
	})
	g.Go(func() error {
		dir, err := repo.Load(ctx)
		s.Directory = dir
		s.dataLoaded = !errors.Is(err, store.ErrIO)
		for _, e := range multierr.Errors(err) {
			if errors.Is(e, store.ErrIO) {
				logger.Error("cannot load customers", slog.String("path", cfg.Data), slog.Any("error", e))
				continue
			}
			logger.Warn("skipped record", slog.String("path", cfg.Data), slog.Any("error", e))
		}
		logger.Debug("loaded customers", slog.String("path", cfg.Data), slog.Int("owners", dir.Len()))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, ctx.Err()
}

// Close writes the balances back to the repository and rewrites the
// transaction log. Files which could not be loaded are left untouched.
func (s *Session) Close(ctx context.Context) error {
	var err error
	if s.dataLoaded {
		err = multierr.Append(err, s.repo.Save(ctx, s.Directory))
	}
	if s.logLoaded {
		err = multierr.Append(err, s.Log.ExitUpdate())
	}
	return err
}

// Record writes an entry to the transaction log. A failure is reported to
// the logger.
func (s *Session) Record(text string) {
	if err := s.Log.Record(text); err != nil {
		s.logger.Warn("failed to record transaction", slog.String("entry", text), slog.Any("error", err))
	}
}
