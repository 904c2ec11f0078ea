// Reelparse
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Reelparse.
//
// Reelparse is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Reelparse is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Reelparse.  If not, see <http://www.gnu.org/licenses/>.

// Package service runs the long-lived reelparse daemon: the API server,
// parse history and live reloading of custom rules from the config file.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/api"
	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/notifications"
	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	"github.com/ZaparooProject/reelparse/pkg/helpers"
	"github.com/ZaparooProject/reelparse/pkg/helpers/syncutil"
	"github.com/ZaparooProject/reelparse/pkg/metadata/omdb"
	"github.com/ZaparooProject/reelparse/pkg/metrics"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

type Service struct {
	cfg     *config.Instance
	engine  atomic.Pointer[parser.Engine]
	history *historydb.HistoryDB
	server  *api.Server
	metrics *metrics.Metrics
	watcher *fileWatcher
	// serializes reloads from the watcher and the API
	reloadMu syncutil.Mutex
}

// New opens the history database at historyPath and builds the parse
// engine from the configured custom rules.
func New(cfg *config.Instance, historyPath string) (*Service, error) {
	s := &Service{cfg: cfg, metrics: metrics.New()}

	engine, err := parser.New(cfg.CustomRules()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	s.engine.Store(engine)
	s.metrics.SetRulesLoaded(engine.Rules().Len())

	history, err := historydb.Open(
		context.Background(),
		historyPath,
		historydb.WithMaxEntries(cfg.HistoryMaxEntries()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	s.history = history

	s.server = api.NewServer(cfg, api.Deps{
		Engine:       s.Engine,
		ReloadConfig: s.ReloadConfig,
		History:      history,
		Metrics:      s.metrics,
		OMDb: omdb.NewClient(
			cfg.OMDbAPIKey(),
			omdb.WithRequestsPerMinute(cfg.OMDbRequestsPerMinute()),
		),
	})
	return s, nil
}

// Engine returns the current parse engine. It is replaced wholesale on
// reload so callers should not hold on to it.
func (s *Service) Engine() *parser.Engine {
	return s.engine.Load()
}

func (s *Service) Server() *api.Server {
	return s.server
}

// ReloadConfig re-reads the config file and swaps in an engine built from
// its custom rules. On any error the running engine is kept.
func (s *Service) ReloadConfig() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if err := s.cfg.Load(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	engine, err := parser.New(s.cfg.CustomRules()...)
	if err != nil {
		return fmt.Errorf("failed to rebuild parser: %w", err)
	}
	s.engine.Store(engine)
	s.metrics.SetRulesLoaded(engine.Rules().Len())

	custom := len(s.cfg.CustomRules())
	log.Info().Int("custom", custom).Int("total", engine.Rules().Len()).Msg("rules reloaded")
	notifications.RulesReloaded(s.server.Notifications(), models.RulesReloadedPayload{
		Custom: custom,
		Total:  engine.Rules().Len(),
	})
	return nil
}

func (s *Service) onConfigChange() {
	if err := s.ReloadConfig(); err != nil {
		log.Error().Err(err).Msg("config changed on disk but could not be applied")
	}
}

// Start serves the API on the configured port and starts watching the
// config file.
func (s *Service) Start() error {
	if err := s.server.Start(); err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}
	return s.startWatcher()
}

// Serve is Start on an existing listener.
func (s *Service) Serve(ln net.Listener) error {
	if err := s.server.Serve(ln); err != nil {
		return fmt.Errorf("failed to start api server: %w", err)
	}
	return s.startWatcher()
}

func (s *Service) startWatcher() error {
	w, err := watchFile(s.cfg.Path(), s.onConfigChange)
	if err != nil {
		// reload over the API still works without the watcher
		log.Warn().Err(err).Msg("config file watcher not started")
		return nil
	}
	s.watcher = w
	return nil
}

// Stop shuts the API down and closes the watcher and database.
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.history.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close history database: %w", err))
	}
	return errors.Join(errs...)
}

// Start runs the service with the default history location and returns
// a function that stops it.
func Start(cfg *config.Instance) (stop func() error, err error) {
	log.Info().Str("version", config.AppVersion).Msg("starting service")

	s, err := New(cfg, helpers.HistoryDBPath())
	if err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		if stopErr := s.Stop(); stopErr != nil {
			log.Error().Err(stopErr).Msg("error cleaning up after failed start")
		}
		return nil, err
	}
	return s.Stop, nil
}
