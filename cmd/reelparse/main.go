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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/reelparse/internal/telemetry"
	"github.com/ZaparooProject/reelparse/pkg/cli"
	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/helpers"
	"github.com/ZaparooProject/reelparse/pkg/service"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "Usage: reelparse [flags] [file name...]\n\n")
		flag.PrintDefaults()
	}

	done, err := flags.Pre(os.Args[1:], os.Stdout)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	var logWriters []io.Writer
	if *flags.Serve {
		logWriters = []io.Writer{os.Stderr}
	}

	cfg, err := cli.Setup(config.BaseDefaults, logWriters)
	if err != nil {
		return err
	}
	defer telemetry.Close()

	if *flags.Debug {
		// this run only, not saved
		cfg.SetDebugLogging(true)
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	if *flags.Serve {
		return serve(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Cfg:         cfg,
		Out:         os.Stdout,
		HistoryPath: helpers.HistoryDBPath(),
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("error closing app")
		}
	}()

	err = flags.Run(ctx, app)
	if errors.Is(err, cli.ErrNoAction) {
		flag.Usage()
		return nil
	}
	return err
}

func serve(cfg *config.Instance) error {
	stopSvc, err := service.Start(cfg)
	if err != nil {
		log.Error().Err(err).Msg("error starting service")
		return fmt.Errorf("error starting service: %w", err)
	}
	log.Info().Str("listen", cfg.APIListen()).Msg("started in service mode")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	signal.Stop(sigs)

	log.Info().Msg("stopping service")
	if err := stopSvc(); err != nil {
		log.Error().Err(err).Msg("error stopping service")
		return fmt.Errorf("error stopping service: %w", err)
	}
	return nil
}
