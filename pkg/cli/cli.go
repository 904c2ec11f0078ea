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

// Package cli holds the flags and actions of the reelparse command.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ZaparooProject/reelparse/internal/telemetry"
	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/helpers"
	"github.com/rs/zerolog/log"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrNoAction = errors.New("nothing to do")

type Flags struct {
	fs         *flag.FlagSet
	Parse      *string
	Format     *string
	Category   *string
	Export     *string
	API        *string
	Params     *string
	Highlight  *bool
	Rules      *bool
	Extensions *bool
	History    *bool
	Lookup     *bool
	Serve      *bool
	Version    *bool
	Debug      *bool
}

// SetupFlags defines the reelparse flags on fs. Pass flag.CommandLine
// from main.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs: fs,
		Parse: fs.String(
			"parse",
			"",
			"file name to parse, positional arguments are parsed too",
		),
		Format: fs.String(
			"format",
			FormatText,
			"output format: text, json or yaml",
		),
		Highlight: fs.Bool(
			"highlight",
			false,
			"show which rule matched each part of the name",
		),
		Rules: fs.Bool(
			"rules",
			false,
			"list the parse rules",
		),
		Category: fs.String(
			"category",
			"",
			"limit -rules or -extensions to one category",
		),
		Extensions: fs.Bool(
			"extensions",
			false,
			"list the known file extensions",
		),
		History: fs.Bool(
			"history",
			false,
			"list recently parsed names",
		),
		Export: fs.String(
			"export",
			"",
			"write parse history as csv to a file, - for stdout",
		),
		Lookup: fs.Bool(
			"lookup",
			false,
			"look parsed titles up on omdb",
		),
		API: fs.String(
			"api",
			"",
			"send method to the running service and print the response",
		),
		Params: fs.String(
			"params",
			"",
			"json params for -api",
		),
		Serve: fs.Bool(
			"serve",
			false,
			"run the api service in the foreground",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging for this run",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and handles the flags that need no config or logging.
// done reports that the program should exit.
func (f *Flags) Pre(args []string, out io.Writer) (done bool, err error) {
	if err := f.fs.Parse(args); err != nil {
		return true, fmt.Errorf("failed to parse flags: %w", err)
	}

	switch *f.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return true, fmt.Errorf("unknown output format: %s (valid: text, json, yaml)", *f.Format)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "reelparse v%s (%s/%s)\n", config.AppVersion, runtime.GOOS, runtime.GOARCH)
		return true, nil
	}
	return false, nil
}

// Names returns every file name given, -parse first.
func (f *Flags) Names() []string {
	var names []string
	if strings.TrimSpace(*f.Parse) != "" {
		names = append(names, *f.Parse)
	}
	for _, arg := range f.fs.Args() {
		if strings.TrimSpace(arg) != "" {
			names = append(names, arg)
		}
	}
	return names
}

// Setup creates the app directories, starts logging, loads the user
// config and turns on error reporting if opted in.
//
//nolint:gocritic // config struct copied for immutability
func Setup(defaults config.Values, writers []io.Writer) (*config.Instance, error) {
	if err := helpers.InitLogging(helpers.LogDir(), writers); err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), defaults)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	cfg.SetDebugLogging(cfg.DebugLogging())

	if err := telemetry.Init(telemetry.Options{
		ReportingOptIn: cfg.ErrorReporting(),
		DeviceID:       cfg.DeviceID(),
		AppVersion:     config.AppVersion,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg, nil
}
