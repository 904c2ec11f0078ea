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

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaparooProject/reelparse/pkg/api/client"
	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	"github.com/ZaparooProject/reelparse/pkg/extensions"
	"github.com/ZaparooProject/reelparse/pkg/format"
	"github.com/ZaparooProject/reelparse/pkg/metadata/omdb"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/ZaparooProject/reelparse/pkg/rules"
	"github.com/rs/zerolog/log"
)

// App is what the flag actions run against. Nil fields are created from
// Cfg on first use.
type App struct {
	Cfg         *config.Instance
	Out         io.Writer
	Client      client.APIClient
	OMDb        *omdb.Client
	HistoryPath string

	engine  *parser.Engine
	history *historydb.HistoryDB
}

func (a *App) Engine() (*parser.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	engine, err := parser.New(a.Cfg.CustomRules()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	a.engine = engine
	return engine, nil
}

func (a *App) History(ctx context.Context) (*historydb.HistoryDB, error) {
	if a.history != nil {
		return a.history, nil
	}
	db, err := historydb.Open(ctx, a.HistoryPath, historydb.WithMaxEntries(a.Cfg.HistoryMaxEntries()))
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	a.history = db
	return db, nil
}

func (a *App) omdbClient() *omdb.Client {
	if a.OMDb == nil {
		a.OMDb = omdb.NewClient(
			a.Cfg.OMDbAPIKey(),
			omdb.WithRequestsPerMinute(a.Cfg.OMDbRequestsPerMinute()),
		)
	}
	return a.OMDb
}

func (a *App) Close() error {
	if a.history == nil {
		return nil
	}
	err := a.history.Close()
	a.history = nil
	if err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	return nil
}

// Run performs the action the flags ask for. It returns ErrNoAction when
// no action flag or file name was given. -serve is left to the caller.
func (f *Flags) Run(ctx context.Context, app *App) error {
	switch {
	case f.isFlagPassed("api"):
		return f.runAPI(ctx, app)
	case *f.Rules:
		return f.listRules(app)
	case *f.Extensions:
		return f.listExtensions(app)
	case *f.History:
		return f.listHistory(ctx, app)
	case f.isFlagPassed("export"):
		return f.exportHistory(ctx, app)
	case len(f.Names()) > 0:
		return f.parseNames(ctx, app)
	case *f.Lookup:
		return errors.New("lookup needs a file name to parse")
	}
	return ErrNoAction
}

func (f *Flags) runAPI(ctx context.Context, app *App) error {
	method := strings.TrimSpace(*f.API)
	if method == "" {
		return errors.New("api flag requires a method")
	}
	c := app.Client
	if c == nil {
		c = client.NewLocalAPIClient(app.Cfg)
	}
	resp, err := c.Call(ctx, method, *f.Params)
	if err != nil {
		log.Error().Err(err).Str("method", method).Msg("error calling api")
		return err
	}
	_, _ = fmt.Fprintln(app.Out, resp)
	return nil
}

func (f *Flags) listRules(app *App) error {
	engine, err := app.Engine()
	if err != nil {
		return err
	}
	set := engine.Rules()

	infos := set.Infos()
	if *f.Category != "" {
		cat, err := rules.ParseCategory(*f.Category)
		if err != nil {
			return fmt.Errorf("invalid category: %w", err)
		}
		matching := set.ByCategory(cat)
		infos = make([]rules.Info, 0, len(matching))
		for i := range matching {
			infos = append(infos, matching[i].Info())
		}
	}

	return render(app.Out, *f.Format, infos, func(w io.Writer) error {
		return writeRules(w, infos)
	})
}

func (f *Flags) listExtensions(app *App) error {
	var infos []extensions.Info
	switch *f.Category {
	case "":
		infos = extensions.All()
	case "video", "subtitle":
		infos = extensions.ByCategory(*f.Category)
	default:
		return fmt.Errorf("unknown extension category: %s (valid: video, subtitle)", *f.Category)
	}
	return render(app.Out, *f.Format, infos, func(w io.Writer) error {
		return writeExtensions(w, infos)
	})
}

func (f *Flags) listHistory(ctx context.Context, app *App) error {
	db, err := app.History(ctx)
	if err != nil {
		return err
	}
	entries, err := db.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	return render(app.Out, *f.Format, entries, func(w io.Writer) error {
		return writeHistory(w, entries)
	})
}

func (f *Flags) exportHistory(ctx context.Context, app *App) error {
	path := strings.TrimSpace(*f.Export)
	if path == "" {
		return errors.New("export flag requires a path")
	}
	db, err := app.History(ctx)
	if err != nil {
		return err
	}

	if path == "-" {
		if err := db.ExportCSV(ctx, app.Out); err != nil {
			return fmt.Errorf("failed to export history: %w", err)
		}
		return nil
	}

	//nolint:gosec // path comes from the user running the command
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := db.ExportCSV(ctx, out); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to export history: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	_, _ = fmt.Fprintf(app.Out, "History exported to %s\n", path)
	return nil
}

// parseOutput is one parsed name as printed by the json and yaml formats.
type parseOutput struct {
	Result      *parser.Result    `json:"result" yaml:"result"`
	Formatted   *format.Formatted `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	Movie       *omdb.Movie       `json:"movie,omitempty" yaml:"movie,omitempty"`
	Link        string            `json:"link,omitempty" yaml:"link,omitempty"`
	LookupError string            `json:"lookupError,omitempty" yaml:"lookupError,omitempty"`
	Segments    []format.Segment  `json:"segments,omitempty" yaml:"segments,omitempty"`
}

func (f *Flags) parseNames(ctx context.Context, app *App) error {
	engine, err := app.Engine()
	if err != nil {
		return err
	}

	names := f.Names()
	outputs := make([]parseOutput, 0, len(names))
	for _, name := range names {
		res := engine.Parse(name)
		out := parseOutput{Result: res}
		if *f.Highlight {
			out.Segments = format.Highlight(name, res, engine.Rules())
		} else {
			formatted := format.Format(res, engine.Rules())
			out.Formatted = &formatted
		}
		if *f.Lookup {
			lookup(ctx, app, res, &out)
		}
		outputs = append(outputs, out)

		if app.Cfg.HistoryEnabled() {
			saveHistory(ctx, app, name, res)
		}
	}

	var data any = outputs
	if len(outputs) == 1 {
		data = outputs[0]
	}
	return render(app.Out, *f.Format, data, func(w io.Writer) error {
		return writeParses(w, outputs)
	})
}

// lookup failures are reported in the output rather than failing the
// whole run.
func lookup(ctx context.Context, app *App, res *parser.Result, out *parseOutput) {
	title := res.Title()
	if title == "" {
		out.LookupError = "no title found"
		return
	}
	movie, err := app.omdbClient().Find(ctx, title, res.Parts.String(rules.FieldYear))
	switch {
	case errors.Is(err, omdb.ErrNoAPIKey):
		out.LookupError = "omdb api key is not set, add it to the config or " + config.OMDbKeyEnv
	case errors.Is(err, omdb.ErrNotFound):
		out.LookupError = "no omdb match"
	case err != nil:
		log.Error().Err(err).Str("title", title).Msg("omdb lookup failed")
		out.LookupError = err.Error()
	default:
		out.Movie = movie
		out.Link = movie.Link()
	}
}

func saveHistory(ctx context.Context, app *App, name string, res *parser.Result) {
	db, err := app.History(ctx)
	if err == nil {
		_, err = db.Save(ctx, name, res)
	}
	if err != nil {
		log.Warn().Err(err).Str("name", name).Msg("failed to save parse to history")
	}
}
