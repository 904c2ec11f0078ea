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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	"github.com/ZaparooProject/reelparse/pkg/extensions"
	"github.com/ZaparooProject/reelparse/pkg/rules"
	"gopkg.in/yaml.v3"
)

func render(w io.Writer, outputFormat string, v any, text func(io.Writer) error) error {
	switch outputFormat {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return nil
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if err := text(tw); err != nil {
			return err
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
}

func writeRules(w io.Writer, infos []rules.Info) error {
	_, _ = fmt.Fprintln(w, "ID\tCATEGORY\tNAME")
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, info.Category, info.Name)
	}
	return nil
}

func writeExtensions(w io.Writer, infos []extensions.Info) error {
	_, _ = fmt.Fprintln(w, "EXTENSION\tCATEGORY\tNAME")
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, ".%s\t%s\t%s\n", info.Extension, info.Category, info.Name)
	}
	return nil
}

func writeHistory(w io.Writer, entries []historydb.Entry) error {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No history")
		return nil
	}
	_, _ = fmt.Fprintln(w, "TIME\tTITLE\tFILE NAME")
	for i := range entries {
		e := &entries[i]
		title := ""
		if e.Result != nil {
			title = e.Result.Title()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), title, e.FileName)
	}
	return nil
}

func writeParses(w io.Writer, outputs []parseOutput) error {
	for i := range outputs {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		writeParse(w, &outputs[i])
	}
	return nil
}

func writeParse(w io.Writer, out *parseOutput) {
	_, _ = fmt.Fprintln(w, out.Result.OriginalFileName)

	if out.Segments != nil {
		for _, seg := range out.Segments {
			rule := seg.RuleID
			if rule == "" {
				rule = "-"
			}
			_, _ = fmt.Fprintf(w, "  %q\t%s\n", seg.Text, rule)
		}
	}

	if out.Formatted != nil {
		for _, field := range out.Formatted.Fields {
			value := field.Value
			switch {
			case len(field.List) > 0:
				value = strings.Join(field.List, ", ")
			case len(field.Pairs) > 0:
				pairs := make([]string, 0, len(field.Pairs))
				for _, kv := range field.Pairs {
					pairs = append(pairs, kv.Key+"="+kv.Value)
				}
				value = strings.Join(pairs, ", ")
			}
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", field.Label, value)
		}
		if out.Formatted.Unrecognized != "" {
			_, _ = fmt.Fprintf(w, "  Unrecognized\t%s\n", out.Formatted.Unrecognized)
		}
		_, _ = fmt.Fprintf(w, "  Rules\t%s\n", strings.Join(out.Result.MatchedRules, ", "))
	}

	switch {
	case out.Movie != nil:
		_, _ = fmt.Fprintf(w, "  OMDb\t%s (%s)\n", out.Movie.Title, out.Movie.Year)
		_, _ = fmt.Fprintf(w, "  IMDb\t%s\n", out.Link)
	case out.LookupError != "":
		_, _ = fmt.Fprintf(w, "  OMDb\t%s\n", out.LookupError)
	}
}
