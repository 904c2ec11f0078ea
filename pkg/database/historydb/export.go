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

package historydb

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/rules"
	"github.com/gocarina/gocsv"
)

// CSVRow is one exported history entry.
type CSVRow struct {
	ID                string `csv:"id"`
	FileName          string `csv:"file_name"`
	Timestamp         string `csv:"timestamp"`
	Title             string `csv:"title"`
	Year              string `csv:"year"`
	Season            string `csv:"season"`
	Episode           string `csv:"episode"`
	Resolution        string `csv:"resolution"`
	Source            string `csv:"source"`
	StreamingPlatform string `csv:"streaming_platform"`
	VideoCodec        string `csv:"video_codec"`
	AudioCodec        string `csv:"audio_codec"`
	HDR               string `csv:"hdr"`
	ReleaseGroup      string `csv:"release_group"`
	FileExtension     string `csv:"file_extension"`
	Tags              string `csv:"tags"`
	MatchedRules      string `csv:"matched_rules"`
	Unrecognized      string `csv:"unrecognized"`
}

// NewCSVRow flattens an entry into a CSV row. List values are joined with
// semicolons.
func NewCSVRow(e *Entry) CSVRow {
	row := CSVRow{
		ID:        e.ID,
		FileName:  e.FileName,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
	}
	if e.Result == nil {
		return row
	}
	p := &e.Result.Parts
	row.Title = p.String(rules.FieldTitle)
	row.Year = p.String(rules.FieldYear)
	row.Season = p.String(rules.FieldSeason)
	row.Episode = p.String(rules.FieldEpisode)
	row.Resolution = p.String(rules.FieldResolution)
	row.Source = p.String(rules.FieldSource)
	row.StreamingPlatform = p.String(rules.FieldStreamingPlatform)
	row.VideoCodec = p.String(rules.FieldVideoCodec)
	row.AudioCodec = p.String(rules.FieldAudioCodec)
	row.HDR = p.String(rules.FieldHDR)
	row.ReleaseGroup = p.String(rules.FieldReleaseGroup)
	row.FileExtension = p.String(rules.FieldFileExtension)
	row.Tags = strings.Join(p.Tags, ";")
	row.MatchedRules = strings.Join(e.Result.MatchedRules, ";")
	row.Unrecognized = e.Result.Unrecognized
	return row
}

// ExportCSV writes every entry, newest first, to w as CSV with a header
// row.
func (db *HistoryDB) ExportCSV(ctx context.Context, w io.Writer) error {
	entries, err := db.List(ctx)
	if err != nil {
		return err
	}
	rows := make([]CSVRow, 0, len(entries))
	for i := range entries {
		rows = append(rows, NewCSVRow(&entries[i]))
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write history csv: %w", err)
	}
	return nil
}
