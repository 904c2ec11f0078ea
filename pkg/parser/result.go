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

package parser

import (
	"slices"

	"github.com/ZaparooProject/reelparse/pkg/rules"
)

// Ids recorded when the title comes from the boundary heuristic rather
// than from a rule.
const (
	HeuristicYear          = "title_year_heuristic"
	HeuristicSeasonEpisode = "title_season_episode_heuristic"
	HeuristicTechnical     = "title_technical_heuristic"
	HeuristicFallback      = "title_fallback_heuristic"
)

// HeuristicIDs lists every synthetic title heuristic id.
var HeuristicIDs = []string{
	HeuristicYear,
	HeuristicSeasonEpisode,
	HeuristicTechnical,
	HeuristicFallback,
}

// IsHeuristic reports whether id names a title heuristic rather than a
// rule.
func IsHeuristic(id string) bool {
	return slices.Contains(HeuristicIDs, id)
}

// Values reported when a name has no recognized container extension.
const (
	ExtensionUnspecified = "unspecified"
	ExtensionMissingNote = "no extension detected"
)

// Result is the outcome of parsing one file name.
type Result struct {
	OriginalFileName string       `json:"originalFileName" yaml:"originalFileName"`
	Unrecognized     string       `json:"unrecognized,omitempty" yaml:"unrecognized,omitempty"`
	MatchedRules     []string     `json:"matchedRules" yaml:"matchedRules"`
	Parts            rules.Fields `json:"parts" yaml:"parts"`
}

// HasExtension reports whether a container extension was detected.
func (r *Result) HasExtension() bool {
	return r.Parts.FileExtension != nil && r.Parts.FileExtension.Value != ExtensionUnspecified
}

// Title returns the detected title or "".
func (r *Result) Title() string {
	return r.Parts.String(rules.FieldTitle)
}
