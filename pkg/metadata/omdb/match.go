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

package omdb

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinSimilarity is the lowest title similarity BestMatch accepts.
const MinSimilarity = 0.75

const yearBonus = 0.1

// Scored is a candidate with its match score.
type Scored struct {
	Movie Movie
	Score float32
}

func removeDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		return normalized
	}
	return s
}

// NormalizeTitle lowercases a title, strips diacritics and punctuation and
// collapses whitespace so spellings like "Amélie" and "amelie" compare
// equal.
func NormalizeTitle(s string) string {
	s = strings.ToLower(removeDiacritics(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Rank scores every candidate against title and year, best first. The
// score is the Jaro-Winkler similarity of the normalized titles plus a
// bonus when the year matches the start of the candidate's year, which
// covers ranges like "2008–2013".
func Rank(title, year string, candidates []Movie) []Scored {
	query := NormalizeTitle(title)
	year = strings.TrimSpace(year)
	out := make([]Scored, 0, len(candidates))
	for _, m := range candidates {
		score := edlib.JaroWinklerSimilarity(query, NormalizeTitle(m.Title))
		if year != "" && strings.HasPrefix(m.Year, year) {
			score += yearBonus
		}
		out = append(out, Scored{Movie: m, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// BestMatch picks the candidate closest to title and year. It returns
// false when no candidate's title is similar enough.
func BestMatch(title, year string, candidates []Movie) (Movie, bool) {
	ranked := Rank(title, year, candidates)
	if len(ranked) == 0 {
		return Movie{}, false
	}
	best := ranked[0]
	sim := best.Score
	if year != "" && strings.HasPrefix(best.Movie.Year, strings.TrimSpace(year)) {
		sim -= yearBonus
	}
	log.Debug().
		Str("query", title).
		Str("candidate", best.Movie.Title).
		Float32("similarity", sim).
		Msg("omdb best match")
	if sim < MinSimilarity {
		return Movie{}, false
	}
	return best.Movie, true
}
