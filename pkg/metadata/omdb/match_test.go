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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Amélie", want: "amelie"},
		{in: "  The   Matrix: Reloaded ", want: "the matrix reloaded"},
		{in: "Spider-Man", want: "spider man"},
		{in: "千与千寻", want: "千与千寻"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in), tt.in)
	}
}

func TestBestMatch(t *testing.T) {
	t.Parallel()

	candidates := []Movie{
		{Title: "The Matrix Reloaded", Year: "2003", IMDbID: "tt0234215"},
		{Title: "The Matrix", Year: "1999", IMDbID: "tt0133093"},
		{Title: "Breaking Bad", Year: "2008–2013", IMDbID: "tt0903747"},
	}

	m, ok := BestMatch("the matrix", "1999", candidates)
	assert.True(t, ok)
	assert.Equal(t, "tt0133093", m.IMDbID)

	m, ok = BestMatch("Breaking Bad", "2008", candidates)
	assert.True(t, ok)
	assert.Equal(t, "tt0903747", m.IMDbID)

	_, ok = BestMatch("Zyxwvut", "", candidates)
	assert.False(t, ok)

	_, ok = BestMatch("The Matrix", "", nil)
	assert.False(t, ok)
}

func TestRankYearBonus(t *testing.T) {
	t.Parallel()

	ranked := Rank("Dune", "2021", []Movie{
		{Title: "Dune", Year: "1984", IMDbID: "old"},
		{Title: "Dune", Year: "2021", IMDbID: "new"},
	})
	assert.Equal(t, "new", ranked[0].Movie.IMDbID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

// ============================================================================
// Property-based tests
// ============================================================================

// TestPropertyNormalizeTitleIdempotent verifies normalizing twice changes
// nothing and leaves no surrounding or doubled spaces.
func TestPropertyNormalizeTitleIdempotent(t *testing.T) {
	t.Parallel()
	chars := []rune("aAéÉ 1:.-_ü")
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringOfN(rapid.SampledFrom(chars), 0, 40, -1).Draw(t, "s")
		got := NormalizeTitle(s)
		if NormalizeTitle(got) != got {
			t.Fatalf("NormalizeTitle not idempotent on %q", s)
		}
		if strings.Contains(got, "  ") || strings.TrimSpace(got) != got {
			t.Fatalf("NormalizeTitle(%q) = %q", s, got)
		}
	})
}

// TestPropertyExactTitleAlwaysMatches verifies a candidate whose title is
// the query is always accepted.
func TestPropertyExactTitleAlwaysMatches(t *testing.T) {
	t.Parallel()
	words := []string{"Star", "Wars", "Dune", "Alien", "Heat", "Up", "Amélie"}
	rapid.Check(t, func(t *rapid.T) {
		title := strings.Join(rapid.SliceOfN(rapid.SampledFrom(words), 1, 4).Draw(t, "words"), " ")
		_, ok := BestMatch(title, "", []Movie{{Title: title}})
		if !ok {
			t.Fatalf("exact title %q rejected", title)
		}
	})
}
