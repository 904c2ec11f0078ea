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
	"regexp"
	"strings"

	"github.com/ZaparooProject/reelparse/pkg/rules"
)

// Tokens cut out of the name, right to left, before looking for the title
// boundary.
var (
	releaseGroupSuffixRe = regexp.MustCompile(`(?i)-([A-Za-z0-9]+)(?:\.mkv|\.mp4|\.ts)?$`)
	streamingTokenRe     = regexp.MustCompile(`(?i)\.(NF|AMZN|DSNP|HULU|HBO|HMAX|iT|iPlayer|STAN|PCOK|ATVP|CRAV)\b`)
	technicalTokenRes    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\.(Atmos|DTS-HD\.MA(?:\.\d+\.\d+)?|DDP?\d+\.\d+|AAC\d\.\d)\b`),
		regexp.MustCompile(`(?i)\.(DV|HDR10\+?|HLG|Dolby\.Vision)\b`),
		regexp.MustCompile(`(?i)\.(x?26[45]|H[._-]?26[45]|AV1|VP9|HEVC)\b`),
		regexp.MustCompile(`(?i)\.(\d{3,4}p|[48]K)\b`),
		regexp.MustCompile(`(?i)\.(BluRay|WEB-DL?|HDTV|CAM|TS|TC|DVDRip)\b`),
		regexp.MustCompile(`(?i)\.(EXTENDED|IMAX|HYBRID|REPACK|PROPER|DC|REMUX)\b`),
	}
)

// Boundaries the title ends at, tried in order.
var (
	yearBoundaryRe          = regexp.MustCompile(`(?i)(?:^|\.)(19\d{2}|20\d{2})\b`)
	seasonEpisodeBoundaryRe = regexp.MustCompile(`(?i)\.(S\d{1,2}E\d{1,2}|Season\s*\d+\s*Episode\s*\d+)\b`)
	technicalBoundaryRe     = regexp.MustCompile(`(?i)\.(1080p|2160p|720p|4K|UHD|BluRay|WEB-DL)\b`)
)

// CleanupTitle turns dots into spaces, collapses whitespace runs and
// trims the result.
func CleanupTitle(s string) string {
	return rules.CleanTitle(s)
}

// titleGuess holds what leftovers may be dropped as already accounted
// for: the release group found by the boundary heuristic and the words of
// the final title.
type titleGuess struct {
	releaseGroup string
	words        []string
}

// claims reports whether fragment is a whole title word or the release
// group. Partial words are not claimed.
func (g *titleGuess) claims(fragment string) bool {
	frag := strings.Trim(fragment, ".-_ ")
	if frag == "" {
		return false
	}
	if g.releaseGroup != "" && strings.EqualFold(frag, g.releaseGroup) {
		return true
	}
	for _, w := range g.words {
		if strings.EqualFold(w, frag) {
			return true
		}
	}
	return false
}

// cutLast removes the last occurrence of the first match of re from s.
func cutLast(s string, re *regexp.Regexp) string {
	m := re.FindString(s)
	if m == "" {
		return s
	}
	i := strings.LastIndex(s, m)
	return s[:i] + s[i+len(m):]
}

// guessTitle isolates the title by cutting technical tokens off the
// extension-stripped name and taking what precedes the first boundary.
// It may also set the year, release group and streaming platform.
func (st *parseState) guessTitle(name string) {
	if st.parts.Title != nil {
		return
	}
	work := name

	if m := releaseGroupSuffixRe.FindStringSubmatch(work); m != nil {
		work = work[:strings.LastIndex(work, m[0])]
		if st.parts.ReleaseGroup == nil {
			st.parts.ReleaseGroup = rules.Str(m[1])
			st.guess.releaseGroup = m[1]
			st.record("release_group")
		}
	}

	if m := streamingTokenRe.FindStringSubmatch(work); m != nil {
		work = cutLast(work, streamingTokenRe)
		if st.parts.StreamingPlatform == nil {
			st.parts.StreamingPlatform = rules.Str(m[1])
			st.record("streaming_platform")
		}
	}

	for _, re := range technicalTokenRes {
		work = cutLast(work, re)
	}

	if m := yearBoundaryRe.FindStringSubmatch(work); m != nil {
		if st.parts.Year == nil {
			st.parts.Year = rules.NewDetail(rules.FieldYear, m[1])
		}
		st.record("year")
		st.setGuessedTitle(work[:strings.LastIndex(work, m[0])], HeuristicYear)
		return
	}

	if m := seasonEpisodeBoundaryRe.FindString(work); m != "" {
		st.setGuessedTitle(work[:strings.LastIndex(work, m)], HeuristicSeasonEpisode)
		return
	}

	if m := technicalBoundaryRe.FindString(work); m != "" {
		st.setGuessedTitle(work[:strings.LastIndex(work, m)], HeuristicTechnical)
		return
	}

	st.setGuessedTitle(work, HeuristicFallback)
}

// setGuessedTitle stores a cleaned title and records how it was found.
// Text made only of delimiters is not a title.
func (st *parseState) setGuessedTitle(raw, heuristic string) {
	if delimiterOnlyRe.MatchString(raw) {
		return
	}
	title := CleanupTitle(raw)
	if title == "" {
		return
	}
	st.parts.Title = rules.NewDetail(rules.FieldTitle, title)
	st.record(heuristic)
}
