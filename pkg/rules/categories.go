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

package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Category groups rules and fields for display.
type Category string

const (
	CategoryBasic        Category = "basic"
	CategoryEpisode      Category = "episode"
	CategoryVideoQuality Category = "video_quality"
	CategoryVideoCodec   Category = "video_codec"
	CategoryAudioCodec   Category = "audio_codec"
	CategorySource       Category = "source"
	CategoryRelease      Category = "release"
	CategorySubtitle     Category = "subtitle"
	CategoryVersion      Category = "version"
	CategoryFile         Category = "file"
	CategoryOther        Category = "other"
	CategoryAudio        Category = "audio"
	CategoryVideoSpec    Category = "video_spec"
	CategoryLanguage     Category = "language"
	CategoryRegion       Category = "region"
)

// CategoryInfo describes a category. Lower importance sorts first.
type CategoryInfo struct {
	ID          Category `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Importance  int      `json:"importance" yaml:"importance"`
}

var categories = []CategoryInfo{
	{CategoryBasic, "Basic info", "basic information such as title and year", 1},
	{CategoryEpisode, "Episode info", "season and episode numbers of a series", 2},
	{CategoryVideoQuality, "Video quality", "resolution, HDR and other quality details", 3},
	{CategoryVideoCodec, "Video codec", "video encoding format", 4},
	{CategoryAudioCodec, "Audio codec", "audio encoding format", 5},
	{CategorySource, "Source", "where the release came from, e.g. Blu-ray, WEB or DVD", 6},
	{CategoryRelease, "Release info", "the group or person that published the release", 7},
	{CategorySubtitle, "Subtitles", "subtitle details such as hardcoded or bilingual subtitles", 8},
	{CategoryVersion, "Version", "edition details such as a director's cut or extended version", 9},
	{CategoryFile, "File info", "file level details such as the container format", 10},
	{CategoryOther, "Other", "other markers such as special tags", 11},
	{CategoryAudio, "Audio info", "audio track extras such as commentary or lossless tracks", 12},
	{CategoryVideoSpec, "Video spec", "frame rate, bit depth and other video parameters", 13},
	{CategoryLanguage, "Language", "audio language of the release", 14},
	{CategoryRegion, "Region", "country or region of the release", 15},
}

// Categories returns every category ordered by importance.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance < out[j].Importance
	})
	return out
}

// LookupCategory returns the description of a category.
func LookupCategory(c Category) (CategoryInfo, bool) {
	for _, ci := range categories {
		if ci.ID == c {
			return ci, true
		}
	}
	return CategoryInfo{}, false
}

// ParseCategory converts a user supplied name to a Category. Matching is
// case-insensitive and accepts spaces or hyphens in place of underscores.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, ci := range categories {
		if string(ci.ID) == norm {
			return ci.ID, nil
		}
	}
	return "", fmt.Errorf("unknown rule category: %s", s)
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := LookupCategory(c)
	return ok
}
