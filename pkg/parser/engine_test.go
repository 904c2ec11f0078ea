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
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/ZaparooProject/reelparse/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseReleaseNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		want     map[string]string
		name     string
		input    string
		leftover string
		rules    []string
		tags     []string
	}{
		{
			name:  "movie with scene group",
			input: "The.Matrix.1999.1080p.BluRay.x264-SPARKS.mkv",
			want: map[string]string{
				rules.FieldTitle:         "The Matrix",
				rules.FieldYear:          "1999",
				rules.FieldResolution:    "1080p",
				rules.FieldSource:        "BluRay",
				rules.FieldVideoCodec:    "x264",
				rules.FieldReleaseGroup:  "SPARKS",
				rules.FieldFileExtension: "mkv",
			},
			rules: []string{
				"file_extension", "release_group", "year", HeuristicYear,
				"video_codec", "resolution", "source",
			},
		},
		{
			name:  "tv episode",
			input: "Breaking.Bad.S05E14.720p.HDTV.x264-KILLERS.mp4",
			want: map[string]string{
				rules.FieldTitle:         "Breaking Bad",
				rules.FieldSeason:        "05",
				rules.FieldEpisode:       "14",
				rules.FieldResolution:    "720p",
				rules.FieldSource:        "HDTV",
				rules.FieldVideoCodec:    "x264",
				rules.FieldReleaseGroup:  "KILLERS",
				rules.FieldFileExtension: "mp4",
			},
			rules: []string{
				"file_extension", "release_group", HeuristicSeasonEpisode,
				"video_codec", "resolution", "source", "season_episode",
			},
		},
		{
			name:  "no extension",
			input: "Movie.Name.2020.1080p",
			want: map[string]string{
				rules.FieldTitle:         "Movie Name",
				rules.FieldYear:          "2020",
				rules.FieldResolution:    "1080p",
				rules.FieldFileExtension: ExtensionUnspecified,
			},
			rules: []string{"file_extension", "year", HeuristicYear, "resolution"},
		},
		{
			name:  "no structure",
			input: "RandomGibberishNoStructure",
			want: map[string]string{
				rules.FieldTitle:         "RandomGibberishNoStructure",
				rules.FieldFileExtension: ExtensionUnspecified,
			},
			rules: []string{"file_extension", HeuristicFallback},
		},
		{
			name:  "streaming web release",
			input: "Final.Destination.Bloodlines.2025.Hybrid.2160p.iT.WEB-DL.DDP.5.1.Atmos.DV.HDR10+.H.265-HONE.mkv",
			want: map[string]string{
				rules.FieldTitle:             "Final Destination Bloodlines",
				rules.FieldYear:              "2025",
				rules.FieldResolution:        "2160p",
				rules.FieldSource:            "WEB-DL",
				rules.FieldStreamingPlatform: "iT",
				rules.FieldAudioCodec:        "DDP.5.1.Atmos",
				rules.FieldHDR:               "DV HDR10+",
				rules.FieldVideoCodec:        "H.265",
				rules.FieldReleaseGroup:      "HONE",
				rules.FieldFileExtension:     "mkv",
			},
			tags: []string{"Hybrid"},
			rules: []string{
				"file_extension", "release_group", "streaming_platform", "year", HeuristicYear,
				"hybrid", "audio_codec", "hdr", "video_codec", "resolution", "source",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Parse(tt.input)

			assert.Equal(t, tt.input, res.OriginalFileName)
			for key, want := range tt.want {
				assert.Equal(t, want, res.Parts.String(key), key)
			}
			wantKeys := make([]string, 0, len(tt.want)+1)
			for key := range tt.want {
				wantKeys = append(wantKeys, key)
			}
			if len(tt.tags) > 0 {
				wantKeys = append(wantKeys, rules.FieldTags)
			}
			assert.ElementsMatch(t, wantKeys, res.Parts.Keys())
			assert.Equal(t, tt.tags, res.Parts.Tags)
			assert.Equal(t, tt.rules, res.MatchedRules)
			assert.Equal(t, tt.leftover, res.Unrecognized)
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "...", "-", "-_-", "_ . -"} {
		res := Parse(input)
		assert.Equal(t, []string{rules.FieldFileExtension}, res.Parts.Keys(), "input %q", input)
		assert.NotContains(t, res.MatchedRules, HeuristicFallback, "input %q", input)
		assert.Equal(t, ExtensionUnspecified, res.Parts.FileExtension.Value)
		assert.Equal(t, ExtensionMissingNote, res.Parts.FileExtension.Explanation)
		assert.Empty(t, res.Unrecognized)
	}
}

func TestParseOnlyExtension(t *testing.T) {
	t.Parallel()

	res := Parse(".mkv")
	assert.Equal(t, "mkv", res.Parts.FileExtension.Value)
	assert.Nil(t, res.Parts.Title)
}

func TestParseUnrecognizedBecomesTitle(t *testing.T) {
	t.Parallel()

	// The year is the first token, so the boundary heuristic finds no
	// title and the leftovers are promoted.
	res := Parse("1999.Some.Film.mkv")
	require.NotNil(t, res.Parts.Title)
	assert.Empty(t, res.Unrecognized)
	assert.Contains(t, res.MatchedRules, HeuristicFallback)
}

func TestParseTitleRuleCleansTitle(t *testing.T) {
	t.Parallel()

	// The year heuristic takes 2049 as the boundary, then the title rule
	// rewrites the title in the exhaustive pass.
	res := Parse("The..Matrix.2049.2017.x")
	assert.Contains(t, res.MatchedRules, "title")
	assert.Equal(t, "The Matrix", res.Title())
}

func TestParseKeepsPartialWordLeftovers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "Matrix.1999.atr.1080p", want: "atr"},
		{input: "The.Matrix.1999.he.1080p", want: "he"},
		{input: "The.Matrix.1999.matrix.1080p", want: ""},
	}
	for _, tt := range tests {
		res := Parse(tt.input)
		assert.Equal(t, tt.want, res.Unrecognized, tt.input)
	}
}

func TestParseNonASCIITitleWordClaimed(t *testing.T) {
	t.Parallel()

	res := Parse("Amélie.2001.1080p.mkv")
	assert.Equal(t, "Amélie", res.Title())
	assert.Empty(t, res.Unrecognized)
}

func TestParseCustomRuleOverridesBuiltin(t *testing.T) {
	t.Parallel()

	r, err := rules.FromDefinition(rules.Definition{
		ID:      "year",
		Pattern: `\((\d{4})\)`,
		Field:   rules.FieldYear,
	})
	require.NoError(t, err)

	e, err := New(r)
	require.NoError(t, err)

	res := e.Parse("Movie (1999) 1080p.mkv")
	assert.Equal(t, "1999", res.Parts.String(rules.FieldYear))
	assert.Contains(t, res.MatchedRules, "year")

	got, ok := e.Rules().Get("year")
	require.True(t, ok)
	assert.Equal(t, `\((\d{4})\)`, got.Pattern.String())
}

func TestParseLastWriteWins(t *testing.T) {
	t.Parallel()

	first, err := rules.FromDefinition(rules.Definition{
		ID: "first_source", Pattern: `zqalpha`, Field: rules.FieldSource, Value: "Alpha",
	})
	require.NoError(t, err)
	second, err := rules.FromDefinition(rules.Definition{
		ID: "second_source", Pattern: `zqbeta`, Field: rules.FieldSource, Value: "Beta",
	})
	require.NoError(t, err)

	e, err := New(first, second)
	require.NoError(t, err)

	res := e.Parse("Film zqalpha zqbeta")
	assert.Equal(t, "Beta", res.Parts.String(rules.FieldSource))
	assert.Contains(t, res.MatchedRules, "first_source")
	assert.Contains(t, res.MatchedRules, "second_source")
}

func TestParseRejectsInvalidCustomRule(t *testing.T) {
	t.Parallel()

	_, err := New(rules.Rule{ID: "broken"})
	require.ErrorIs(t, err, rules.ErrInvalidRule)
}

func TestPriorityOrderIsCopy(t *testing.T) {
	t.Parallel()

	order := PriorityOrder()
	require.Equal(t, "release_group", order[0])
	order[0] = "changed"
	assert.Equal(t, "release_group", PriorityOrder()[0])
}

func TestCleanupTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "The.Matrix", want: "The Matrix"},
		{in: "  Spaced..Out  ", want: "Spaced Out"},
		{in: "tab\tand\nnewline", want: "tab and newline"},
		{in: "...", want: ""},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanupTitle(tt.in), tt.in)
	}
}

// producers maps each field to the built-in rules able to populate it.
var producers = map[string][]string{
	rules.FieldYear:               {"year"},
	rules.FieldSeason:             {"season", "season_episode"},
	rules.FieldEpisode:            {"episode", "season_episode"},
	rules.FieldResolution:         {"resolution"},
	rules.FieldVideoCodec:         {"video_codec", "h265_codec", "h264_codec", "advanced_video_codec"},
	rules.FieldAudioCodec:         {"audio_codec", "advanced_audio_codec"},
	rules.FieldReleaseGroup:       {"release_group"},
	rules.FieldSubtitle:           {"subtitle"},
	rules.FieldVersion:            {"version"},
	rules.FieldSource:             {"source", "webdl_source"},
	rules.FieldStreamingPlatform:  {"streaming_platform", "specific_streaming_platform", "hamivideo_platform"},
	rules.FieldHDR:                {"hdr"},
	rules.FieldAudioChannels:      {"audio_channels"},
	rules.FieldAudioCodecChannels: {"specific_audio_codec_channels"},
	rules.FieldFileExtension:      {"file_extension"},
	rules.FieldLanguage:           {"language"},
	rules.FieldRegion:             {"region", "specific_streaming_platform"},
	rules.FieldFrameRate:          {"frame_rate"},
	rules.FieldColorDepth:         {"color_depth"},
	rules.FieldTags:               {"hybrid", "dvd_source", "tv_source", "special_tags"},
	rules.FieldSceneInfo:          {"scene_tags"},
	rules.FieldP2PInfo: {
		"p2p_tags", "complex_combination", "color_space", "dimension_type", "screen_format",
		"hardcoded_sub", "watermark", "edit_version", "audio_description", "flac_audio",
		"commentary", "extras", "encoder",
	},
}

// checkResult verifies the invariants every parse result holds.
func checkResult(t interface{ Fatalf(string, ...any) }, input string, res *Result) {
	if res.OriginalFileName != input {
		t.Fatalf("original name %q, want %q", res.OriginalFileName, input)
	}
	if res.Parts.FileExtension == nil {
		t.Fatalf("%q: file extension missing", input)
	}
	seen := map[string]bool{}
	for _, id := range res.MatchedRules {
		if seen[id] {
			t.Fatalf("%q: rule %s recorded twice", input, id)
		}
		seen[id] = true
	}
	for _, key := range res.Parts.Keys() {
		if key == rules.FieldTitle {
			if !slices.ContainsFunc(res.MatchedRules, func(id string) bool {
				return IsHeuristic(id) || id == "title" || id == "complex_title"
			}) {
				t.Fatalf("%q: title without a title rule in %v", input, res.MatchedRules)
			}
			continue
		}
		if !slices.ContainsFunc(producers[key], func(id string) bool { return seen[id] }) {
			t.Fatalf("%q: field %s not covered by %v", input, key, res.MatchedRules)
		}
	}
	if res.Parts.Title != nil {
		title := res.Parts.Title.Value
		if title == "" || strings.Contains(title, ".") || strings.Contains(title, "  ") ||
			strings.TrimSpace(title) != title {
			t.Fatalf("%q: title %q not normalized", input, title)
		}
	}
	tags := map[string]bool{}
	for _, tag := range res.Parts.Tags {
		if tags[tag] {
			t.Fatalf("%q: duplicate tag %s", input, tag)
		}
		tags[tag] = true
	}
	if res.Parts.Title == nil && res.Unrecognized != "" {
		t.Fatalf("%q: leftovers %q not promoted to title", input, res.Unrecognized)
	}
}

func TestParseCatalogExamples(t *testing.T) {
	t.Parallel()

	for _, r := range rules.Builtin() {
		for _, ex := range r.Examples {
			checkResult(t, ex, Parse(ex))
		}
	}
}

// ============================================================================
// Property-based tests
// ============================================================================

var nameTokens = []string{
	"The", "Movie", "Name", "1999", "2020", "1080p", "720p", "2160p", "BluRay",
	"WEB-DL", "HDTV", "x264", "x265", "H.265", "HEVC", "DDP5.1", "DTS", "AAC",
	"Atmos", "DV", "HDR10+", "HDR", "S01E02", "S03", "E07", "REPACK", "PROPER",
	"Hybrid", "REMUX", "NF", "AMZN", "iT", "CHS", "ENG", "US", "v2", "-GROUP",
	"[RARBG]", "千与千寻", "Amélie", "Complete", "10bit", "60fps", "5.1",
}

var nameSeparators = []string{".", " ", "_", "..", "  ", ". "}

// baseNameGen draws release names without an extension.
func baseNameGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(nameTokens), 0, 10).Draw(t, "tokens")
		sep := rapid.SampledFrom(nameSeparators).Draw(t, "sep")
		return strings.Join(parts, sep)
	})
}

func nameGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		base := baseNameGen().Draw(t, "base")
		ext := rapid.SampledFrom([]string{"", ".mkv", ".mp4", ".avi", ".srt"}).Draw(t, "ext")
		return base + ext
	})
}

// TestPropertyParseInvariants verifies coverage, uniqueness and promotion
// on generated release names.
func TestPropertyParseInvariants(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := nameGen().Draw(t, "name")
		checkResult(t, name, Parse(name))
	})
}

// TestPropertyParseDeterministic verifies repeated parses agree.
func TestPropertyParseDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := nameGen().Draw(t, "name")
		a, b := Parse(name), Parse(name)
		if !assert.ObjectsAreEqual(a, b) {
			t.Fatalf("parse of %q not deterministic", name)
		}
	})
}

// TestPropertyExtensionIdempotent verifies that which recognized
// extension a name carries changes nothing but the extension field.
func TestPropertyExtensionIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		base := baseNameGen().Draw(t, "base")
		ext := rapid.SampledFrom([]string{"mp4", "avi", "m2ts", "MKV"}).Draw(t, "ext")

		want := Parse(base + ".mkv")
		got := Parse(base + "." + ext)
		if got.Parts.FileExtension.Value != strings.ToLower(ext) {
			t.Fatalf("%q: extension %q, want %q", base, got.Parts.FileExtension.Value, ext)
		}

		wantParts, gotParts := want.Parts, got.Parts
		wantParts.FileExtension, gotParts.FileExtension = nil, nil
		if !assert.ObjectsAreEqual(wantParts, gotParts) {
			t.Fatalf("%q: parts differ between .mkv and .%s", base, ext)
		}
		if !slices.Equal(want.MatchedRules, got.MatchedRules) || want.Unrecognized != got.Unrecognized {
			t.Fatalf("%q: matched %v / %q, want %v / %q",
				base, got.MatchedRules, got.Unrecognized, want.MatchedRules, want.Unrecognized)
		}
	})
}

// TestPropertyLeftoverAccounted verifies a token no rule knows is never
// lost: it ends up in a field, usually the title, or in the leftovers.
func TestPropertyLeftoverAccounted(t *testing.T) {
	t.Parallel()
	const unknown = "Zqxj"
	rapid.Check(t, func(t *rapid.T) {
		base := baseNameGen().Draw(t, "base")
		sep := rapid.SampledFrom(nameSeparators).Draw(t, "sep")
		ext := rapid.SampledFrom([]string{"", ".mkv", ".srt"}).Draw(t, "ext")
		name := unknown + ext
		if base != "" {
			name = base + sep + name
		}

		res := Parse(name)
		parts, err := json.Marshal(res.Parts)
		if err != nil {
			t.Fatalf("marshal parts: %v", err)
		}
		if !strings.Contains(string(parts), unknown) && !strings.Contains(res.Unrecognized, unknown) {
			t.Fatalf("%q: %s lost, parts %s, matched %v", name, unknown, parts, res.MatchedRules)
		}
	})
}

// TestPropertyCleanupTitleNormalized verifies cleaned titles contain no
// dots, no doubled spaces and no surrounding whitespace.
func TestPropertyCleanupTitleNormalized(t *testing.T) {
	t.Parallel()
	chars := []rune("ab. \t\n-_1")
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringOfN(rapid.SampledFrom(chars), 0, 50, -1).Draw(t, "s")
		got := CleanupTitle(s)
		if strings.Contains(got, ".") || strings.Contains(got, "  ") || strings.TrimSpace(got) != got {
			t.Fatalf("CleanupTitle(%q) = %q", s, got)
		}
		if CleanupTitle(got) != got {
			t.Fatalf("CleanupTitle not idempotent on %q", s)
		}
	})
}

// ============================================================================
// Fuzz tests
// ============================================================================

func FuzzParse(f *testing.F) {
	f.Add("The.Matrix.1999.1080p.BluRay.x264-SPARKS.mkv")
	f.Add("Breaking.Bad.S05E14.720p.HDTV.x264-KILLERS.mp4")
	f.Add("Final.Destination.Bloodlines.2025.Hybrid.2160p.iT.WEB-DL.DDP.5.1.Atmos.DV.HDR10+.H.265-HONE.mkv")
	f.Add("[Group] Show - 01 [1080p].mkv")
	f.Add("")
	f.Add("...")
	f.Add("千与千寻.2001.x264")
	f.Add("The..Matrix.2049.2017.x")
	f.Add("Amélie.2001.1080p.mkv")
	f.Add("-_-")

	f.Fuzz(func(t *testing.T, name string) {
		checkResult(t, name, Parse(name))
	})
}
