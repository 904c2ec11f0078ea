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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrder(t *testing.T) {
	t.Parallel()

	want := []string{
		"title", "complex_title", "year", "season", "episode", "season_episode", "resolution",
		"video_codec", "h265_codec", "h264_codec", "advanced_video_codec", "audio_codec",
		"advanced_audio_codec", "release_group", "subtitle", "version", "source", "webdl_source",
		"streaming_platform", "dvd_source", "tv_source", "hdr", "audio_channels",
		"specific_audio_codec_channels", "file_extension", "special_tags", "language", "region",
		"hybrid", "complex_combination", "frame_rate", "color_depth", "color_space", "dimension_type",
		"screen_format", "hardcoded_sub", "watermark", "edit_version", "audio_description", "flac_audio",
		"commentary", "extras", "encoder", "specific_streaming_platform", "hamivideo_platform",
		"scene_tags", "p2p_tags",
	}
	assert.Equal(t, want, Default().IDs())
}

func TestCatalogRulesAreValid(t *testing.T) {
	t.Parallel()

	for _, r := range Builtin() {
		assert.NoError(t, r.Validate(), "rule %s", r.ID)
		assert.NotEmpty(t, r.Name, "rule %s has no name", r.ID)
		assert.NotEmpty(t, r.Description, "rule %s has no description", r.ID)
		assert.NotEmpty(t, r.Examples, "rule %s has no examples", r.ID)
	}
}

func TestCatalogExamplesMatch(t *testing.T) {
	t.Parallel()

	for _, r := range Builtin() {
		for _, ex := range r.Examples {
			assert.NotNil(t, r.Match(ex), "rule %s does not match its example %q", r.ID, ex)
		}
	}
}

func TestCatalogExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  string
		input string
		key   string
		want  string
	}{
		{name: "title dots to spaces", rule: "title", input: "The.Matrix.1999.1080p", key: FieldTitle, want: "The Matrix"},
		{name: "complex title before resolution", rule: "complex_title", input: "Spirited.Away.1080p", key: FieldTitle, want: "Spirited Away"},
		{name: "title doubled dots", rule: "title", input: "The..Matrix.1999", key: FieldTitle, want: "The Matrix"},
		{name: "complex title doubled dots", rule: "complex_title", input: "Final..Destination..Bloodlines.2025", key: FieldTitle, want: "Final Destination Bloodlines"},
		{name: "complex title han", rule: "complex_title", input: "千与千寻.2001.x264", key: FieldTitle, want: "千与千寻"},
		{name: "year in brackets", rule: "year", input: "Movie [1999] x264", key: FieldYear, want: "1999"},
		{name: "season word", rule: "season", input: "Show Season 3 720p", key: FieldSeason, want: "3"},
		{name: "episode at end", rule: "episode", input: "Show S01 E07", key: FieldEpisode, want: "07"},
		{name: "resolution at end", rule: "resolution", input: "Movie.Name 1080p", key: FieldResolution, want: "1080p"},
		{name: "resolution dimensions", rule: "resolution", input: "Movie.1920x1080.x264", key: FieldResolution, want: "1920x1080"},
		{name: "codec dotted h265", rule: "video_codec", input: "Movie.H.265-GRP", key: FieldVideoCodec, want: "H.265"},
		{name: "codec bare h264", rule: "video_codec", input: "Movie.H264.mkv", key: FieldVideoCodec, want: "H.264"},
		{name: "codec x264 untouched", rule: "video_codec", input: "Movie.x264-GRP", key: FieldVideoCodec, want: "x264"},
		{name: "codec with profile", rule: "advanced_video_codec", input: "Movie.x265.10bit.AAC", key: FieldVideoCodec, want: "x26510bit"},
		{name: "audio codec raw", rule: "audio_codec", input: "Movie.DDP.5.1.Atmos.DV", key: FieldAudioCodec, want: "DDP.5.1.Atmos"},
		{name: "release group brackets", rule: "release_group", input: "Movie.1080p.[YTS]", key: FieldReleaseGroup, want: "YTS"},
		{name: "release group before extension", rule: "release_group", input: "Movie-[EVO].mkv", key: FieldReleaseGroup, want: "EVO"},
		{name: "subtitle chinese", rule: "subtitle", input: "Movie.2020.双语.mkv", key: FieldSubtitle, want: "双语"},
		{name: "webdl fixed value", rule: "webdl_source", input: "Movie.WEB.DL.x264", key: FieldSource, want: "WEB-DL"},
		{name: "hdr dots to spaces", rule: "hdr", input: "Movie.Dolby.Vision.2160p", key: FieldHDR, want: "Dolby Vision"},
		{name: "hdr combined", rule: "hdr", input: "Movie.Atmos.DV.HDR10+.H.265", key: FieldHDR, want: "DV HDR10+"},
		{name: "codec channels stripped", rule: "specific_audio_codec_channels", input: "Movie.AAC.2.0.x264", key: FieldAudioCodecChannels, want: "AAC20"},
		{name: "extension lowercased", rule: "file_extension", input: "Movie.MKV", key: FieldFileExtension, want: "mkv"},
		{name: "hamivideo fixed value", rule: "hamivideo_platform", input: "Movie.HamiVideo.WEB-DL", key: FieldStreamingPlatform, want: "HamiVideo"},
		{name: "frame rate", rule: "frame_rate", input: "Movie 23.976fps x264", key: FieldFrameRate, want: "23.976fps"},
		{name: "color depth at end", rule: "color_depth", input: "Movie.10bit", key: FieldColorDepth, want: "10bit"},
	}

	set := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, ok := set.Get(tt.rule)
			require.True(t, ok)
			_, f, ok := r.Apply(tt.input)
			require.True(t, ok, "rule %s did not match %q", tt.rule, tt.input)
			assert.Equal(t, tt.want, f.String(tt.key))
		})
	}
}

func TestTagRules(t *testing.T) {
	t.Parallel()

	set := Default()
	tests := []struct {
		rule  string
		input string
		want  []string
	}{
		{rule: "dvd_source", input: "Movie.DVD9.x264", want: []string{"DVD9"}},
		{rule: "tv_source", input: "Show.S01E01.PDTV.x264", want: []string{"PDTV"}},
		{rule: "special_tags", input: "Anime.OVA.1080p", want: []string{"OVA"}},
		{rule: "hybrid", input: "Movie.2020.Hybrid", want: []string{"Hybrid"}},
	}
	for _, tt := range tests {
		r, _ := set.Get(tt.rule)
		_, f, ok := r.Apply(tt.input)
		require.True(t, ok, tt.rule)
		assert.Equal(t, tt.want, f.Tags, tt.rule)
	}
}

func TestSceneTagsExtraction(t *testing.T) {
	t.Parallel()

	r, ok := Default().Get("scene_tags")
	require.True(t, ok)

	tests := []struct {
		input string
		want  SceneInfo
	}{
		{input: "Movie.2020.PROPER.x264", want: SceneInfo{Proper: true}},
		{input: "Movie.2020.READ.NFO.x264", want: SceneInfo{ReadNfo: true}},
		{input: "Movie.2020.READNFO", want: SceneInfo{ReadNfo: true}},
		{input: "Movie.2020.DVDR9", want: SceneInfo{Dvdr: "DVDR9"}},
		{input: "Movie.2020.PAL.DVDR", want: SceneInfo{TVSystem: "PAL"}},
		{input: "Movie.2020.MULTi.1080p", want: SceneInfo{Multi: true}},
		{input: "Movie.2020.subpack", want: SceneInfo{SubPack: true}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, f, ok := r.Apply(tt.input)
			require.True(t, ok)
			require.NotNil(t, f.SceneInfo)
			assert.Equal(t, tt.want, *f.SceneInfo)
		})
	}
}

func TestP2PTagsExtraction(t *testing.T) {
	t.Parallel()

	r, ok := Default().Get("p2p_tags")
	require.True(t, ok)

	tests := []struct {
		input string
		want  P2PInfo
	}{
		{input: "Movie.2020.HYBRID.2160p", want: P2PInfo{Hybrid: true}},
		{input: "Movie.2020.UHD REMUX", want: P2PInfo{Remux: "UHD.REMUX"}},
		{input: "Movie.2020.BD.Remux", want: P2PInfo{Remux: "BD.REMUX"}},
		{input: "Movie.2020.BD50", want: P2PInfo{BDSize: "BD50"}},
		{input: "Movie.2020.DoVi.HEVC", want: P2PInfo{DoVi: "DOVI.HEVC"}},
		{input: "Movie.2020.HDR10plus.Profile.B", want: P2PInfo{HDR10PlusProfile: "HDR10PLUS.PROFILE.B"}},
		{input: "Movie.2020.SDR2020", want: P2PInfo{SDRType: "SDR2020"}},
		{input: "Movie.2020.REMUX", want: P2PInfo{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, f, ok := r.Apply(tt.input)
			require.True(t, ok)
			require.NotNil(t, f.P2PInfo)
			assert.Equal(t, tt.want, *f.P2PInfo)
		})
	}
}

func TestSpecificStreamingPlatform(t *testing.T) {
	t.Parallel()

	r, ok := Default().Get("specific_streaming_platform")
	require.True(t, ok)
	_, f, ok := r.Apply("Movie.2020.AMZN.WEB-DL.JPN.x264")
	require.True(t, ok)
	assert.Equal(t, "AMZN", f.String(FieldStreamingPlatform))
	assert.Equal(t, "JPN", f.String(FieldRegion))
}

func TestRuleMatchIndexIsByteOffset(t *testing.T) {
	t.Parallel()

	r, ok := Default().Get("year")
	require.True(t, ok)
	name := "千与千寻.2001.1080p"
	m := r.Match(name)
	require.NotNil(t, m)
	assert.Equal(t, ".2001.", m.Text)
	assert.Equal(t, m.Text, name[m.Index:m.Index+len(m.Text)])
}
