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
	"regexp"
	"strings"

	"github.com/ZaparooProject/reelparse/pkg/extensions"
)

var (
	dotsRe           = regexp.MustCompile(`\.`)
	dotsSpacesRe     = regexp.MustCompile(`[.\s]`)
	platformNameRe   = regexp.MustCompile(`(?i)(NF|AMZN)`)
	platformRegionRe = regexp.MustCompile(`(?i)(ITA|JPN|FRA|ESP|DEU)`)
	bdDigitsRe       = regexp.MustCompile(`\d+`)
	spaceRunRe       = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// CleanTitle turns dots into spaces, collapses whitespace runs and trims
// the result. Every title the parser reports goes through it.
func CleanTitle(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(dotsToSpaces(s), " "))
}

func setTitle(f *Fields, v string) {
	if title := CleanTitle(v); title != "" {
		f.Title = NewDetail(FieldTitle, title)
	}
}

func dotsToSpaces(s string) string {
	return dotsRe.ReplaceAllString(s, " ")
}

func stripDotsSpaces(s string) string {
	return dotsSpacesRe.ReplaceAllString(s, "")
}

func dotsSpacesToDots(s string) string {
	return dotsSpacesRe.ReplaceAllString(s, ".")
}

// canonicalCodec writes the bare H264/H265 spellings the way the
// dedicated H.264/H.265 rules report them.
func canonicalCodec(s string) string {
	switch strings.ToUpper(s) {
	case "H264":
		return "H.264"
	case "H265":
		return "H.265"
	default:
		return s
	}
}

func group(i int, set func(*Fields, string)) ExtractFunc {
	return func(m *Match) Fields {
		var f Fields
		set(&f, m.Group(i))
		return f
	}
}

func fixed(set func(*Fields)) ExtractFunc {
	return func(*Match) Fields {
		var f Fields
		set(&f)
		return f
	}
}

func tagGroup(i int) ExtractFunc {
	return group(i, func(f *Fields, v string) { f.Tags = []string{v} })
}

func sceneExtract(m *Match) Fields {
	tag := strings.ToUpper(m.Group(1))
	si := &SceneInfo{}
	switch {
	case tag == "PROPER":
		si.Proper = true
	case tag == "REPACK":
		si.Repack = true
	case tag == "READ.NFO" || tag == "READNFO" || tag == "READ NFO":
		si.ReadNfo = true
	case tag == "DIRFIX":
		si.DirFix = true
	case tag == "NFOFIX":
		si.NfoFix = true
	case tag == "RERIP":
		si.ReRip = true
	case tag == "DUPE":
		si.Dupe = true
	case tag == "SUBFIX":
		si.SubFix = true
	case tag == "LIMITED":
		si.Limited = true
	case tag == "FESTIVAL":
		si.Festival = true
	case tag == "INTERNAL":
		si.Internal = true
	case tag == "STV":
		si.STV = true
	case tag == "PPV":
		si.PPV = true
	case tag == "COMPLETE":
		si.Complete = true
	case tag == "REMASTERED":
		si.Remastered = true
	case tag == "RESTORED":
		si.Restored = true
	case tag == "WS":
		si.WS = true
	case tag == "FS":
		si.FS = true
	case tag == "OAR":
		si.OAR = true
	case tag == "RETAIL":
		si.Retail = true
	case strings.HasPrefix(tag, "DVDR"):
		si.Dvdr = tag
	case tag == "NTSC" || tag == "PAL":
		si.TVSystem = tag
	case tag == "MULTI":
		si.Multi = true
	case tag == "MULTISUBS":
		si.MultiSubs = true
	case tag == "SUBPACK":
		si.SubPack = true
	}
	return Fields{SceneInfo: si}
}

func p2pExtract(m *Match) Fields {
	tag := dotsSpacesToDots(strings.ToUpper(m.Group(1)))
	pi := &P2PInfo{}
	switch {
	case tag == "HYBRID":
		pi.Hybrid = true
	case tag == "UHD.REMUX" || tag == "BD.REMUX":
		pi.Remux = tag
	case strings.HasPrefix(tag, "BD") && bdDigitsRe.MatchString(tag):
		pi.BDSize = tag
	case tag == "DOVI.BD" || tag == "DOVI.HEVC":
		pi.DoVi = tag
	case strings.Contains(tag, "HDR10PLUS.PROFILE"):
		pi.HDR10PlusProfile = tag
	case tag == "SDR10" || tag == "SDR2020":
		pi.SDRType = tag
	}
	return Fields{P2PInfo: pi}
}

func specificPlatformExtract(m *Match) Fields {
	var f Fields
	if pm := platformNameRe.FindStringSubmatch(m.Group(1)); pm != nil {
		f.StreamingPlatform = Str(pm[1])
	}
	if rm := platformRegionRe.FindStringSubmatch(m.Group(1)); rm != nil {
		f.Region = Str(rm[1])
	}
	return f
}

// Several patterns also accept the end of the text as their closing
// delimiter so that a token left last by earlier removals still matches.
var catalog = []Rule{
	{
		ID:          "title",
		Name:        "Title",
		Description: "the title at the start of the name, words separated by dots or spaces",
		Category:    CategoryBasic,
		Pattern: MustCompile(
			`^([A-Za-z0-9][\w\.\-]*(?:\s[\w\.\-]+)*)` +
				`(?=[\.\s]+(19\d{2}|20\d{2}|S\d{2}|E\d{2}|Hybrid|WEB-?DL|BluRay))`),
		Examples: []string{"The.Matrix.1999", "Inception.2010", "Breaking.Bad.S01"},
		Extract:  group(1, setTitle),
	},
	{
		ID:          "complex_title",
		Name:        "Complex title",
		Description: "long titles, including Han characters, ending before a year, episode or quality marker",
		Category:    CategoryBasic,
		Pattern: MustCompile(
			`^([A-Za-z0-9\u3400-\u9fff][\w\.\-\u3400-\u9fff]*(?:\s[\w\.\-\u3400-\u9fff]+)*)` +
				`(?=[\.\s\-_]+(19\d{2}|20\d{2}|S\d{2}|E\d{2}|Hybrid|WEB-?DL|BluRay|1080[pi]|720[pi]|2160[pi]|4K))`),
		Examples: []string{
			"Final.Destination.Bloodlines.2025",
			"The.Lord.of.the.Rings.The.Fellowship.of.the.Ring.2001",
		},
		Extract: group(1, setTitle),
	},
	{
		ID:          "year",
		Name:        "Year",
		Description: "the release year, usually right after the title",
		Category:    CategoryBasic,
		Pattern:     MustCompile(`[.\s\[\(\-_]+(19\d{2}|20\d{2})(?:[.\s\]\)\-_]|$)`),
		Examples:    []string{"Movie.Name.2020.1080p", "Movie Name (2020) 1080p", "Movie.Name.[2020].1080p"},
		Extract: group(1, func(f *Fields, v string) {
			f.Year = NewDetail(FieldYear, v)
		}),
	},
	{
		ID:          "season",
		Name:        "Season",
		Description: "the season of a series, written as S01 or Season 1",
		Category:    CategoryEpisode,
		Pattern:     MustCompile(`[\.\s]+(S|Season\s*)(\d{1,2})(?:[\.\s]+|$)`),
		Examples:    []string{"Show.Name.S01.1080p", "Show Name Season 1 1080p"},
		Extract:     group(2, func(f *Fields, v string) { f.Season = Str(v) }),
	},
	{
		ID:          "episode",
		Name:        "Episode",
		Description: "the episode of a series, written as E01 or Episode 1",
		Category:    CategoryEpisode,
		Pattern:     MustCompile(`[\.\s]+(E|Episode\s*)(\d{1,3})(?:[\.\s]+|$)`),
		Examples:    []string{"Show.Name.S01.E01.1080p", "Show Name S01 Episode 1 1080p"},
		Extract:     group(2, func(f *Fields, v string) { f.Episode = Str(v) }),
	},
	{
		ID:          "season_episode",
		Name:        "Season and episode",
		Description: "season and episode written together, e.g. S01E01",
		Category:    CategoryEpisode,
		Pattern:     MustCompile(`[\.\s]+(S(\d{1,2})E(\d{1,3}))(?:[\.\s]+|$)`),
		Examples:    []string{"Show.Name.S01E01.1080p", "Show Name S01E01 1080p"},
		Extract: func(m *Match) Fields {
			return Fields{Season: Str(m.Group(2)), Episode: Str(m.Group(3))}
		},
	},
	{
		ID:          "resolution",
		Name:        "Resolution",
		Description: "the video resolution, e.g. 720p, 1080p, 2160p or 4K",
		Category:    CategoryVideoQuality,
		Pattern: MustCompile(`[\.\s\-_]+(720[pi]|1080[pi]|2160[pi]|4K|UHD|HD|FHD|QHD|SD|LD|` +
			`38\d{2}x21\d{2}|19\d{2}x10\d{2}|12\d{2}x7\d{2}|8\d{2}x4\d{2}|6\d{2}x3\d{2}|4\d{2}x2\d{2}|2\d{2}x1\d{2}|` +
			`540[pi]|640[pi]|960[pi]|1280[pi]|1600[pi]|1920[pi]|2048[pi]|2560[pi]|3200[pi]|3840[pi]|` +
			`4096[pi]|5120[pi]|6144[pi]|7680[pi]|8192[pi]|` +
			`WVGA|WXGA|WUXGA|WQXGA|WQHD|WSXGA|WQSXGA|WHUXGA|WHSXGA)(?:[\.\s\-_]+|$)`),
		Examples: []string{
			"Movie.Name.2020.1080p", "Movie Name 2020 4K", "Movie.Name.2020.FHD",
			"Movie.Name.2020.3840x2160", "Movie.Name.2020.WQHD",
		},
		Extract: group(1, func(f *Fields, v string) {
			f.Resolution = NewDetail(FieldResolution, v)
		}),
	},
	{
		ID:          "video_codec",
		Name:        "Video codec",
		Description: "the video encoding, e.g. x264, x265, HEVC or AVC",
		Category:    CategoryVideoCodec,
		Pattern: MustCompile(`[.\s\-_\[\(](H[.\s]?265|H[.\s]?264|HEVC|x265|x264|AVC|XVID|DIVX|VP[89]|AV1|MPEG[.\s]?[24])` +
			`(?:[.\s\-_\]\)]|$)`),
		Examples: []string{"Movie.Name.2020.1080p.x264", "Movie Name 2020 1080p HEVC", "Movie.H.265", "Movie H 264"},
		Extract: group(1, func(f *Fields, v string) {
			f.VideoCodec = Str(canonicalCodec(stripDotsSpaces(v)))
		}),
	},
	{
		ID:          "h265_codec",
		Name:        "H.265",
		Description: "H.265 video encoding, also known as HEVC",
		Category:    CategoryVideoCodec,
		Pattern:     MustCompile(`[\.\s\-_]+H\.265(?:[\.\s\-_]|$)`),
		Examples:    []string{"Movie.Name.2020.1080p.H.265", "Movie Name 2020 1080p H.265"},
		Extract:     fixed(func(f *Fields) { f.VideoCodec = Str("H.265") }),
	},
	{
		ID:          "h264_codec",
		Name:        "H.264",
		Description: "H.264 video encoding, also known as AVC",
		Category:    CategoryVideoCodec,
		Pattern:     MustCompile(`[\.\s]+H\.264[\.\s]+`),
		Examples: []string{
			"Movie.Name.2020.1080p.H.264.AAC",
			"Movie Name 2020 1080p H.264 AAC",
		},
		Extract: fixed(func(f *Fields) { f.VideoCodec = Str("H.264") }),
	},
	{
		ID:          "advanced_video_codec",
		Name:        "Video codec profile",
		Description: "video encoding with a profile or bit depth suffix",
		Category:    CategoryVideoCodec,
		Pattern:     MustCompile(`[\.\s]+([HXh][\.\s]?26[45][\.\s\-]?(?:10bit|8bit|Main|High|Profile)?)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.H.265-10bit.AAC", "Movie Name 2020 1080p x264-High AAC"},
		Extract: group(1, func(f *Fields, v string) {
			f.VideoCodec = Str(stripDotsSpaces(v))
		}),
	},
	{
		ID:          "audio_codec",
		Name:        "Audio codec",
		Description: "the audio encoding, e.g. AAC, AC3, DTS or FLAC",
		Category:    CategoryAudioCodec,
		Pattern: MustCompile(`[\.\s\-]+(DDP\.5\.1\.Atmos|DDP\.5\.1|DDP|AAC|AC3|DTS-X|DTS|DTS[\.\s\-]HD|TrueHD|FLAC|MP3|` +
			`Atmos|DD[\.\s]?5[\.\s]?1|DD\+|EAC3)[\.\s\-]+`),
		Examples: []string{"Movie.Name.2020.1080p.x264.DTS-GRP", "Movie Name 2020 1080p AC3 x264"},
		Extract:  group(1, func(f *Fields, v string) { f.AudioCodec = Str(v) }),
	},
	{
		ID:          "advanced_audio_codec",
		Name:        "Advanced audio codec",
		Description: "object based or lossless audio such as DDP 5.1 Atmos or DTS-HD MA",
		Category:    CategoryAudioCodec,
		Pattern: MustCompile(`[.\s\-_\[\(](DDP[.\s]?5[.\s]?1[.\s]?Atmos|DD\+[.\s]?5[.\s]?1[.\s]?Atmos|DTS-HD[.\s]?MA|` +
			`DTS-X|DTS[.\s]?X|TrueHD[.\s]?Atmos)(?:[.\s\-_\]\)]|$)`),
		Examples: []string{"Movie.Name.2020.1080p.DDP.5.1.Atmos", "Movie Name 2020 1080p TrueHD.Atmos"},
		Extract:  group(1, func(f *Fields, v string) { f.AudioCodec = Str(v) }),
	},
	{
		ID:          "release_group",
		Name:        "Release group",
		Description: "the publishing group, marked by a dash or brackets at the end of the name",
		Category:    CategoryRelease,
		Pattern:     MustCompile(`([\-\[])([A-Za-z0-9][\w\-\.]{0,20})[\]\-](?:$|\.(?:mkv|mp4|avi|ts|m2ts)$)`),
		Examples:    []string{"Movie.Name.2020.1080p-[RARBG]", "Movie.Name.2020.1080p.[YTS]"},
		Extract:     group(2, func(f *Fields, v string) { f.ReleaseGroup = Str(v) }),
	},
	{
		ID:          "subtitle",
		Name:        "Subtitles",
		Description: "subtitle markers such as hardcoded or bilingual subtitles",
		Category:    CategorySubtitle,
		Pattern:     MustCompile(`[\.\s\-_]*(HC|HARDSUB|中字|简中|繁中|双语|中英|CHT|CHS|SUBBED)[\.\s\-_]*`),
		Examples:    []string{"Movie.Name.2020.1080p.中字", "Movie Name 2020 1080p HC"},
		Extract: group(1, func(f *Fields, v string) {
			f.Subtitle = NewDetail(FieldSubtitle, v)
		}),
	},
	{
		ID:          "version",
		Name:        "Version",
		Description: "the edition, e.g. director's cut or extended",
		Category:    CategoryVersion,
		Pattern:     MustCompile(`[\.\s]+(Directors\.Cut|Extended|UNRATED|REMASTERED|PROPER|RERIP|REMUX|CRITERION)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.Directors.Cut.1080p", "Movie Name 2020 EXTENDED 1080p"},
		Extract:     group(1, func(f *Fields, v string) { f.Version = Str(v) }),
	},
	{
		ID:          "source",
		Name:        "Source",
		Description: "where the video came from, e.g. WEB-DL, BluRay or HDTV",
		Category:    CategorySource,
		Pattern: MustCompile(`[.\s\-_\[\(](WEB[.\s\-_]?DL|WEB[.\s\-_]?Rip|BluRay|BDRip|BRRip|DVD[.\s\-_]?Rip|HDTV|HDRip|` +
			`Blu[.\s\-_]?Ray|Hybrid|Remux|TELE[.\s\-_]?SYNC|TS|TC|CAM|HDCAM|HDRIP|WEBDL|WEBRIP|AMZN|NETFLIX|HULU|DISNEY)` +
			`(?:[.\s\-_\]\)]|$)`),
		Examples: []string{"Movie.Name.2020.1080p.WEB-DL", "Movie.Name.2020.1080p.BluRay", "Movie.Name.2020.1080p.HDTV"},
		Extract:  group(1, func(f *Fields, v string) { f.Source = Str(v) }),
	},
	{
		ID:          "webdl_source",
		Name:        "WEB-DL",
		Description: "a WEB-DL source written with any separator",
		Category:    CategorySource,
		Pattern:     MustCompile(`[\.\s]+WEB[\.\s\-]DL[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.WEB-DL.x264", "Movie.Name.2020.1080p.WEB.DL.x264"},
		Extract:     fixed(func(f *Fields) { f.Source = Str("WEB-DL") }),
	},
	{
		ID:          "streaming_platform",
		Name:        "Streaming platform",
		Description: "the streaming service, e.g. Netflix, Amazon or Disney+",
		Category:    CategorySource,
		Pattern:     MustCompile(`[\.\s]+(NF|AMZN|DSNP|HULU|HBO|HMAX|iT|iPlayer|STAN|PCOK|ATVP|CRAV)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.NF.WEB-DL", "Movie.Name.2020.1080p.AMZN.WEB-DL"},
		Extract:     group(1, func(f *Fields, v string) { f.StreamingPlatform = Str(v) }),
	},
	{
		ID:          "dvd_source",
		Name:        "DVD source",
		Description: "DVD based sources such as DVDRip or DVD5",
		Category:    CategorySource,
		Pattern:     MustCompile(`[\.\s]+(DVDRip|DVD-?Scr|DVD5|DVD9|DVD-R)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.DVDRip.x264", "Movie Name 2020 DVD-Scr x264"},
		Extract:     tagGroup(1),
	},
	{
		ID:          "tv_source",
		Name:        "TV capture",
		Description: "recordings of a broadcast such as HDTV or PDTV",
		Category:    CategorySource,
		Pattern:     MustCompile(`[\.\s]+(HDTV|PDTV|DSR|DTH|TVRip)[\.\s]+`),
		Examples:    []string{"Show.Name.S01E01.HDTV.x264", "Show Name S01E01 PDTV x264"},
		Extract:     tagGroup(1),
	},
	{
		ID:          "hdr",
		Name:        "HDR",
		Description: "high dynamic range formats such as HDR10 or Dolby Vision",
		Category:    CategoryVideoQuality,
		Pattern:     MustCompile(`[\.\s\-]+(HDR10\+?|DV\.HDR10\+|HDR|DoVi|Dolby[\.\s]?Vision|DV)(?:[\.\s\-]+|$)`),
		Examples:    []string{"Movie.Name.2020.2160p.HDR10", "Movie Name 2020 4K DoVi", "Movie.Dolby.Vision.2160p"},
		Extract: group(1, func(f *Fields, v string) {
			f.HDR = Str(dotsToSpaces(v))
		}),
	},
	{
		ID:          "audio_channels",
		Name:        "Audio channels",
		Description: "the channel layout, e.g. 2.0, 5.1 or 7.1",
		Category:    CategoryAudioCodec,
		Pattern:     MustCompile(`[\.\s]+(\d[\.\s]?\d(?:ch)?)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.5.1.x264", "Movie Name 2020 1080p 7.1ch x264"},
		Extract: group(1, func(f *Fields, v string) {
			f.AudioChannels = NewDetail(FieldAudioChannels, v)
		}),
	},
	{
		ID:          "specific_audio_codec_channels",
		Name:        "Audio codec channels",
		Description: "an audio codec written together with its channels, e.g. AAC2.0",
		Category:    CategoryAudioCodec,
		Pattern:     MustCompile(`[\.\s]+(AAC[\.\s]?2[\.\s]?0|DTS[\.\s]?5[\.\s]?1|AC3[\.\s]?5[\.\s]?1)[\.\s]+`),
		Examples: []string{
			"Movie.Name.2020.1080p.AAC2.0.x264",
			"Doctor.X.the.Movie.2024.1080p.HamiVideo.WEB-DL.AAC2.0.H.264-DreamHD",
		},
		Extract: group(1, func(f *Fields, v string) {
			f.AudioCodecChannels = NewDetail(FieldAudioCodecChannels, stripDotsSpaces(v))
		}),
	},
	{
		ID:          "file_extension",
		Name:        "File extension",
		Description: "the container extension such as .mkv or .mp4",
		Category:    CategoryFile,
		Pattern:     MustCompile(`\.(mkv|mp4|avi|wmv|flv|mov|m4v|mpg|mpeg|ts|m2ts)$`),
		Examples:    []string{"Movie.Name.2020.1080p.mkv", "Movie Name 2020 1080p.mp4"},
		Extract: group(1, func(f *Fields, v string) {
			ext := strings.ToLower(v)
			f.FileExtension = &FileExtension{Value: ext, Explanation: extensions.ContainerExplanation(ext)}
		}),
	},
	{
		ID:          "special_tags",
		Name:        "Special tags",
		Description: "markers such as Complete, Collection or OVA",
		Category:    CategoryOther,
		Pattern: MustCompile(`[\.\s]+(Complete|Collection|Trilogy|Duology|Boxset|COMPLETE|REPACK|PROPER|EXTENDED|` +
			`UNRATED|THEATRICAL|IMAX|OP|ED|NCED|NCOP|OVA|SP|PV|OVA|OVB)[\.\s]+`),
		Examples: []string{"Show.Name.Complete.1080p", "Movie Name Trilogy 1080p", "Movie.REPACK.1080p"},
		Extract:  tagGroup(1),
	},
	{
		ID:          "language",
		Name:        "Language",
		Description: "the audio language, e.g. English or Japanese",
		Category:    CategoryLanguage,
		Pattern: MustCompile(`[\.\s]+(Multi|Multilingual|English|Chinese|Spanish|French|German|Italian|Japanese|` +
			`Korean|Russian)[\.\s]+`),
		Examples: []string{"Movie.Name.2020.Multi.1080p", "Movie Name 2020 English 1080p"},
		Extract:  group(1, func(f *Fields, v string) { f.Language = Str(v) }),
	},
	{
		ID:          "region",
		Name:        "Region",
		Description: "the country or region, e.g. US, UK or JP",
		Category:    CategoryRegion,
		Pattern:     MustCompile(`[\.\s]+(US|UK|CN|JP|KR|FR|DE|IT|ES|RU)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.US.1080p", "Movie Name 2020 UK 1080p"},
		Extract:     group(1, func(f *Fields, v string) { f.Region = Str(v) }),
	},
	{
		ID:          "hybrid",
		Name:        "Hybrid",
		Description: "a release mixing several sources or technologies",
		Category:    CategoryOther,
		Pattern:     MustCompile(`[\.\s\-_]+Hybrid(?:[\.\s\-_]|$)`),
		Examples:    []string{"Movie.Name.2020.1080p.Hybrid.BluRay", "Movie Name 2020 1080p Hybrid WEB-DL"},
		Extract:     fixed(func(f *Fields) { f.Tags = []string{"Hybrid"} }),
	},
	{
		ID:          "complex_combination",
		Name:        "Format combination",
		Description: "combined audio format markers",
		Category:    CategoryAudioCodec,
		Pattern: MustCompile(`[.\s\-_\[\(](DDP[.\s]?5[.\s]?1[.\s]?Atmos|DDP[.\s]?5[.\s]?1|DDP|AAC|AC[.\s]?3|` +
			`DTS[.\s\-]?(?:HD|MA|X)?|TrueHD|FLAC|MP3|Atmos|DD[.\s]?(?:5[.\s]?1)?|DD\+|EAC3|PCM|LPCM)(?:[.\s\-_\]\)]|$)`),
		Examples: []string{"Movie.Name.2020.2160p.DDP.5.1.Atmos", "Movie.Name.2020.2160p.LPCM"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{FormatCombination: strings.TrimSpace(dotsSpacesRe.ReplaceAllString(v, " "))}
		}),
	},
	{
		ID:          "frame_rate",
		Name:        "Frame rate",
		Description: "frames per second",
		Category:    CategoryVideoSpec,
		Pattern:     MustCompile(`[\.\s]+((?:23\.976|24|25|30|50|60|120)fps)(?:[\.\s]+|$)`),
		Examples:    []string{"Movie.Name.2020.1080p.60fps", "Movie.Name.2020.1080p.23.976fps"},
		Extract:     group(1, func(f *Fields, v string) { f.FrameRate = Str(v) }),
	},
	{
		ID:          "color_depth",
		Name:        "Color depth",
		Description: "bits per color channel",
		Category:    CategoryVideoSpec,
		Pattern:     MustCompile(`[\.\s]+((?:8|10|12)bit)(?:[\.\s]+|$)`),
		Examples:    []string{"Movie.Name.2020.1080p.10bit", "Movie.Name.2020.1080p.8bit"},
		Extract:     group(1, func(f *Fields, v string) { f.ColorDepth = Str(v) }),
	},
	{
		ID:          "color_space",
		Name:        "Color space",
		Description: "the color space, e.g. BT.709 or BT.2020",
		Category:    CategoryVideoSpec,
		Pattern:     MustCompile(`[\.\s]+(BT[\.\s]?(?:709|2020)|Rec[\.\s]?(?:709|2020))[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.BT.709.x264", "Movie.Name.2020.2160p.BT.2020.x265"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{ColorSpace: dotsSpacesToDots(v)}
		}),
	},
	{
		ID:          "dimension_type",
		Name:        "Stereo format",
		Description: "2D or 3D presentation, including half side-by-side and top-and-bottom",
		Category:    CategoryVideoSpec,
		Pattern:     MustCompile(`[\.\s]+(3D|HSBS|HTAB|2D)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.3D.x264", "Movie.Name.2020.1080p.3D.HSBS.x264"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{DimensionType: v}
		}),
	},
	{
		ID:          "screen_format",
		Name:        "Screen format",
		Description: "the framing of the picture, e.g. Open Matte or IMAX",
		Category:    CategoryVideoSpec,
		Pattern:     MustCompile(`[\.\s]+(Open[\.\s]?Matte|IMAX[\.\s]?Enhanced|IMAX)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.Open.Matte.x264", "Movie.Name.2020.1080p.IMAX.Enhanced.x264"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{ScreenFormat: dotsSpacesToDots(v)}
		}),
	},
	{
		ID:          "hardcoded_sub",
		Name:        "Hardcoded subtitles",
		Description: "subtitles burned into the picture",
		Category:    CategorySubtitle,
		Pattern:     MustCompile(`[\.\s]+(HC|KORSUB|HC[\.\s]?HDRip)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.HC.x264", "Movie.Name.2020.1080p.KORSUB.x264"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{HardcodedSub: dotsSpacesToDots(v)}
		}),
	},
	{
		ID:          "watermark",
		Name:        "Watermark",
		Description: "whether the picture carries a watermark",
		Category:    CategoryVideoQuality,
		Pattern:     MustCompile(`[\.\s]+(CLEAN|DIRTY)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.CLEAN.x264", "Movie.Name.2020.1080p.DIRTY.x264"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{Watermark: v}
		}),
	},
	{
		ID:          "edit_version",
		Name:        "Edit",
		Description: "the cut of the film, e.g. fan edit or theatrical cut",
		Category:    CategoryVersion,
		Pattern:     MustCompile(`[\.\s]+(FanEdit|EXTENDED[\.\s]?EDITION|THEATRICAL[\.\s]?CUT|DIRECTOR'?S[\.\s]?CUT)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.FanEdit.x264", "Movie.Name.2020.1080p.EXTENDED.EDITION.x264"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{EditVersion: dotsSpacesToDots(v)}
		}),
	},
	{
		ID:          "audio_description",
		Name:        "Audio description",
		Description: "an audio description track for the visually impaired",
		Category:    CategoryAudio,
		Pattern:     MustCompile(`[\.\s]+(AD|AAC[\.\s]?AD)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.AD.x264", "Movie.Name.2020.1080p.AAC.AD.x264"},
		Extract:     fixed(func(f *Fields) { f.P2PInfo = &P2PInfo{AudioDescription: true} }),
	},
	{
		ID:          "flac_audio",
		Name:        "Lossless audio",
		Description: "a FLAC track with its channel layout",
		Category:    CategoryAudio,
		Pattern:     MustCompile(`[\.\s]+(FLAC[\.\s]?(?:2\.0|5\.1|7\.1))[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.FLAC.2.0.x264", "Movie.Name.2020.1080p.FLAC.5.1.x264"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{FlacAudio: dotsSpacesToDots(v)}
		}),
	},
	{
		ID:          "commentary",
		Name:        "Commentary",
		Description: "a director or cast commentary track",
		Category:    CategoryAudio,
		Pattern:     MustCompile(`[\.\s]+(Commentary|With[\.\s]?Commentary)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.Commentary.x264", "Movie.Name.2020.1080p.With.Commentary.x264"},
		Extract:     fixed(func(f *Fields) { f.P2PInfo = &P2PInfo{Commentary: true} }),
	},
	{
		ID:          "extras",
		Name:        "Extras",
		Description: "bonus material or a bonus disc",
		Category:    CategoryOther,
		Pattern:     MustCompile(`[\.\s]+(Extras|Bonus[\.\s]?Disc)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.Extras.x264", "Movie.Name.2020.1080p.Bonus.Disc.x264"},
		Extract:     fixed(func(f *Fields) { f.P2PInfo = &P2PInfo{Extras: true} }),
	},
	{
		ID:          "encoder",
		Name:        "Encoder",
		Description: "the name of a known x265 encoder",
		Category:    CategoryRelease,
		Pattern:     MustCompile(`[\.\s]+x265[\.\s]?-[\.\s]?(MeGusta|RZeroX|UTR|SAMPA|EMBER|LION|MZABI)[\.\s]+`),
		Examples:    []string{"Movie.Name.2020.1080p.x265-MeGusta.mkv", "Movie.Name.2020.1080p.x265-RZeroX.mkv"},
		Extract: group(1, func(f *Fields, v string) {
			f.P2PInfo = &P2PInfo{Encoder: v}
		}),
	},
	{
		ID:          "specific_streaming_platform",
		Name:        "Regional streaming platform",
		Description: "a streaming service together with a regional WEB-DL marker",
		Category:    CategorySource,
		Pattern: MustCompile(`[\.\s]+(NF[\.\s]?WEB[\.\s]?-?DL[\.\s]?(?:ITA|JPN|FRA|ESP|DEU)|` +
			`AMZN[\.\s]?WEB[\.\s]?-?DL[\.\s]?(?:ITA|JPN|FRA|ESP|DEU))[\.\s]+`),
		Examples: []string{"Movie.Name.2020.1080p.NF.WEB-DL.ITA.x264", "Movie.Name.2020.1080p.AMZN.WEB-DL.JPN.x264"},
		Extract:  specificPlatformExtract,
	},
	{
		ID:          "hamivideo_platform",
		Name:        "HamiVideo",
		Description: "the Taiwanese HamiVideo streaming service",
		Category:    CategorySource,
		Pattern:     MustCompile(`[\.\s]+HamiVideo[\.\s]+`),
		Examples:    []string{"Doctor.X.the.Movie.2024.1080p.HamiVideo.WEB-DL.AAC2.0.H.264-DreamHD"},
		Extract:     fixed(func(f *Fields) { f.StreamingPlatform = Str("HamiVideo") }),
	},
	{
		ID:          "scene_tags",
		Name:        "Scene markers",
		Description: "markers defined by the Scene release rules",
		Category:    CategoryRelease,
		Pattern: MustCompile(`[.\s\-_\[\(](PROPER|REPACK|READ[.\s]?NFO|DIRFIX|NFOFIX|RERIP|DUPE|SUBFIX|LIMITED|FESTIVAL|` +
			`INTERNAL|STV|PPV|COMPLETE|REMASTERED|RESTORED|WS|FS|OAR|RETAIL|DVDR\d?|NTSC|PAL|MULTi|MULTiSUBS|SUBPACK)` +
			`(?:[.\s\-_\]\)]|$)`),
		Examples: []string{"Movie.Name.2020.1080p.PROPER", "Movie.Name.2020.1080p.REPACK"},
		Extract:  sceneExtract,
	},
	{
		ID:          "p2p_tags",
		Name:        "P2P markers",
		Description: "extended markers used by P2P and Usenet groups",
		Category:    CategoryRelease,
		Pattern: MustCompile(`[.\s\-_\[\(](HYBRID|UHD[.\s]?REMUX|BD[.\s]?REMUX|REMUX|BD\d+|DoVi[.\s]?BD|DoVi[.\s]?HEVC|` +
			`HDR10plus[.\s]?Profile[.\s]?[AB]|SDR10|SDR2020)(?:[.\s\-_\]\)]|$)`),
		Examples: []string{"Movie.Name.2020.2160p.HYBRID", "Movie.Name.2020.2160p.UHD.REMUX"},
		Extract:  p2pExtract,
	},
}

// Builtin returns the built-in rules in catalog order.
func Builtin() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}
