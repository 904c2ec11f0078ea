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

// Package extensions describes the container and subtitle file extensions
// that show up next to media releases.
package extensions

import "strings"

const (
	CategoryVideo    = "video"
	CategorySubtitle = "subtitle"
)

// Info describes one file extension.
type Info struct {
	Extension       string   `json:"extension" yaml:"extension"`
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Category        string   `json:"category" yaml:"category"`
	ContainerFormat string   `json:"containerFormat,omitempty" yaml:"containerFormat,omitempty"`
	TypicalCodecs   []string `json:"typicalCodecs,omitempty" yaml:"typicalCodecs,omitempty"`
	Pros            []string `json:"pros,omitempty" yaml:"pros,omitempty"`
	Cons            []string `json:"cons,omitempty" yaml:"cons,omitempty"`
}

var table = []Info{
	{
		Extension:       "mkv",
		Name:            "Matroska Video",
		Description:     "open multimedia container supporting nearly every video and audio codec and multiple subtitle tracks",
		Category:        CategoryVideo,
		ContainerFormat: "Matroska",
		TypicalCodecs:   []string{"H.264", "H.265/HEVC", "VP9", "AV1", "DTS", "AC3", "AAC", "FLAC"},
		Pros:            []string{"supports nearly every codec", "multiple audio and subtitle tracks", "chapter markers", "open format"},
		Cons:            []string{"not supported by some devices", "files can be large"},
	},
	{
		Extension:       "mp4",
		Name:            "MPEG-4 Part 14",
		Description:     "widely used container based on QuickTime with excellent compatibility",
		Category:        CategoryVideo,
		ContainerFormat: "MPEG-4 Part 14",
		TypicalCodecs:   []string{"H.264", "H.265/HEVC", "AAC", "AC3"},
		Pros:            []string{"supported by almost every device", "streaming friendly", "moderate file size"},
		Cons:            []string{"less flexible than MKV", "limited support for advanced features"},
	},
	{
		Extension:       "avi",
		Name:            "Audio Video Interleave",
		Description:     "older Microsoft container, broadly compatible but limited",
		Category:        CategoryVideo,
		ContainerFormat: "Audio Video Interleave",
		TypicalCodecs:   []string{"DivX", "XviD", "MPEG-4", "MP3", "AC3"},
		Pros:            []string{"plays on old hardware", "simple"},
		Cons:            []string{"limited features", "no modern codecs", "files are usually large"},
	},
	{
		Extension:       "wmv",
		Name:            "Windows Media Video",
		Description:     "Microsoft video format mainly used on Windows",
		Category:        CategoryVideo,
		ContainerFormat: "Advanced Systems Format (ASF)",
		TypicalCodecs:   []string{"WMV", "VC-1", "WMA"},
		Pros:            []string{"native Windows support", "DRM support"},
		Cons:            []string{"poor cross-platform support", "less efficient than newer formats"},
	},
	{
		Extension:       "mov",
		Name:            "QuickTime Movie",
		Description:     "Apple container well supported on Mac and iOS",
		Category:        CategoryVideo,
		ContainerFormat: "QuickTime",
		TypicalCodecs:   []string{"H.264", "Apple ProRes", "AAC"},
		Pros:            []string{"native on Apple devices", "suited to professional editing"},
		Cons:            []string{"patchy support outside Apple devices", "files can be large"},
	},
	{
		Extension:       "flv",
		Name:            "Flash Video",
		Description:     "Adobe Flash Player format once common for web video",
		Category:        CategoryVideo,
		ContainerFormat: "Flash Video",
		TypicalCodecs:   []string{"VP6", "H.264", "AAC", "MP3"},
		Pros:            []string{"streaming friendly", "small files"},
		Cons:            []string{"Flash is discontinued", "usually low quality", "limited features"},
	},
	{
		Extension:       "m4v",
		Name:            "MPEG-4 Video",
		Description:     "MP4 variant used mainly by iTunes and Apple devices",
		Category:        CategoryVideo,
		ContainerFormat: "MPEG-4 Part 14",
		TypicalCodecs:   []string{"H.264", "AAC"},
		Pros:            []string{"native on Apple devices", "can carry DRM"},
		Cons:            []string{"nearly identical to MP4 with slightly worse compatibility"},
	},
	{
		Extension:       "mpg",
		Name:            "MPEG Video",
		Description:     "older MPEG-1 or MPEG-2 program stream",
		Category:        CategoryVideo,
		ContainerFormat: "MPEG Program Stream",
		TypicalCodecs:   []string{"MPEG-1", "MPEG-2", "MP2"},
		Pros:            []string{"plays on old hardware", "DVD video standard"},
		Cons:            []string{"poor compression", "limited features", "large files"},
	},
	{
		Extension:       "mpeg",
		Name:            "MPEG Video",
		Description:     "same as MPG, an older MPEG-1 or MPEG-2 program stream",
		Category:        CategoryVideo,
		ContainerFormat: "MPEG Program Stream",
		TypicalCodecs:   []string{"MPEG-1", "MPEG-2", "MP2"},
		Pros:            []string{"plays on old hardware", "DVD video standard"},
		Cons:            []string{"poor compression", "limited features", "large files"},
	},
	{
		Extension:       "ts",
		Name:            "MPEG Transport Stream",
		Description:     "MPEG-2 transport stream used for broadcast and streaming",
		Category:        CategoryVideo,
		ContainerFormat: "MPEG Transport Stream",
		TypicalCodecs:   []string{"H.264", "H.265/HEVC", "AAC", "AC3"},
		Pros:            []string{"suited to live streaming", "robust error recovery", "multiple programs"},
		Cons:            []string{"large files", "poorly suited to local storage"},
	},
	{
		Extension:       "m2ts",
		Name:            "MPEG-2 Transport Stream",
		Description:     "transport stream used on Blu-ray discs",
		Category:        CategoryVideo,
		ContainerFormat: "MPEG Transport Stream",
		TypicalCodecs:   []string{"H.264", "H.265/HEVC", "DTS-HD", "TrueHD", "AC3"},
		Pros:            []string{"Blu-ray standard", "high quality audio and video", "advanced features"},
		Cons:            []string{"large files", "less compatible than MP4"},
	},
	{
		Extension:       "webm",
		Name:            "WebM",
		Description:     "open web video format from Google based on Matroska",
		Category:        CategoryVideo,
		ContainerFormat: "WebM (Matroska based)",
		TypicalCodecs:   []string{"VP8", "VP9", "AV1", "Opus", "Vorbis"},
		Pros:            []string{"open and royalty free", "web friendly", "small files"},
		Cons:            []string{"no legacy codecs", "poor support on old devices"},
	},
	{
		Extension:       "rm",
		Name:            "RealMedia",
		Description:     "legacy RealNetworks streaming format",
		Category:        CategoryVideo,
		ContainerFormat: "RealMedia",
		TypicalCodecs:   []string{"RealVideo", "RealAudio"},
		Pros:            []string{"optimised for streaming", "works on low bandwidth"},
		Cons:            []string{"usually low quality", "obsolete", "needs a dedicated player"},
	},
	{
		Extension:       "3gp",
		Name:            "3GPP Multimedia",
		Description:     "simplified MPEG-4 format designed for 3G phones",
		Category:        CategoryVideo,
		ContainerFormat: "3GPP",
		TypicalCodecs:   []string{"H.263", "MPEG-4", "AAC", "AMR"},
		Pros:            []string{"mobile friendly", "small files"},
		Cons:            []string{"usually low quality", "limited features", "mostly used by old phones"},
	},
	{
		Extension:   "srt",
		Name:        "SubRip Subtitle",
		Description: "the most common text subtitle format, timecodes plus text",
		Category:    CategorySubtitle,
		Pros:        []string{"simple", "widely supported", "easy to edit"},
		Cons:        []string{"no styling", "no images"},
	},
	{
		Extension:   "ass",
		Name:        "Advanced SubStation Alpha",
		Description: "advanced subtitle format with styling and animation",
		Category:    CategorySubtitle,
		Pros:        []string{"rich styling", "animation", "precise positioning"},
		Cons:        []string{"complex", "limited support in some players"},
	},
	{
		Extension:   "idx",
		Name:        "VobSub Index",
		Description: "DVD subtitle index, used together with a .sub file",
		Category:    CategorySubtitle,
		Pros:        []string{"keeps the original DVD subtitles", "image based"},
		Cons:        []string{"needs the matching .sub file", "hard to edit", "large"},
	},
	{
		Extension:   "sub",
		Name:        "VobSub Subtitle",
		Description: "DVD subtitle data, used together with an .idx file",
		Category:    CategorySubtitle,
		Pros:        []string{"keeps the original DVD subtitles", "image based"},
		Cons:        []string{"needs the matching .idx file", "hard to edit", "large"},
	},
}

var byExt = func() map[string]int {
	m := make(map[string]int, len(table))
	for i, info := range table {
		m[info.Extension] = i
	}
	return m
}()

// Normalize lowercases ext and strips a leading dot.
func Normalize(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// Lookup returns the description of an extension. The extension may be
// given in any case, with or without a leading dot.
func Lookup(ext string) (Info, bool) {
	i, ok := byExt[Normalize(ext)]
	if !ok {
		return Info{}, false
	}
	return clone(table[i]), true
}

// All returns every known extension in table order.
func All() []Info {
	out := make([]Info, 0, len(table))
	for _, info := range table {
		out = append(out, clone(info))
	}
	return out
}

// ByCategory returns the extensions of one category in table order.
func ByCategory(category string) []Info {
	out := []Info{}
	for _, info := range table {
		if info.Category == category {
			out = append(out, clone(info))
		}
	}
	return out
}

var containerExplanations = map[string]string{
	"mkv":  "Matroska container, supports multiple audio tracks, subtitles and chapters",
	"mp4":  "MPEG-4 container, highly compatible and widely supported",
	"avi":  "Audio Video Interleave, older but broadly compatible",
	"wmv":  "Windows Media Video, developed by Microsoft",
	"flv":  "Flash video, suited to web streaming",
	"mov":  "QuickTime movie, developed by Apple",
	"m4v":  "iTunes video, based on MP4",
	"mpg":  "MPEG-1 or MPEG-2 video",
	"mpeg": "MPEG standard video",
	"ts":   "MPEG transport stream, used for broadcast",
	"m2ts": "Blu-ray BDAV container",
}

// ContainerExplanation returns a one line explanation of a container
// extension.
func ContainerExplanation(ext string) string {
	ext = Normalize(ext)
	if e, ok := containerExplanations[ext]; ok {
		return e
	}
	return ext + " container"
}

func clone(info Info) Info {
	info.TypicalCodecs = append([]string(nil), info.TypicalCodecs...)
	info.Pros = append([]string(nil), info.Pros...)
	info.Cons = append([]string(nil), info.Cons...)
	return info
}
