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

package format

import (
	"regexp"
	"strings"
)

// SourceExplanation describes a release source or quality marker.
type SourceExplanation struct {
	Name        string   `json:"name" yaml:"name"`
	Quality     string   `json:"quality" yaml:"quality"`
	Description string   `json:"description" yaml:"description"`
	Typical     []string `json:"typical" yaml:"typical"`
}

var sourceGlossary = map[string]SourceExplanation{
	"WEB-DL": {
		Name:        "Web download",
		Quality:     "high",
		Description: "downloaded directly from a streaming service without re-encoding",
		Typical:     []string{"no watermark", "no capture artifacts", "high bitrate", "original audio tracks"},
	},
	"WEBRip": {
		Name:        "Web rip",
		Quality:     "medium to high",
		Description: "captured from a streaming service playback, may lose a little quality",
		Typical:     []string{"light compression artifacts", "lower bitrate than WEB-DL"},
	},
	"BluRay": {
		Name:        "Blu-ray",
		Quality:     "highest",
		Description: "taken directly from a Blu-ray disc",
		Typical:     []string{"very high bitrate", "multiple audio tracks", "best picture quality"},
	},
	"BDRip": {
		Name:        "Blu-ray rip",
		Quality:     "high",
		Description: "re-encoded from a Blu-ray disc, smaller but close to the source",
		Typical:     []string{"high bitrate below the disc", "reduced file size"},
	},
	"HDRip": {
		Name:        "HD rip",
		Quality:     "medium to high",
		Description: "re-encoded from an HD source, usually below BDRip quality",
		Typical:     []string{"medium bitrate", "visible compression artifacts"},
	},
	"DVDRip": {
		Name:        "DVD rip",
		Quality:     "medium",
		Description: "re-encoded from a DVD at standard definition",
		Typical:     []string{"standard definition", "medium bitrate"},
	},
	"HDTV": {
		Name:        "HDTV capture",
		Quality:     "medium",
		Description: "recorded from an HD television broadcast",
		Typical:     []string{"possible channel logo", "possible ads", "unstable bitrate"},
	},
	"PDTV": {
		Name:        "Digital TV capture",
		Quality:     "medium",
		Description: "recorded from a pure digital television signal",
		Typical:     []string{"little signal noise", "possible channel logo"},
	},
	"CAM": {
		Name:        "Camera recording",
		Quality:     "low",
		Description: "filmed in a cinema with a camera",
		Typical:     []string{"shaky picture", "audience noise", "possible silhouettes"},
	},
	"TS": {
		Name:        "Telesync",
		Quality:     "low",
		Description: "recorded in a cinema with professional equipment, better than CAM",
		Typical:     []string{"steadier picture", "background noise remains"},
	},
	"TC": {
		Name:        "Telecine",
		Quality:     "medium to low",
		Description: "transferred from the film reel, better than TS",
		Typical:     []string{"clearer picture", "possible film scratches"},
	},
	"HDTC": {
		Name:        "HD telecine",
		Quality:     "medium",
		Description: "high definition telecine",
		Typical:     []string{"HD resolution", "possible film scratches"},
	},
	"SCR": {
		Name:        "Screener",
		Quality:     "medium",
		Description: "preview copy sent to reviewers",
		Typical:     []string{"possible watermark", "for your consideration notices"},
	},
	"DVD-Screener": {
		Name:        "DVD screener",
		Quality:     "medium",
		Description: "preview DVD sent to reviewers",
		Typical:     []string{"DVD quality", "possible watermark"},
	},
	"R5": {
		Name:        "Region 5",
		Quality:     "medium",
		Description: "region 5 DVD, often released earlier than other regions",
		Typical:     []string{"possible Russian audio", "close to retail DVD", "possible hardcoded subtitles"},
	},
	"TELESYNC": {
		Name:        "Telesync",
		Quality:     "medium to low",
		Description: "recorded with professional equipment in an empty cinema",
		Typical:     []string{"little background noise", "audio possibly taken from the source"},
	},
	"HC": {
		Name:        "Hardcoded subtitles",
		Quality:     "depends on the source",
		Description: "subtitles are burned into the picture and cannot be turned off",
		Typical:     []string{"fixed subtitles", "quality depends on the source"},
	},
	"HQ": {
		Name:        "High quality",
		Quality:     "high",
		Description: "specially processed release of higher quality",
		Typical:     []string{"high bitrate", "tuned encoding settings"},
	},
	"HDR": {
		Name:        "High dynamic range",
		Quality:     "high",
		Description: "HDR video with a wider color gamut and brightness range",
		Typical:     []string{"wider gamut", "higher peak brightness"},
	},
	"UHD": {
		Name:        "Ultra HD",
		Quality:     "highest",
		Description: "4K or higher resolution",
		Typical:     []string{"4K or 8K resolution", "very high bitrate", "usually HDR"},
	},
	"Remux": {
		Name:        "Remux",
		Quality:     "highest",
		Description: "streams copied from the original media into a new container without re-encoding",
		Typical:     []string{"same video as the source", "no second encode", "size close to the source"},
	},
	"Encode": {
		Name:        "Encode",
		Quality:     "high",
		Description: "re-encoded to reduce size while keeping quality high",
		Typical:     []string{"reduced file size", "efficient encoding", "slightly below a remux"},
	},
	"Hybrid": {
		Name:        "Hybrid",
		Quality:     "high",
		Description: "assembled from several sources, taking the best of each",
		Typical:     []string{"video and audio from different releases", "targeted fixes"},
	},
	"iT": {
		Name:        "iTunes",
		Quality:     "high",
		Description: "downloaded from the iTunes store",
		Typical:     []string{"close to WEB-DL quality", "often carries Dolby Vision"},
	},
	"HamiVideo": {
		Name:        "Hami Video",
		Quality:     "high",
		Description: "content from the Taiwanese Hami Video streaming platform",
		Typical:     []string{"traditional Chinese subtitles", "close to WEB-DL quality"},
	},
	"DV": {
		Name:        "Dolby Vision",
		Quality:     "highest",
		Description: "Dolby Vision HDR with per frame dynamic metadata",
		Typical:     []string{"dynamic metadata", "needs a Dolby Vision capable player"},
	},
	"HDR10+": {
		Name:        "HDR10+",
		Quality:     "highest",
		Description: "open HDR format with dynamic metadata similar to Dolby Vision",
		Typical:     []string{"dynamic metadata", "open standard"},
	},
}

var sourceSepRe = regexp.MustCompile(`[.\s_\-]+`)

func sourceKey(s string) string {
	return strings.ToLower(sourceSepRe.ReplaceAllString(strings.TrimSpace(s), ""))
}

var sourceIndex = func() map[string]string {
	m := make(map[string]string, len(sourceGlossary))
	for k := range sourceGlossary {
		m[sourceKey(k)] = k
	}
	return m
}()

// LookupSource explains a source or quality marker. Matching ignores case
// and separators, so "web.dl" finds WEB-DL.
func LookupSource(value string) (SourceExplanation, bool) {
	k, ok := sourceIndex[sourceKey(value)]
	if !ok {
		return SourceExplanation{}, false
	}
	e := sourceGlossary[k]
	e.Typical = append([]string(nil), e.Typical...)
	return e, true
}
