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

import "slices"

// Field keys as they appear in JSON results.
const (
	FieldTitle              = "title"
	FieldYear               = "year"
	FieldVersion            = "version"
	FieldResolution         = "resolution"
	FieldSource             = "source"
	FieldStreamingPlatform  = "streamingPlatform"
	FieldVideoCodec         = "videoCodec"
	FieldAudioCodec         = "audioCodec"
	FieldAudioChannels      = "audioChannels"
	FieldAudioCodecChannels = "audioCodecChannels"
	FieldHDR                = "hdr"
	FieldFrameRate          = "frameRate"
	FieldColorDepth         = "colorDepth"
	FieldReleaseGroup       = "releaseGroup"
	FieldFileExtension      = "fileExtension"
	FieldSeason             = "season"
	FieldEpisode            = "episode"
	FieldLanguage           = "language"
	FieldRegion             = "region"
	FieldSubtitle           = "subtitle"
	FieldTags               = "tags"
	FieldSceneInfo          = "sceneInfo"
	FieldP2PInfo            = "p2pInfo"
)

// FieldKeys lists every field key in display order.
var FieldKeys = []string{
	FieldTitle,
	FieldYear,
	FieldSeason,
	FieldEpisode,
	FieldVersion,
	FieldResolution,
	FieldSource,
	FieldStreamingPlatform,
	FieldVideoCodec,
	FieldAudioCodec,
	FieldAudioChannels,
	FieldAudioCodecChannels,
	FieldHDR,
	FieldFrameRate,
	FieldColorDepth,
	FieldReleaseGroup,
	FieldFileExtension,
	FieldLanguage,
	FieldRegion,
	FieldSubtitle,
	FieldTags,
	FieldSceneInfo,
	FieldP2PInfo,
}

// Detail is a labelled field value.
type Detail struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// FileExtension is the detected container extension of a file name.
type FileExtension struct {
	Value       string `json:"value" yaml:"value"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// SceneInfo holds Scene release convention markers. Unset flags are false.
type SceneInfo struct {
	Dvdr       string `json:"dvdr,omitempty" yaml:"dvdr,omitempty"`
	TVSystem   string `json:"tvSystem,omitempty" yaml:"tvSystem,omitempty"`
	Proper     bool   `json:"proper,omitempty" yaml:"proper,omitempty"`
	Repack     bool   `json:"repack,omitempty" yaml:"repack,omitempty"`
	ReadNfo    bool   `json:"readNfo,omitempty" yaml:"readNfo,omitempty"`
	DirFix     bool   `json:"dirFix,omitempty" yaml:"dirFix,omitempty"`
	NfoFix     bool   `json:"nfoFix,omitempty" yaml:"nfoFix,omitempty"`
	ReRip      bool   `json:"reRip,omitempty" yaml:"reRip,omitempty"`
	Dupe       bool   `json:"dupe,omitempty" yaml:"dupe,omitempty"`
	SubFix     bool   `json:"subFix,omitempty" yaml:"subFix,omitempty"`
	Limited    bool   `json:"limited,omitempty" yaml:"limited,omitempty"`
	Festival   bool   `json:"festival,omitempty" yaml:"festival,omitempty"`
	Internal   bool   `json:"internal,omitempty" yaml:"internal,omitempty"`
	STV        bool   `json:"stv,omitempty" yaml:"stv,omitempty"`
	PPV        bool   `json:"ppv,omitempty" yaml:"ppv,omitempty"`
	Complete   bool   `json:"complete,omitempty" yaml:"complete,omitempty"`
	Remastered bool   `json:"remastered,omitempty" yaml:"remastered,omitempty"`
	Restored   bool   `json:"restored,omitempty" yaml:"restored,omitempty"`
	WS         bool   `json:"ws,omitempty" yaml:"ws,omitempty"`
	FS         bool   `json:"fs,omitempty" yaml:"fs,omitempty"`
	OAR        bool   `json:"oar,omitempty" yaml:"oar,omitempty"`
	Retail     bool   `json:"retail,omitempty" yaml:"retail,omitempty"`
	Multi      bool   `json:"multi,omitempty" yaml:"multi,omitempty"`
	MultiSubs  bool   `json:"multiSubs,omitempty" yaml:"multiSubs,omitempty"`
	SubPack    bool   `json:"subPack,omitempty" yaml:"subPack,omitempty"`
}

// IsZero reports whether no marker is set.
func (s *SceneInfo) IsZero() bool {
	return s == nil || *s == SceneInfo{}
}

// Flags returns the names of the set markers in declaration order.
func (s *SceneInfo) Flags() []string {
	if s == nil {
		return nil
	}
	var flags []string
	add := func(set bool, name string) {
		if set {
			flags = append(flags, name)
		}
	}
	add(s.Proper, "PROPER")
	add(s.Repack, "REPACK")
	add(s.ReadNfo, "READ.NFO")
	add(s.DirFix, "DIRFIX")
	add(s.NfoFix, "NFOFIX")
	add(s.ReRip, "RERIP")
	add(s.Dupe, "DUPE")
	add(s.SubFix, "SUBFIX")
	add(s.Limited, "LIMITED")
	add(s.Festival, "FESTIVAL")
	add(s.Internal, "INTERNAL")
	add(s.STV, "STV")
	add(s.PPV, "PPV")
	add(s.Complete, "COMPLETE")
	add(s.Remastered, "REMASTERED")
	add(s.Restored, "RESTORED")
	add(s.WS, "WS")
	add(s.FS, "FS")
	add(s.OAR, "OAR")
	add(s.Retail, "RETAIL")
	add(s.Dvdr != "", s.Dvdr)
	add(s.TVSystem != "", s.TVSystem)
	add(s.Multi, "MULTi")
	add(s.MultiSubs, "MULTiSUBS")
	add(s.SubPack, "SUBPACK")
	return flags
}

func (s *SceneInfo) merge(o *SceneInfo) {
	if o.Dvdr != "" {
		s.Dvdr = o.Dvdr
	}
	if o.TVSystem != "" {
		s.TVSystem = o.TVSystem
	}
	s.Proper = s.Proper || o.Proper
	s.Repack = s.Repack || o.Repack
	s.ReadNfo = s.ReadNfo || o.ReadNfo
	s.DirFix = s.DirFix || o.DirFix
	s.NfoFix = s.NfoFix || o.NfoFix
	s.ReRip = s.ReRip || o.ReRip
	s.Dupe = s.Dupe || o.Dupe
	s.SubFix = s.SubFix || o.SubFix
	s.Limited = s.Limited || o.Limited
	s.Festival = s.Festival || o.Festival
	s.Internal = s.Internal || o.Internal
	s.STV = s.STV || o.STV
	s.PPV = s.PPV || o.PPV
	s.Complete = s.Complete || o.Complete
	s.Remastered = s.Remastered || o.Remastered
	s.Restored = s.Restored || o.Restored
	s.WS = s.WS || o.WS
	s.FS = s.FS || o.FS
	s.OAR = s.OAR || o.OAR
	s.Retail = s.Retail || o.Retail
	s.Multi = s.Multi || o.Multi
	s.MultiSubs = s.MultiSubs || o.MultiSubs
	s.SubPack = s.SubPack || o.SubPack
}

// P2PInfo holds P2P/Usenet release convention markers.
type P2PInfo struct {
	Remux             string `json:"remux,omitempty" yaml:"remux,omitempty"`
	BDSize            string `json:"bdSize,omitempty" yaml:"bdSize,omitempty"`
	DoVi              string `json:"doVi,omitempty" yaml:"doVi,omitempty"`
	HDR10PlusProfile  string `json:"hdr10PlusProfile,omitempty" yaml:"hdr10PlusProfile,omitempty"`
	SDRType           string `json:"sdrType,omitempty" yaml:"sdrType,omitempty"`
	FormatCombination string `json:"formatCombination,omitempty" yaml:"formatCombination,omitempty"`
	ColorSpace        string `json:"colorSpace,omitempty" yaml:"colorSpace,omitempty"`
	DimensionType     string `json:"dimensionType,omitempty" yaml:"dimensionType,omitempty"`
	ScreenFormat      string `json:"screenFormat,omitempty" yaml:"screenFormat,omitempty"`
	HardcodedSub      string `json:"hardcodedSub,omitempty" yaml:"hardcodedSub,omitempty"`
	Watermark         string `json:"watermark,omitempty" yaml:"watermark,omitempty"`
	EditVersion       string `json:"editVersion,omitempty" yaml:"editVersion,omitempty"`
	FlacAudio         string `json:"flacAudio,omitempty" yaml:"flacAudio,omitempty"`
	Encoder           string `json:"encoder,omitempty" yaml:"encoder,omitempty"`
	Hybrid            bool   `json:"hybrid,omitempty" yaml:"hybrid,omitempty"`
	AudioDescription  bool   `json:"audioDescription,omitempty" yaml:"audioDescription,omitempty"`
	Commentary        bool   `json:"commentary,omitempty" yaml:"commentary,omitempty"`
	Extras            bool   `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// IsZero reports whether no marker is set.
func (p *P2PInfo) IsZero() bool {
	return p == nil || *p == P2PInfo{}
}

// Values returns the set markers as key/value strings in declaration order.
func (p *P2PInfo) Values() [][2]string {
	if p == nil {
		return nil
	}
	var out [][2]string
	addStr := func(k, v string) {
		if v != "" {
			out = append(out, [2]string{k, v})
		}
	}
	addBool := func(k string, v bool) {
		if v {
			out = append(out, [2]string{k, "yes"})
		}
	}
	addStr("remux", p.Remux)
	addStr("bdSize", p.BDSize)
	addStr("doVi", p.DoVi)
	addStr("hdr10PlusProfile", p.HDR10PlusProfile)
	addStr("sdrType", p.SDRType)
	addStr("formatCombination", p.FormatCombination)
	addStr("colorSpace", p.ColorSpace)
	addStr("dimensionType", p.DimensionType)
	addStr("screenFormat", p.ScreenFormat)
	addStr("hardcodedSub", p.HardcodedSub)
	addStr("watermark", p.Watermark)
	addStr("editVersion", p.EditVersion)
	addStr("flacAudio", p.FlacAudio)
	addStr("encoder", p.Encoder)
	addBool("hybrid", p.Hybrid)
	addBool("audioDescription", p.AudioDescription)
	addBool("commentary", p.Commentary)
	addBool("extras", p.Extras)
	return out
}

func (p *P2PInfo) merge(o *P2PInfo) {
	mergeStr := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	mergeStr(&p.Remux, o.Remux)
	mergeStr(&p.BDSize, o.BDSize)
	mergeStr(&p.DoVi, o.DoVi)
	mergeStr(&p.HDR10PlusProfile, o.HDR10PlusProfile)
	mergeStr(&p.SDRType, o.SDRType)
	mergeStr(&p.FormatCombination, o.FormatCombination)
	mergeStr(&p.ColorSpace, o.ColorSpace)
	mergeStr(&p.DimensionType, o.DimensionType)
	mergeStr(&p.ScreenFormat, o.ScreenFormat)
	mergeStr(&p.HardcodedSub, o.HardcodedSub)
	mergeStr(&p.Watermark, o.Watermark)
	mergeStr(&p.EditVersion, o.EditVersion)
	mergeStr(&p.FlacAudio, o.FlacAudio)
	mergeStr(&p.Encoder, o.Encoder)
	p.Hybrid = p.Hybrid || o.Hybrid
	p.AudioDescription = p.AudioDescription || o.AudioDescription
	p.Commentary = p.Commentary || o.Commentary
	p.Extras = p.Extras || o.Extras
}

// Fields is a sparse record of extracted values. A nil field was not
// detected.
type Fields struct {
	Title              *Detail        `json:"title,omitempty" yaml:"title,omitempty"`
	Year               *Detail        `json:"year,omitempty" yaml:"year,omitempty"`
	Resolution         *Detail        `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Subtitle           *Detail        `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	AudioChannels      *Detail        `json:"audioChannels,omitempty" yaml:"audioChannels,omitempty"`
	AudioCodecChannels *Detail        `json:"audioCodecChannels,omitempty" yaml:"audioCodecChannels,omitempty"`
	FileExtension      *FileExtension `json:"fileExtension,omitempty" yaml:"fileExtension,omitempty"`
	Version            *string        `json:"version,omitempty" yaml:"version,omitempty"`
	Source             *string        `json:"source,omitempty" yaml:"source,omitempty"`
	StreamingPlatform  *string        `json:"streamingPlatform,omitempty" yaml:"streamingPlatform,omitempty"`
	VideoCodec         *string        `json:"videoCodec,omitempty" yaml:"videoCodec,omitempty"`
	AudioCodec         *string        `json:"audioCodec,omitempty" yaml:"audioCodec,omitempty"`
	HDR                *string        `json:"hdr,omitempty" yaml:"hdr,omitempty"`
	FrameRate          *string        `json:"frameRate,omitempty" yaml:"frameRate,omitempty"`
	ColorDepth         *string        `json:"colorDepth,omitempty" yaml:"colorDepth,omitempty"`
	ReleaseGroup       *string        `json:"releaseGroup,omitempty" yaml:"releaseGroup,omitempty"`
	Season             *string        `json:"season,omitempty" yaml:"season,omitempty"`
	Episode            *string        `json:"episode,omitempty" yaml:"episode,omitempty"`
	Language           *string        `json:"language,omitempty" yaml:"language,omitempty"`
	Region             *string        `json:"region,omitempty" yaml:"region,omitempty"`
	SceneInfo          *SceneInfo     `json:"sceneInfo,omitempty" yaml:"sceneInfo,omitempty"`
	P2PInfo            *P2PInfo       `json:"p2pInfo,omitempty" yaml:"p2pInfo,omitempty"`
	Tags               []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Merge copies every field set in o over f. Tags accumulate and the
// scene/P2P records merge per sub-field; everything else is last write
// wins.
func (f *Fields) Merge(o *Fields) {
	if o == nil {
		return
	}
	mergeDetail(&f.Title, o.Title)
	mergeDetail(&f.Year, o.Year)
	mergeDetail(&f.Resolution, o.Resolution)
	mergeDetail(&f.Subtitle, o.Subtitle)
	mergeDetail(&f.AudioChannels, o.AudioChannels)
	mergeDetail(&f.AudioCodecChannels, o.AudioCodecChannels)
	if o.FileExtension != nil {
		ext := *o.FileExtension
		f.FileExtension = &ext
	}
	mergeString(&f.Version, o.Version)
	mergeString(&f.Source, o.Source)
	mergeString(&f.StreamingPlatform, o.StreamingPlatform)
	mergeString(&f.VideoCodec, o.VideoCodec)
	mergeString(&f.AudioCodec, o.AudioCodec)
	mergeString(&f.HDR, o.HDR)
	mergeString(&f.FrameRate, o.FrameRate)
	mergeString(&f.ColorDepth, o.ColorDepth)
	mergeString(&f.ReleaseGroup, o.ReleaseGroup)
	mergeString(&f.Season, o.Season)
	mergeString(&f.Episode, o.Episode)
	mergeString(&f.Language, o.Language)
	mergeString(&f.Region, o.Region)
	if !o.SceneInfo.IsZero() {
		if f.SceneInfo == nil {
			f.SceneInfo = &SceneInfo{}
		}
		f.SceneInfo.merge(o.SceneInfo)
	}
	if !o.P2PInfo.IsZero() {
		if f.P2PInfo == nil {
			f.P2PInfo = &P2PInfo{}
		}
		f.P2PInfo.merge(o.P2PInfo)
	}
	if len(o.Tags) > 0 {
		f.Tags = append(f.Tags, o.Tags...)
	}
}

// Keys returns the keys of the populated fields in display order.
func (f *Fields) Keys() []string {
	present := map[string]bool{
		FieldTitle:              f.Title != nil,
		FieldYear:               f.Year != nil,
		FieldSeason:             f.Season != nil,
		FieldEpisode:            f.Episode != nil,
		FieldVersion:            f.Version != nil,
		FieldResolution:         f.Resolution != nil,
		FieldSource:             f.Source != nil,
		FieldStreamingPlatform:  f.StreamingPlatform != nil,
		FieldVideoCodec:         f.VideoCodec != nil,
		FieldAudioCodec:         f.AudioCodec != nil,
		FieldAudioChannels:      f.AudioChannels != nil,
		FieldAudioCodecChannels: f.AudioCodecChannels != nil,
		FieldHDR:                f.HDR != nil,
		FieldFrameRate:          f.FrameRate != nil,
		FieldColorDepth:         f.ColorDepth != nil,
		FieldReleaseGroup:       f.ReleaseGroup != nil,
		FieldFileExtension:      f.FileExtension != nil,
		FieldLanguage:           f.Language != nil,
		FieldRegion:             f.Region != nil,
		FieldSubtitle:           f.Subtitle != nil,
		FieldTags:               len(f.Tags) > 0,
		FieldSceneInfo:          f.SceneInfo != nil,
		FieldP2PInfo:            f.P2PInfo != nil,
	}
	keys := make([]string, 0, len(present))
	for _, k := range FieldKeys {
		if present[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// Has reports whether the field with the given key is populated.
func (f *Fields) Has(key string) bool {
	return slices.Contains(f.Keys(), key)
}

// String returns the plain string value of a field, or "" when it is
// absent. Detail fields return their value.
func (f *Fields) String(key string) string {
	switch key {
	case FieldTitle:
		return detailValue(f.Title)
	case FieldYear:
		return detailValue(f.Year)
	case FieldResolution:
		return detailValue(f.Resolution)
	case FieldSubtitle:
		return detailValue(f.Subtitle)
	case FieldAudioChannels:
		return detailValue(f.AudioChannels)
	case FieldAudioCodecChannels:
		return detailValue(f.AudioCodecChannels)
	case FieldFileExtension:
		if f.FileExtension == nil {
			return ""
		}
		return f.FileExtension.Value
	}
	if p := f.stringField(key); p != nil && *p != nil {
		return **p
	}
	return ""
}

// stringField returns the storage of a plain string field, or nil if the
// key does not name one.
func (f *Fields) stringField(key string) **string {
	switch key {
	case FieldVersion:
		return &f.Version
	case FieldSource:
		return &f.Source
	case FieldStreamingPlatform:
		return &f.StreamingPlatform
	case FieldVideoCodec:
		return &f.VideoCodec
	case FieldAudioCodec:
		return &f.AudioCodec
	case FieldHDR:
		return &f.HDR
	case FieldFrameRate:
		return &f.FrameRate
	case FieldColorDepth:
		return &f.ColorDepth
	case FieldReleaseGroup:
		return &f.ReleaseGroup
	case FieldSeason:
		return &f.Season
	case FieldEpisode:
		return &f.Episode
	case FieldLanguage:
		return &f.Language
	case FieldRegion:
		return &f.Region
	default:
		return nil
	}
}

// detailField returns the storage of a labelled field, or nil.
func (f *Fields) detailField(key string) **Detail {
	switch key {
	case FieldTitle:
		return &f.Title
	case FieldYear:
		return &f.Year
	case FieldResolution:
		return &f.Resolution
	case FieldSubtitle:
		return &f.Subtitle
	case FieldAudioChannels:
		return &f.AudioChannels
	case FieldAudioCodecChannels:
		return &f.AudioCodecChannels
	default:
		return nil
	}
}

// Set assigns a plain value to the field with the given key. Labelled
// fields get their standard label, tags are appended and titles are
// cleaned with CleanTitle. It returns false for keys that cannot hold a
// plain value.
func (f *Fields) Set(key, value string) bool {
	if key == FieldTitle {
		setTitle(f, value)
		return true
	}
	if p := f.stringField(key); p != nil {
		*p = &value
		return true
	}
	if p := f.detailField(key); p != nil {
		*p = NewDetail(key, value)
		return true
	}
	if key == FieldTags {
		f.Tags = append(f.Tags, value)
		return true
	}
	return false
}

// SettableField reports whether Set accepts the key.
func SettableField(key string) bool {
	var f Fields
	return f.Set(key, "")
}

// Clone returns a deep copy.
func (f *Fields) Clone() Fields {
	var c Fields
	c.Merge(f)
	return c
}

// NewDetail builds a labelled value using the standard label and
// description of the field.
func NewDetail(key, value string) *Detail {
	meta := fieldMeta[key]
	return &Detail{
		Value:       value,
		Label:       meta.label,
		Description: meta.description,
	}
}

// FieldLabel returns the display label of a field key.
func FieldLabel(key string) string {
	if meta, ok := fieldMeta[key]; ok {
		return meta.label
	}
	return key
}

// FieldDescription returns the display description of a field key.
func FieldDescription(key string) string {
	return fieldMeta[key].description
}

// FieldCategory returns the category a field is shown under.
func FieldCategory(key string) Category {
	if meta, ok := fieldMeta[key]; ok {
		return meta.category
	}
	return CategoryOther
}

type fieldInfo struct {
	label       string
	description string
	category    Category
}

var fieldMeta = map[string]fieldInfo{
	FieldTitle: {"Title", "the title of the film or show", CategoryBasic},
	FieldYear:  {"Year", "the release year", CategoryBasic},
	FieldVersion: {
		"Version", "edition information such as a director's cut or extended version", CategoryVersion,
	},
	FieldResolution: {"Resolution", "the video resolution", CategoryVideoQuality},
	FieldSource:     {"Source", "where the video was captured or ripped from", CategorySource},
	FieldStreamingPlatform: {
		"Streaming platform", "the streaming service the release came from", CategorySource,
	},
	FieldVideoCodec: {"Video codec", "the video encoding format", CategoryVideoCodec},
	FieldAudioCodec: {"Audio codec", "the audio encoding format", CategoryAudioCodec},
	FieldAudioChannels: {
		"Audio channels", "the channel layout, e.g. 2.0 (stereo), 5.1 or 7.1 (surround)", CategoryAudioCodec,
	},
	FieldAudioCodecChannels: {
		"Audio codec channels", "a specific audio codec and channel combination", CategoryAudioCodec,
	},
	FieldHDR:          {"HDR", "high dynamic range format", CategoryVideoQuality},
	FieldFrameRate:    {"Frame rate", "frames per second", CategoryVideoSpec},
	FieldColorDepth:   {"Color depth", "bits per color channel", CategoryVideoSpec},
	FieldReleaseGroup: {"Release group", "the group or person that published the release", CategoryRelease},
	FieldFileExtension: {
		"File extension", "the container format of the file", CategoryFile,
	},
	FieldSeason:   {"Season", "the season number", CategoryEpisode},
	FieldEpisode:  {"Episode", "the episode number", CategoryEpisode},
	FieldLanguage: {"Language", "the audio language", CategoryLanguage},
	FieldRegion:   {"Region", "the country or region of the release", CategoryRegion},
	FieldSubtitle: {
		"Subtitles", "subtitle information such as hardcoded or bilingual subtitles", CategorySubtitle,
	},
	FieldTags:      {"Tags", "special markers such as Complete or Hybrid", CategoryOther},
	FieldSceneInfo: {"Scene markers", "markers defined by the Scene release rules", CategoryRelease},
	FieldP2PInfo:   {"P2P markers", "extended markers used by P2P and Usenet groups", CategoryRelease},
}

func mergeDetail(dst **Detail, src *Detail) {
	if src != nil {
		d := *src
		*dst = &d
	}
}

func mergeString(dst **string, src *string) {
	if src != nil {
		s := *src
		*dst = &s
	}
}

func detailValue(d *Detail) string {
	if d == nil {
		return ""
	}
	return d.Value
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}
