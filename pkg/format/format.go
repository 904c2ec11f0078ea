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

// Package format turns parse results into display friendly records and
// highlights the parts of a file name each rule matched.
package format

import (
	"path"
	"strings"

	"github.com/ZaparooProject/reelparse/pkg/extensions"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/ZaparooProject/reelparse/pkg/rules"
)

// KeyValue is one entry of a composite field.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Field is one displayable part of a parse result.
type Field struct {
	Source      *SourceExplanation `json:"source,omitempty" yaml:"source,omitempty"`
	Extension   *extensions.Info   `json:"extension,omitempty" yaml:"extension,omitempty"`
	Key         string             `json:"key" yaml:"key"`
	Label       string             `json:"label" yaml:"label"`
	Value       string             `json:"value" yaml:"value"`
	Description string             `json:"description" yaml:"description"`
	Category    rules.Category     `json:"category" yaml:"category"`
	List        []string           `json:"list,omitempty" yaml:"list,omitempty"`
	Pairs       []KeyValue         `json:"pairs,omitempty" yaml:"pairs,omitempty"`
}

// RuleInfo describes a matched rule or title heuristic.
type RuleInfo struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Category    rules.Category `json:"category,omitempty" yaml:"category,omitempty"`
	Examples    []string       `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Formatted is a parse result prepared for display.
type Formatted struct {
	OriginalFileName string     `json:"originalFileName" yaml:"originalFileName"`
	Unrecognized     string     `json:"unrecognized,omitempty" yaml:"unrecognized,omitempty"`
	Fields           []Field    `json:"fields" yaml:"fields"`
	MatchedRules     []RuleInfo `json:"matchedRules" yaml:"matchedRules"`
}

var heuristicInfo = map[string]RuleInfo{
	parser.HeuristicYear: {
		Name:        "Title before year",
		Description: "the title is the text before the release year",
	},
	parser.HeuristicSeasonEpisode: {
		Name:        "Title before episode",
		Description: "the title is the text before the season and episode marker",
	},
	parser.HeuristicTechnical: {
		Name:        "Title before technical tokens",
		Description: "the title is the text before the first resolution or source token",
	},
	parser.HeuristicFallback: {
		Name:        "Fallback title",
		Description: "no boundary was found, so the remaining text is used as the title",
	},
}

// Format prepares res for display. Rule metadata is taken from set, which
// may be nil to fall back on the built-in rules.
func Format(res *parser.Result, set *rules.Set) Formatted {
	if set == nil {
		set = rules.Default()
	}
	out := Formatted{
		OriginalFileName: res.OriginalFileName,
		Unrecognized:     res.Unrecognized,
		Fields:           make([]Field, 0, len(rules.FieldKeys)),
		MatchedRules:     make([]RuleInfo, 0, len(res.MatchedRules)),
	}

	parts := &res.Parts
	for _, key := range parts.Keys() {
		f := Field{
			Key:         key,
			Label:       rules.FieldLabel(key),
			Description: rules.FieldDescription(key),
			Category:    rules.FieldCategory(key),
			Value:       parts.String(key),
		}
		switch key {
		case rules.FieldSource:
			if e, ok := LookupSource(f.Value); ok {
				f.Source = &e
			}
		case rules.FieldFileExtension:
			if info, ok := extensions.Lookup(f.Value); ok {
				f.Extension = &info
				f.Description = info.Name
			} else if parts.FileExtension.Value == parser.ExtensionUnspecified {
				f.Description = parts.FileExtension.Explanation
			}
		case rules.FieldTags:
			f.List = append([]string(nil), parts.Tags...)
			f.Value = strings.Join(parts.Tags, ", ")
		case rules.FieldSceneInfo:
			f.List = parts.SceneInfo.Flags()
			f.Value = strings.Join(f.List, ", ")
		case rules.FieldP2PInfo:
			for _, kv := range parts.P2PInfo.Values() {
				f.Pairs = append(f.Pairs, KeyValue{Key: kv[0], Value: kv[1]})
			}
		}
		out.Fields = append(out.Fields, f)
	}

	for _, id := range res.MatchedRules {
		out.MatchedRules = append(out.MatchedRules, describeRule(id, set))
	}
	return out
}

func describeRule(id string, set *rules.Set) RuleInfo {
	if info, ok := heuristicInfo[id]; ok {
		info.ID = id
		info.Category = rules.CategoryBasic
		return info
	}
	r, ok := set.Get(id)
	if !ok {
		return RuleInfo{ID: id, Name: id}
	}
	return RuleInfo{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Examples:    append([]string(nil), r.Examples...),
	}
}

// Field returns the formatted field with the given key.
func (f *Formatted) Field(key string) (Field, bool) {
	for _, fld := range f.Fields {
		if fld.Key == key {
			return fld, true
		}
	}
	return Field{}, false
}

// FileNameParts splits name into its base name and lowercase extension
// without the dot. Directories, with either slash style, are dropped and
// a dot file has no extension.
func FileNameParts(name string) (base, ext string) {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return "", ""
	}
	e := path.Ext(name)
	if e == "" || e == name {
		return name, ""
	}
	return strings.TrimSuffix(name, e), strings.ToLower(strings.TrimPrefix(e, "."))
}

var tokenCleaner = strings.NewReplacer(".", " ", "[", " ", "]", " ", "(", " ", ")", " ", "{", " ", "}", " ")

// Tokens splits a file name on dots, brackets and whitespace.
func Tokens(name string) []string {
	return strings.Fields(tokenCleaner.Replace(name))
}
