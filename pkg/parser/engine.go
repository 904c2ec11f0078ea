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

// Package parser breaks a media release file name into its parts: title,
// year, resolution, codecs, release group and so on.
//
// Parsing runs in three stages. The extension is detected and a title is
// guessed from the boundary between the human readable name and the
// technical tokens. Then the high confidence rules are applied once each,
// in a fixed order. Finally the remaining rules are applied repeatedly
// until the text stops shrinking, and whatever is left over is reported as
// unrecognized.
package parser

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZaparooProject/reelparse/pkg/rules"
	"github.com/rs/zerolog/log"
)

const extensionRuleID = "file_extension"

var priorityOrder = []string{
	"release_group",
	extensionRuleID,
	"hybrid",
	"year",
	"scene_tags",
	"p2p_tags",
	"audio_codec",
	"audio_channels",
	"atmos_audio",
	"hdr",
	"video_codec",
	"resolution",
	"source",
	"streaming_platform",
	"version",
	"season_episode",
	"season",
	"episode",
}

// PriorityOrder returns the ids of the rules applied once, before the
// exhaustive pass, in application order. Ids missing from a rule set are
// skipped.
func PriorityOrder() []string {
	return slices.Clone(priorityOrder)
}

var (
	leadingWordRe   = regexp.MustCompile(`^[\w\-]+`)
	delimiterOnlyRe = regexp.MustCompile(`^[.\s_\-]+$`)
)

// Engine parses file names against a fixed rule set. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	set       *rules.Set
	extension *rules.Rule
	priority  []rules.Rule
	rest      []rules.Rule
}

// New returns an engine using the built-in rules plus custom. A custom
// rule with a built-in id replaces that rule.
func New(custom ...rules.Rule) (*Engine, error) {
	set, err := rules.Build(custom...)
	if err != nil {
		return nil, err
	}
	return NewWithSet(set), nil
}

// NewWithSet returns an engine for an already built rule set.
func NewWithSet(set *rules.Set) *Engine {
	e := &Engine{set: set}
	if r, ok := set.Get(extensionRuleID); ok {
		e.extension = &r
	}
	for _, id := range priorityOrder {
		if r, ok := set.Get(id); ok {
			e.priority = append(e.priority, r)
		}
	}
	for _, r := range set.All() {
		if !slices.Contains(priorityOrder, r.ID) {
			e.rest = append(e.rest, r)
		}
	}
	return e
}

// Rules returns the rule set the engine parses with.
func (e *Engine) Rules() *rules.Set {
	return e.set
}

// fragment is a piece of text no rule matched. glued marks a fragment
// stripped right before the next one with nothing in between.
type fragment struct {
	text  string
	glued bool
}

type parseState struct {
	seen      map[string]struct{}
	matched   []string
	fragments []fragment
	guess     titleGuess
	parts     rules.Fields
}

func (st *parseState) record(id string) {
	if _, ok := st.seen[id]; ok {
		return
	}
	st.seen[id] = struct{}{}
	st.matched = append(st.matched, id)
}

// apply runs r against text. On a non-empty match the fields are merged,
// the id is recorded and the first occurrence of the matched text is
// blanked out.
func (st *parseState) apply(r *rules.Rule, text string) (string, bool) {
	m, fields, ok := r.Apply(text)
	if !ok || m.Text == "" {
		return text, false
	}
	log.Debug().Str("rule", r.ID).Str("match", m.Text).Msg("rule matched")
	st.parts.Merge(&fields)
	st.record(r.ID)
	return strings.TrimSpace(strings.Replace(text, m.Text, " ", 1)), true
}

// stripLeading moves the leading word, or failing that the leading
// character, of text into the unrecognized fragments.
func (st *parseState) stripLeading(text string) string {
	frag := leadingWordRe.FindString(text)
	if frag == "" {
		_, size := utf8.DecodeRuneInString(text)
		frag = text[:size]
	}
	rest := text[len(frag):]
	r, _ := utf8.DecodeRuneInString(rest)
	st.fragments = append(st.fragments, fragment{
		text:  frag,
		glued: rest != "" && !unicode.IsSpace(r),
	})
	return strings.TrimSpace(rest)
}

// unglue marks the last fragment as standing alone, used when a rule
// match happened after it was stripped.
func (st *parseState) unglue() {
	if n := len(st.fragments); n > 0 {
		st.fragments[n-1].glued = false
	}
}

// leftovers returns the fragments worth reporting. Delimiters are
// dropped, as are words of the title and the release group found by the
// title heuristic. A title word with characters outside \w is stripped in
// several glued pieces, so glued runs are matched as a whole too.
func (st *parseState) leftovers() []string {
	if st.parts.Title != nil {
		st.guess.words = strings.Fields(st.parts.Title.Value)
	}
	frags := st.fragments
	kept := make([]string, 0, len(frags))
	for i := 0; i < len(frags); {
		if delimiterOnlyRe.MatchString(frags[i].text) {
			i++
			continue
		}
		j := i + 1
		run := frags[i].text
		for j < len(frags) && frags[j-1].glued && !delimiterOnlyRe.MatchString(frags[j].text) {
			run += frags[j].text
			j++
		}
		if j-i > 1 && st.guess.claims(run) {
			i = j
			continue
		}
		for _, f := range frags[i:j] {
			if !st.guess.claims(f.text) {
				kept = append(kept, f.text)
			}
		}
		i = j
	}
	return kept
}

// detectExtension records the container extension and returns name
// without it.
func (e *Engine) detectExtension(st *parseState, name string) string {
	if e.extension != nil {
		if m, fields, ok := e.extension.Apply(name); ok && fields.FileExtension != nil &&
			strings.HasSuffix(name, m.Text) {
			st.parts.Merge(&fields)
			st.record(extensionRuleID)
			return name[:len(name)-len(m.Text)]
		}
	}
	st.parts.FileExtension = &rules.FileExtension{
		Value:       ExtensionUnspecified,
		Explanation: ExtensionMissingNote,
	}
	st.record(extensionRuleID)
	return name
}

// Parse breaks name into its parts. It never fails: anything no rule
// accounts for ends up in Unrecognized, or becomes the title when no title
// was found.
func (e *Engine) Parse(name string) *Result {
	st := &parseState{seen: make(map[string]struct{})}

	remaining := e.detectExtension(st, name)
	st.guessTitle(remaining)

	for i := range e.priority {
		remaining, _ = st.apply(&e.priority[i], remaining)
	}

	last := -1
	for remaining != "" && len(remaining) != last {
		last = len(remaining)
		matched := false
		for i := range e.rest {
			var ok bool
			if remaining, ok = st.apply(&e.rest[i], remaining); ok {
				matched = true
				st.unglue()
				break
			}
		}
		if !matched {
			remaining = st.stripLeading(remaining)
		}
	}

	unrecognized := strings.Join(st.leftovers(), " ")

	st.parts.Tags = dedupe(st.parts.Tags)

	if st.parts.Title == nil && unrecognized != "" {
		if title := CleanupTitle(unrecognized); title != "" {
			st.parts.Title = rules.NewDetail(rules.FieldTitle, title)
			st.record(HeuristicFallback)
		}
		unrecognized = ""
	}

	if unrecognized != "" {
		log.Debug().Str("name", name).Str("unrecognized", unrecognized).Msg("parsed with leftovers")
	}

	return &Result{
		OriginalFileName: name,
		Parts:            st.parts,
		MatchedRules:     st.matched,
		Unrecognized:     unrecognized,
	}
}

// Parse parses name with the built-in rules.
func Parse(name string) *Result {
	return defaultEngine.Parse(name)
}

var defaultEngine = NewWithSet(rules.Default())

// Default returns the shared engine built from the built-in rules.
func Default() *Engine {
	return defaultEngine
}

func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
