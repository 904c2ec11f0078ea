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
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog/log"
)

// DefaultMatchTimeout bounds a single evaluation of a user supplied
// pattern. Built-in patterns run without a timeout.
const DefaultMatchTimeout = 100 * time.Millisecond

const patternOptions = regexp2.IgnoreCase | regexp2.ECMAScript

// Pattern is a compiled rule pattern. Patterns are case-insensitive and
// support lookahead.
type Pattern struct {
	re  *regexp2.Regexp
	src string
}

// Compile parses a rule pattern.
func Compile(expr string) (*Pattern, error) {
	re, err := regexp2.Compile(expr, patternOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
	}
	return &Pattern{re: re, src: expr}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// WithTimeout returns a copy of p that gives up after d.
func (p *Pattern) WithTimeout(d time.Duration) *Pattern {
	re := regexp2.MustCompile(p.src, patternOptions)
	re.MatchTimeout = d
	return &Pattern{re: re, src: p.src}
}

func (p *Pattern) String() string {
	return p.src
}

// Match is the first occurrence of a pattern in a text.
type Match struct {
	// Text is the whole matched substring.
	Text string
	// Groups holds the capture groups, index 0 being the whole match.
	// Groups that did not participate are empty.
	Groups []string
	// Index is the byte offset of Text in the searched string.
	Index int
}

// Group returns capture group i, or "" if it does not exist.
func (m *Match) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// FindString returns the first match of p in text, or nil when there is
// none.
func (p *Pattern) FindString(text string) (*Match, error) {
	rm, err := p.re.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", p.src, err)
	}
	if rm == nil {
		return nil, nil
	}
	groups := rm.Groups()
	m := &Match{
		Text:   rm.String(),
		Index:  byteOffset(text, rm.Index),
		Groups: make([]string, len(groups)),
	}
	for i := range groups {
		m.Groups[i] = groups[i].String()
	}
	return m, nil
}

// MatchString reports whether text contains a match of p.
func (p *Pattern) MatchString(text string) bool {
	ok, err := p.re.MatchString(text)
	return err == nil && ok
}

// byteOffset converts a rune index into a byte offset of s.
func byteOffset(s string, runeIdx int) int {
	n := 0
	for i := range s {
		if n == runeIdx {
			return i
		}
		n++
	}
	return len(s)
}

// ExtractFunc turns a match into the fields it contributes.
type ExtractFunc func(m *Match) Fields

// Rule is a named pattern with an extraction function.
type Rule struct {
	Pattern     *Pattern
	Extract     ExtractFunc
	ID          string
	Name        string
	Description string
	Category    Category
	Examples    []string
}

// ErrInvalidRule is returned for rules missing an id, pattern or extractor.
var ErrInvalidRule = errors.New("invalid rule")

// Validate checks that the rule can be evaluated.
func (r *Rule) Validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidRule)
	case r.Pattern == nil:
		return fmt.Errorf("%w: %s has no pattern", ErrInvalidRule, r.ID)
	case r.Extract == nil:
		return fmt.Errorf("%w: %s has no extractor", ErrInvalidRule, r.ID)
	case !r.Category.Valid():
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidRule, r.ID, r.Category)
	}
	return nil
}

// Match evaluates the rule against text. A pattern that times out is
// logged and treated as not matching.
func (r *Rule) Match(text string) *Match {
	m, err := r.Pattern.FindString(text)
	if err != nil {
		log.Warn().Err(err).Str("rule", r.ID).Msg("rule evaluation failed")
		return nil
	}
	return m
}

// Apply matches the rule and extracts its fields.
func (r *Rule) Apply(text string) (*Match, Fields, bool) {
	m := r.Match(text)
	if m == nil {
		return nil, Fields{}, false
	}
	return m, r.Extract(m), true
}

// Info is the serializable description of a rule.
type Info struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Pattern     string   `json:"pattern" yaml:"pattern"`
	Examples    []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Info returns the serializable description of r.
func (r *Rule) Info() Info {
	return Info{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Pattern:     r.Pattern.String(),
		Examples:    r.Examples,
	}
}
