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
	"strings"

	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/ZaparooProject/reelparse/pkg/rules"
)

// Segment is a run of a file name. RuleID is empty for text no rule
// matched.
type Segment struct {
	Text   string `json:"text" yaml:"text"`
	RuleID string `json:"ruleId,omitempty" yaml:"ruleId,omitempty"`
}

// Highlight splits name into segments attributed to the rules of res. The
// rules are replayed in match order, each against the name with earlier
// claims blanked out, the way the parser consumed it. The segments are in
// order and concatenate back to name.
func Highlight(name string, res *parser.Result, set *rules.Set) []Segment {
	if name == "" {
		return []Segment{}
	}
	if set == nil {
		set = rules.Default()
	}
	owner := make([]string, len(name))
	for _, id := range res.MatchedRules {
		r, ok := set.Get(id)
		if !ok {
			continue
		}
		m := r.Match(masked(name, owner))
		if m == nil || m.Text == "" {
			continue
		}
		start, end := unclaimedRun(owner, m.Index, m.Index+len(m.Text))
		for i := start; i < end; i++ {
			owner[i] = id
		}
	}
	return segments(name, owner)
}

// masked returns name with every claimed byte replaced by a space, keeping
// byte offsets stable.
func masked(name string, owner []string) string {
	b := []byte(name)
	for i := range b {
		if owner[i] != "" {
			b[i] = ' '
		}
	}
	return string(b)
}

// unclaimedRun returns the first run of unclaimed bytes inside [start, end).
func unclaimedRun(owner []string, start, end int) (int, int) {
	for start < end && owner[start] != "" {
		start++
	}
	stop := start
	for stop < end && owner[stop] == "" {
		stop++
	}
	return start, stop
}

func segments(name string, owner []string) []Segment {
	var segs []Segment
	var b strings.Builder
	cur := owner[0]
	for i := 0; i < len(name); i++ {
		if owner[i] != cur {
			segs = append(segs, Segment{Text: b.String(), RuleID: cur})
			b.Reset()
			cur = owner[i]
		}
		b.WriteByte(name[i])
	}
	return append(segs, Segment{Text: b.String(), RuleID: cur})
}

// Claimed returns the total length of the segments attributed to a rule.
func Claimed(segs []Segment) int {
	n := 0
	for _, s := range segs {
		if s.RuleID != "" {
			n += len(s.Text)
		}
	}
	return n
}
