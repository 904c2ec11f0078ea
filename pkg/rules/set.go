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

import "fmt"

// Set is an ordered, immutable collection of rules keyed by id. Order is
// the order the rules were added in and is the order the parser scans them.
type Set struct {
	byID  map[string]Rule
	order []string
}

// NewSet builds a set from rules. A rule reusing an earlier id replaces it
// in place.
func NewSet(rs ...Rule) (*Set, error) {
	s := &Set{
		byID:  make(map[string]Rule, len(rs)),
		order: make([]string, 0, len(rs)),
	}
	for _, r := range rs {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, ok := s.byID[r.ID]; !ok {
			s.order = append(s.order, r.ID)
		}
		s.byID[r.ID] = r
	}
	return s, nil
}

// Build returns the built-in rules followed by the custom ones.
func Build(custom ...Rule) (*Set, error) {
	rs := append(Builtin(), custom...)
	s, err := NewSet(rs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule set: %w", err)
	}
	return s, nil
}

// Default returns a set of the built-in rules.
func Default() *Set {
	s, err := NewSet(Builtin()...)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the rule with the given id.
func (s *Set) Get(id string) (Rule, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// All returns every rule in scan order.
func (s *Set) All() []Rule {
	out := make([]Rule, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// IDs returns every rule id in scan order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ByCategory returns the rules of one category in scan order.
func (s *Set) ByCategory(c Category) []Rule {
	out := []Rule{}
	for _, id := range s.order {
		if r := s.byID[id]; r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.order)
}

// Infos returns the serializable description of every rule.
func (s *Set) Infos() []Info {
	out := make([]Info, 0, len(s.order))
	for _, id := range s.order {
		r := s.byID[id]
		out = append(out, r.Info())
	}
	return out
}
