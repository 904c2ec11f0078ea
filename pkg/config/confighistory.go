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

package config

const DefaultHistoryMaxEntries = 10

type History struct {
	Enabled    bool `toml:"enabled"`
	MaxEntries int  `toml:"max_entries" validate:"gte=0,lte=10000"`
}

func (c *Instance) HistoryEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.History.Enabled
}

func (c *Instance) SetHistoryEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.History.Enabled = enabled
}

// HistoryMaxEntries is the number of parses kept, newest first.
func (c *Instance) HistoryMaxEntries() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.History.MaxEntries < 1 {
		return DefaultHistoryMaxEntries
	}
	return c.vals.History.MaxEntries
}
