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

import (
	"os"
	"strings"
)

const (
	DefaultOMDbRequestsPerMinute = 60
	OMDbKeyEnv                   = "REELPARSE_OMDB_API_KEY"
)

type OMDb struct {
	APIKey            string `toml:"api_key"`
	RequestsPerMinute int    `toml:"requests_per_minute" validate:"gte=0"`
}

// OMDbAPIKey returns the key from REELPARSE_OMDB_API_KEY when it's set,
// otherwise the one in the config file.
func (c *Instance) OMDbAPIKey() string {
	if key := strings.TrimSpace(os.Getenv(OMDbKeyEnv)); key != "" {
		return key
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.OMDb.APIKey
}

func (c *Instance) SetOMDbAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.OMDb.APIKey = strings.TrimSpace(key)
}

// OMDbRequestsPerMinute of 0 disables request pacing.
func (c *Instance) OMDbRequestsPerMinute() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.OMDb.RequestsPerMinute
}
