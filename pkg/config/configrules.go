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
	"fmt"
	"slices"

	"github.com/ZaparooProject/reelparse/pkg/rules"
)

type Rules struct {
	Custom []rules.Definition `toml:"custom,omitempty"`
}

// CustomRules returns the compiled custom rules from the last successful
// load.
func (c *Instance) CustomRules() []rules.Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.customRules)
}

func (c *Instance) CustomRuleDefinitions() []rules.Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Rules.Custom)
}

// SetCustomRules replaces the custom rules. Nothing changes if any of the
// definitions is invalid.
func (c *Instance) SetCustomRules(defs []rules.Definition) error {
	custom, err := rules.FromDefinitions(defs)
	if err != nil {
		return fmt.Errorf("invalid custom rule: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Rules.Custom = slices.Clone(defs)
	c.customRules = custom
	return nil
}
