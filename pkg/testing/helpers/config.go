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

// Package helpers has shared setup for tests that need a config, a
// history database or a websocket peer.
package helpers

import (
	"testing"

	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TestConfigDir is where NewTestConfig writes its config file inside the
// in-memory filesystem.
const TestConfigDir = "/home/user/.config/reelparse"

// NewMemoryFS returns an empty in-memory filesystem.
func NewMemoryFS() afero.Fs {
	return afero.NewMemMapFs()
}

// NewTestConfig returns a config with the base defaults backed by an
// in-memory filesystem.
func NewTestConfig(t *testing.T) *config.Instance {
	t.Helper()
	cfg, err := config.NewConfigWithFs(NewMemoryFS(), TestConfigDir, config.BaseDefaults)
	require.NoError(t, err)
	return cfg
}

// NewTestConfigWithPort is NewTestConfig with the API port set.
func NewTestConfigWithPort(t *testing.T, port int) *config.Instance {
	t.Helper()
	cfg := NewTestConfig(t)
	cfg.SetAPIPort(port)
	return cfg
}
