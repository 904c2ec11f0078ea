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

package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() {
		_ = r.Close()
	}()
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestRun(t *testing.T) {
	t.Parallel()
	buildDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "reelparse"), []byte("bin"), 0o600))
	license := filepath.Join(t.TempDir(), "LICENSE")
	require.NoError(t, os.WriteFile(license, []byte("GPL"), 0o600))

	require.NoError(t, run(buildDir, "reelparse", "reelparse.zip", license))

	assert.ElementsMatch(t,
		[]string{"reelparse", licenseName, readmeName, exampleConfigName},
		zipNames(t, filepath.Join(buildDir, "reelparse.zip")),
	)
}

func TestRunWithoutLicense(t *testing.T) {
	t.Parallel()
	buildDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "reelparse"), []byte("bin"), 0o600))

	require.NoError(t, run(buildDir, "reelparse", "out.zip", filepath.Join(t.TempDir(), "missing")))
	assert.NotContains(t, zipNames(t, filepath.Join(buildDir, "out.zip")), licenseName)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	err := run(filepath.Join(t.TempDir(), "nope"), "reelparse", "out.zip", "LICENSE")
	require.ErrorContains(t, err, "does not exist")

	err = run(t.TempDir(), "reelparse", "out.zip", "LICENSE")
	require.ErrorContains(t, err, "binary file")
}

func TestExampleConfigLoads(t *testing.T) {
	t.Parallel()
	data, err := exampleConfig()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	dir := "/home/user/.config/reelparse"
	require.NoError(t, fs.MkdirAll(dir, 0o750))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, config.CfgFile), data, 0o600))

	cfg, err := config.NewConfigWithFs(fs, dir, config.BaseDefaults)
	require.NoError(t, err)
	require.Len(t, cfg.CustomRules(), 1)
	assert.Equal(t, "festival_cut", cfg.CustomRules()[0].ID)
	assert.Equal(t, config.DefaultAPIPort, cfg.APIPort())
}
