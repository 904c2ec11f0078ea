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

package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogging(t *testing.T) {
	// modifies the global logger
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	logDir := filepath.Join(t.TempDir(), "logs", "nested")
	var buf bytes.Buffer
	require.NoError(t, InitLogging(logDir, []io.Writer{&buf}))

	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	log.Info().Str("file", "a.mkv").Msg("parsed file")
	assert.Contains(t, buf.String(), `"file":"a.mkv"`)
	assert.Contains(t, buf.String(), `"message":"parsed file"`)

	_, err = LogWriter().Write([]byte("direct\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "direct")

	data, err := os.ReadFile(filepath.Join(logDir, config.LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "parsed file")
}

func TestInitLoggingBadDir(t *testing.T) {
	err := InitLogging("/proc/invalid\x00path", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestPaths(t *testing.T) {
	t.Parallel()

	for _, p := range []string{ConfigDir(), DataDir(), LogDir()} {
		assert.True(t, filepath.IsAbs(p), p)
		assert.True(t, strings.Contains(p, config.AppName), p)
	}
	assert.Equal(t, config.HistoryDbFile, filepath.Base(HistoryDBPath()))
	assert.Equal(t, DataDir(), filepath.Dir(HistoryDBPath()))
}
