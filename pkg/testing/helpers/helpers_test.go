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
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/olahol/melody"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestConfig(t *testing.T) {
	t.Parallel()
	cfg := NewTestConfig(t)
	assert.Equal(t, config.DefaultAPIPort, cfg.APIPort())
	assert.Equal(t, filepath.Join(TestConfigDir, config.CfgFile), cfg.Path())

	cfg = NewTestConfigWithPort(t, 9000)
	assert.Equal(t, 9000, cfg.APIPort())
}

func TestNewMemoryFSIsolated(t *testing.T) {
	t.Parallel()
	a, b := NewMemoryFS(), NewMemoryFS()
	require.NoError(t, afero.WriteFile(a, "/x", []byte("1"), 0o600))
	ok, err := afero.Exists(b, "/x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewHistoryDB(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	db := NewHistoryDB(t, historydb.WithClock(clock))

	entry, err := db.Save(ctx, "Movie.2020.mkv", parser.Parse("Movie.2020.mkv"))
	require.NoError(t, err)
	assert.True(t, entry.Timestamp.Equal(clock.Now()))

	entries, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Movie.2020.mkv", entries[0].FileName)
}

func TestWebSocketTestServer(t *testing.T) {
	t.Parallel()
	srv := NewWebSocketTestServer(t, func(s *melody.Session, msg []byte) {
		_ = s.Write(append([]byte("echo:"), msg...))
	})

	conn, resp, err := websocket.DefaultDialer.Dial(srv.WebSocketURL("/api"), nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hi")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, got, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", string(got))
}
