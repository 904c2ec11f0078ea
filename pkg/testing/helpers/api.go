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
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/olahol/melody"
	"github.com/stretchr/testify/require"
)

// WebSocketTestServer is a melody websocket served on every path of an
// httptest server.
type WebSocketTestServer struct {
	Server *httptest.Server
	Melody *melody.Melody
	Port   int
}

// NewWebSocketTestServer hands every received message to handler. The
// server is closed when the test ends.
func NewWebSocketTestServer(
	t *testing.T,
	handler func(*melody.Session, []byte),
	onConnect ...func(*melody.Session),
) *WebSocketTestServer {
	t.Helper()

	m := melody.New()
	m.HandleMessage(handler)
	for _, fn := range onConnect {
		m.HandleConnect(fn)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = m.HandleRequest(w, r)
	}))
	t.Cleanup(func() {
		_ = m.Close()
		srv.Close()
	})

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return &WebSocketTestServer{
		Server: srv,
		Melody: m,
		Port:   port,
	}
}

// WebSocketURL is the ws:// address of path on the server.
func (s *WebSocketTestServer) WebSocketURL(path string) string {
	return "ws://127.0.0.1:" + strconv.Itoa(s.Port) + path
}
