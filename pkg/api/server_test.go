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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	"github.com/ZaparooProject/reelparse/pkg/metrics"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/ZaparooProject/reelparse/pkg/testing/helpers"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const matrixName = "The.Matrix.1999.1080p.BluRay.x264-SPARKS.mkv"

func newTestServer(t *testing.T, history *historydb.HistoryDB) *Server {
	t.Helper()
	s := NewServer(helpers.NewTestConfig(t), Deps{
		Engine:  parser.Default,
		History: history,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, s.Shutdown(ctx))
	})
	return s
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type testResponse struct {
	Result json.RawMessage     `json:"result"`
	Error  *models.ErrorObject `json:"error"`
	ID     json.RawMessage     `json:"id"`
}

func decode(t *testing.T, data []byte) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(data, &resp), string(data))
	return resp
}

func TestPostRequest(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	require.NoError(t, s.Methods().AddMethod("test.echo", func(_ requests.RequestEnv) (any, error) {
		return map[string]string{"echo": "success"}, nil
	}))
	require.NoError(t, s.Methods().AddMethod("test.error", func(_ requests.RequestEnv) (any, error) {
		return nil, errors.New("test error")
	}))

	tests := []struct {
		name     string
		body     string
		wantID   string
		wantCode int
		status   int
	}{
		{name: "echo", body: `{"jsonrpc":"2.0","id":1,"method":"test.echo"}`, wantID: "1", status: http.StatusOK},
		{name: "case insensitive", body: `{"jsonrpc":"2.0","id":"a","method":"TEST.ECHO"}`, wantID: `"a"`, status: http.StatusOK},
		{name: "method error", body: `{"jsonrpc":"2.0","id":2,"method":"test.error"}`, wantID: "2", wantCode: -32000, status: http.StatusOK},
		{name: "parse error", body: `{not json`, wantID: "null", wantCode: -32700, status: http.StatusOK},
		{name: "bad version", body: `{"jsonrpc":"1.0","id":3,"method":"test.echo"}`, wantID: "3", wantCode: -32600, status: http.StatusOK},
		{name: "object id", body: `{"jsonrpc":"2.0","id":{},"method":"test.echo"}`, wantID: "null", wantCode: -32600, status: http.StatusOK},
		{name: "unknown method", body: `{"jsonrpc":"2.0","id":4,"method":"nope"}`, wantID: "4", wantCode: -32601, status: http.StatusOK},
		{name: "invalid params", body: `{"jsonrpc":"2.0","id":5,"method":"parse","params":{}}`, wantID: "5", wantCode: -32602, status: http.StatusOK},
		{name: "notification", body: `{"jsonrpc":"2.0","method":"test.echo"}`, status: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := post(t, s.Handler(), tt.body)
			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Empty(t, rec.Body.String())
				return
			}
			resp := decode(t, rec.Body.Bytes())
			assert.JSONEq(t, tt.wantID, string(resp.ID))
			if tt.wantCode == 0 {
				assert.Nil(t, resp.Error)
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestPostRequestTooLarge(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	body := `{"jsonrpc":"2.0","id":1,"method":"parse","params":{"name":"` +
		strings.Repeat("a", maxRequestSize) + `"}}`
	rec := post(t, s.Handler(), body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestPostParseSavesHistory(t *testing.T) {
	t.Parallel()
	history := helpers.NewHistoryDB(t)
	s := newTestServer(t, history)

	rec := post(t, s.Handler(), `{"jsonrpc":"2.0","id":1,"method":"parse","params":{"name":"`+matrixName+`"}}`)
	resp := decode(t, rec.Body.Bytes())
	require.Nil(t, resp.Error)

	var parsed models.ParseResponse
	require.NoError(t, json.Unmarshal(resp.Result, &parsed))
	assert.Equal(t, "The Matrix", parsed.Result.Title())
	assert.NotEmpty(t, parsed.HistoryID)

	entries, err := history.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, matrixName, entries[0].FileName)

	rec = post(t, s.Handler(), `{"jsonrpc":"2.0","id":2,"method":"parse","params":{"name":"a.mkv","save":false}}`)
	require.Nil(t, decode(t, rec.Body.Bytes()).Error)
	entries, err = history.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistoryHiddenWhenDisabled(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, helpers.NewHistoryDB(t))
	s.cfg.SetHistoryEnabled(false)

	rec := post(t, s.Handler(), `{"jsonrpc":"2.0","id":1,"method":"history"}`)
	resp := decode(t, rec.Body.Bytes())
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "history is disabled")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := NewServer(helpers.NewTestConfig(t), Deps{
		Engine:  parser.Default,
		Metrics: metrics.New(),
	})
	t.Cleanup(func() { assert.NoError(t, s.Shutdown(context.Background())) })

	rec := post(t, s.Handler(), `{"jsonrpc":"2.0","id":1,"method":"parse","params":{"name":"`+matrixName+`"}}`)
	require.Nil(t, decode(t, rec.Body.Bytes()).Error)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parse?name=a.mkv", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `reelparse_parser_parses_total{source="api"} 1`)
	assert.Contains(t, body, `reelparse_parser_parses_total{source="rest"} 1`)
	assert.Contains(t, body, `reelparse_api_requests_total{method="parse",outcome="ok"} 1`)

	plain := newTestServer(t, nil)
	rec = httptest.NewRecorder()
	plain.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRESTParse(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/parse?name="+matrixName, http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res parser.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, matrixName, res.OriginalFileName)
	assert.Equal(t, "1999", res.Parts.Year.Value)

	req = httptest.NewRequest(http.MethodGet, "/api/parse", http.NoBody)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodMap(t *testing.T) {
	t.Parallel()
	m := NewMethodMap()

	_, ok := m.GetMethod(models.MethodParse)
	assert.True(t, ok)
	require.Error(t, m.AddMethod("Parse", func(requests.RequestEnv) (any, error) { return nil, nil }))
	require.NoError(t, m.AddMethod("custom.method", func(requests.RequestEnv) (any, error) { return nil, nil }))

	names := m.ListMethods()
	assert.Contains(t, names, "custom.method")
	assert.Contains(t, names, models.MethodVersion)
	assert.IsNonDecreasing(t, names)
}

func TestOriginAllowed(t *testing.T) {
	t.Parallel()
	allowed := []string{"https://app.example.com"}

	assert.True(t, originAllowed("", allowed))
	assert.True(t, originAllowed("http://localhost:3000", allowed))
	assert.True(t, originAllowed("http://127.0.0.1", allowed))
	assert.True(t, originAllowed("https://app.example.com", allowed))
	assert.False(t, originAllowed("https://evil.example.com", allowed))
}

func dialWS(t *testing.T, addr string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+"/api", nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func TestWebSocketRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, helpers.NewHistoryDB(t))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, s.Serve(ln))

	conn := dialWS(t, s.Addr())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(msg))

	req := `{"jsonrpc":"2.0","id":"p1","method":"parse","params":{"name":"` + matrixName + `"}}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(req)))

	// the reply and the history notification can arrive in either order
	var gotReply, gotNotification bool
	for range 2 {
		_, msg, err = conn.ReadMessage()
		require.NoError(t, err)
		var obj map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(msg, &obj))
		if method, ok := obj["method"]; ok {
			assert.JSONEq(t, `"`+models.NotificationHistoryAdded+`"`, string(method))
			gotNotification = true
			continue
		}
		assert.JSONEq(t, `"p1"`, string(obj["id"]))
		assert.NotContains(t, obj, "error")
		gotReply = true
	}
	assert.True(t, gotReply)
	assert.True(t, gotNotification)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	header := http.Header{}
	header.Set("Origin", "https://evil.example.com")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServeAndShutdownNoLeaks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := NewServer(helpers.NewTestConfig(t), Deps{Engine: parser.Default})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, s.Serve(ln))

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","id":1,"method":"version"}`)
	resp, err := client.Post("http://"+s.Addr()+"/api", "application/json", body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}
