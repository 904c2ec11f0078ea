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

// Package api serves the reelparse JSON-RPC 2.0 API over websocket and
// HTTP POST, plus a small REST endpoint for one-off parses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ZaparooProject/reelparse/pkg/api/methods"
	"github.com/ZaparooProject/reelparse/pkg/api/middleware"
	"github.com/ZaparooProject/reelparse/pkg/api/models"
	"github.com/ZaparooProject/reelparse/pkg/api/models/requests"
	"github.com/ZaparooProject/reelparse/pkg/api/validation"
	"github.com/ZaparooProject/reelparse/pkg/config"
	"github.com/ZaparooProject/reelparse/pkg/database/historydb"
	"github.com/ZaparooProject/reelparse/pkg/helpers/syncutil"
	"github.com/ZaparooProject/reelparse/pkg/metadata/omdb"
	"github.com/ZaparooProject/reelparse/pkg/metrics"
	"github.com/ZaparooProject/reelparse/pkg/parser"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const (
	maxRequestSize    = 1 << 20
	notificationQueue = 100
)

var (
	JSONRPCErrorParseError     = models.ErrorObject{Code: -32700, Message: "Parse error"}
	JSONRPCErrorInvalidRequest = models.ErrorObject{Code: -32600, Message: "Invalid Request"}
	JSONRPCErrorMethodNotFound = models.ErrorObject{Code: -32601, Message: "Method not found"}
	JSONRPCErrorInvalidParams  = models.ErrorObject{Code: -32602, Message: "Invalid params"}
	JSONRPCErrorInternalError  = models.ErrorObject{Code: -32603, Message: "Internal error"}
	JSONRPCErrorServerError    = models.ErrorObject{Code: -32000, Message: "Server error"}
)

type MethodHandler func(requests.RequestEnv) (any, error)

// MethodMap is the registry of JSON-RPC methods. Names are matched case
// insensitively.
type MethodMap struct {
	methods map[string]MethodHandler
	mu      syncutil.RWMutex
}

func NewMethodMap() *MethodMap {
	m := &MethodMap{methods: make(map[string]MethodHandler)}
	defaults := map[string]MethodHandler{
		// parsing
		models.MethodParse:          methods.HandleParse,
		models.MethodParseHighlight: methods.HandleParseHighlight,
		// rules
		models.MethodRules:         methods.HandleRules,
		models.MethodRulesGet:      methods.HandleRuleGet,
		models.MethodCategories:    methods.HandleCategories,
		models.MethodExtensions:    methods.HandleExtensions,
		models.MethodExtensionsGet: methods.HandleExtensionGet,
		// history
		models.MethodHistory:       methods.HandleHistory,
		models.MethodHistoryDelete: methods.HandleHistoryDelete,
		models.MethodHistoryClear:  methods.HandleHistoryClear,
		models.MethodHistoryExport: methods.HandleHistoryExport,
		// metadata
		models.MethodLookup: methods.HandleLookup,
		// settings
		models.MethodSettings:       methods.HandleSettings,
		models.MethodSettingsUpdate: methods.HandleSettingsUpdate,
		models.MethodSettingsReload: methods.HandleSettingsReload,
		// utils
		models.MethodVersion: methods.HandleVersion,
	}
	for name, fn := range defaults {
		m.methods[name] = fn
	}
	return m
}

func (m *MethodMap) AddMethod(name string, fn MethodHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(name)
	if _, ok := m.methods[key]; ok {
		return fmt.Errorf("method already exists: %s", name)
	}
	m.methods[key] = fn
	return nil
}

func (m *MethodMap) GetMethod(name string) (MethodHandler, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn, ok := m.methods[strings.ToLower(name)]
	return fn, ok
}

func (m *MethodMap) ListMethods() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.methods))
	for name := range m.methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Deps are the services method handlers work with. A nil Engine uses
// the built-in rules and the rest may be nil. /metrics is only served
// when Metrics is set.
type Deps struct {
	Engine       func() *parser.Engine
	ReloadConfig func() error
	History      *historydb.HistoryDB
	OMDb         *omdb.Client
	Metrics      *metrics.Metrics
}

type Server struct {
	ctx           context.Context
	cfg           *config.Instance
	methods       *MethodMap
	melody        *melody.Melody
	limiter       *middleware.IPRateLimiter
	router        chi.Router
	httpSrv       *http.Server
	listener      net.Listener
	cancel        context.CancelFunc
	notifications chan models.Notification
	deps          Deps
	wg            sync.WaitGroup
}

func NewServer(cfg *config.Instance, deps Deps) *Server {
	if deps.Engine == nil {
		deps.Engine = func() *parser.Engine { return parser.Default() }
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		ctx:           ctx,
		cancel:        cancel,
		cfg:           cfg,
		deps:          deps,
		methods:       NewMethodMap(),
		melody:        melody.New(),
		limiter:       middleware.NewIPRateLimiter(),
		notifications: make(chan models.Notification, notificationQueue),
	}
	s.melody.Config.MaxMessageSize = maxRequestSize
	s.melody.Upgrader.CheckOrigin = func(r *http.Request) bool {
		return originAllowed(r.Header.Get("Origin"), cfg.AllowedOrigins())
	}
	s.melody.HandleMessage(middleware.WebSocketRateLimitHandler(s.limiter, s.handleWSMessage))
	s.router = s.newRouter()
	return s
}

func (s *Server) Methods() *MethodMap {
	return s.methods
}

// Notifications is the queue broadcast to every websocket client.
func (s *Server) Notifications() chan<- models.Notification {
	return s.notifications
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.NoCache)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: append([]string{"http://localhost:*", "http://127.0.0.1:*"}, s.cfg.AllowedOrigins()...),
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.HTTPRateLimitMiddleware(s.limiter))

	r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
		if err := s.melody.HandleRequest(w, r); err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	})

	// websocket requests are long-lived so only plain HTTP gets a timeout
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(config.APIRequestTimeout))
		r.Post("/api", s.handlePostRequest)
		r.Get("/api/parse", s.handleRESTParse)
	})

	if s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	}

	return r
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	if slices.Contains(allowed, origin) {
		return true
	}
	host := strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://")
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host == "localhost" || host == "127.0.0.1" || host == "::1" || host == "[::1]"
}

func (s *Server) env(ctx context.Context, remoteAddr string, req *models.RequestObject) requests.RequestEnv {
	return requests.RequestEnv{
		Context:       ctx,
		Config:        s.cfg,
		Engine:        s.deps.Engine,
		ReloadConfig:  s.deps.ReloadConfig,
		History:       s.history(),
		OMDb:          s.deps.OMDb,
		Metrics:       s.deps.Metrics,
		Notifications: s.notifications,
		Params:        req.Params,
		ID:            *req.ID,
		IsLocal:       middleware.IsLoopbackAddr(remoteAddr),
	}
}

// history hides the store while history is turned off in the config.
func (s *Server) history() *historydb.HistoryDB {
	if s.deps.History == nil || !s.cfg.HistoryEnabled() {
		return nil
	}
	return s.deps.History
}

func errorResponse(id models.RPCID, e models.ErrorObject) []byte {
	data, err := json.Marshal(models.ResponseErrorObject{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &e,
	})
	if err != nil {
		log.Error().Err(err).Msg("error marshalling error response")
		return nil
	}
	return data
}

func errorObject(err error) models.ErrorObject {
	var verr *validation.Error
	if errors.Is(err, validation.ErrMissingParams) ||
		errors.Is(err, validation.ErrInvalidParams) ||
		errors.As(err, &verr) {
		e := JSONRPCErrorInvalidParams
		e.Message = e.Message + ": " + err.Error()
		return e
	}
	e := JSONRPCErrorServerError
	e.Message = err.Error()
	return e
}

// processMessage handles one raw JSON-RPC message and returns the encoded
// reply. A nil reply means none is due, as for notifications.
func (s *Server) processMessage(ctx context.Context, remoteAddr string, msg []byte) []byte {
	if !json.Valid(msg) {
		log.Debug().Msg("data not valid json")
		return errorResponse(models.NullRPCID, JSONRPCErrorParseError)
	}

	var req models.RequestObject
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Debug().Err(err).Msg("message is not a request object")
		return errorResponse(models.NullRPCID, JSONRPCErrorInvalidRequest)
	}

	id := models.NullRPCID
	if !req.ID.IsAbsent() {
		id = *req.ID
	}

	if req.JSONRPC != "2.0" {
		log.Debug().Str("jsonrpc", req.JSONRPC).Msg("unsupported payload version")
		return errorResponse(id, JSONRPCErrorInvalidRequest)
	}
	if req.Method == "" {
		return errorResponse(id, JSONRPCErrorInvalidRequest)
	}
	if req.ID.IsAbsent() {
		log.Debug().Str("method", req.Method).Msg("received notification, ignoring")
		return nil
	}

	fn, ok := s.methods.GetMethod(req.Method)
	if !ok {
		log.Debug().Str("method", req.Method).Msg("unknown method")
		return errorResponse(id, JSONRPCErrorMethodNotFound)
	}

	log.Debug().Str("method", req.Method).Str("id", id.String()).Msg("received request")
	result, err := fn(s.env(ctx, remoteAddr, &req))
	s.deps.Metrics.ObserveRequest(strings.ToLower(req.Method), err)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Msg("method returned error")
		return errorResponse(id, errorObject(err))
	}

	data, err := json.Marshal(models.ResponseObject{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
	if err != nil {
		log.Error().Err(err).Msg("error marshalling response")
		return errorResponse(id, JSONRPCErrorInternalError)
	}
	return data
}

func (s *Server) handleWSMessage(session *melody.Session, msg []byte) {
	// heartbeat
	if bytes.Equal(msg, []byte("ping")) {
		if err := session.Write([]byte("pong")); err != nil {
			log.Error().Err(err).Msg("sending pong")
		}
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, config.APIRequestTimeout)
	defer cancel()

	resp := s.processMessage(ctx, session.Request.RemoteAddr, msg)
	if resp == nil {
		return
	}
	if err := session.Write(resp); err != nil {
		log.Error().Err(err).Msg("error sending response")
	}
}

// handlePostRequest serves JSON-RPC over HTTP. Protocol errors are still
// HTTP 200 with the error in the body.
func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize+1))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) > maxRequestSize {
		http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
		return
	}

	resp := s.processMessage(r.Context(), r.RemoteAddr, body)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		log.Error().Err(err).Msg("error writing post response")
	}
}

// handleRESTParse returns the parse result of the name query parameter.
// Nothing is recorded in history.
func (s *Server) handleRESTParse(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	res := s.deps.Metrics.Parse(metrics.SourceREST, s.deps.Engine(), name)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error().Err(err).Msg("error writing parse response")
	}
}

func (s *Server) broadcastNotifications() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case n := <-s.notifications:
			data, err := json.Marshal(models.RequestObject{
				JSONRPC: "2.0",
				Method:  n.Method,
				Params:  n.Params,
			})
			if err != nil {
				log.Error().Err(err).Msg("marshalling notification")
				continue
			}
			if err := s.melody.Broadcast(data); err != nil {
				log.Error().Err(err).Msg("broadcasting notification")
			}
		}
	}
}

// Start listens on the configured address and serves in the background.
// The listener is bound before Start returns, so clients can connect
// straight away.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.APIListen())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.APIListen(), err)
	}
	return s.Serve(ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.listener = ln
	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	cleanupDone := s.limiter.StartCleanup(s.ctx)
	s.wg.Add(3)
	go func() {
		defer s.wg.Done()
		<-cleanupDone
	}()
	go s.broadcastNotifications()
	go func() {
		defer s.wg.Done()
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("api server stopped")
		}
	}()

	log.Info().Str("addr", ln.Addr().String()).Msg("api server started")
	return nil
}

// Addr is the address actually listened on, useful with port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown closes every websocket session, stops the HTTP server and
// waits for the background goroutines to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if err := s.melody.Close(); err != nil && !errors.Is(err, melody.ErrClosed) {
		log.Warn().Err(err).Msg("error closing websocket sessions")
	}
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}
	s.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	return nil
}
