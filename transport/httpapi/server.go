// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/adityak74/open-context/core/middleware"
	"github.com/adityak74/open-context/observability/logging"
	"github.com/adityak74/open-context/runtime"
)

// Server is the REST + WebSocket transport over one Runtime.
type Server struct {
	rt     *runtime.Runtime
	hub    *eventHub
	ticker *ticker
	http   *http.Server
	logger logging.Logger
}

// New builds a Server bound to addr, wired to rt. It does not start
// listening until ListenAndServe is called.
func New(rt *runtime.Runtime, addr string) *Server {
	s := &Server{
		rt:     rt,
		hub:    newEventHub(),
		logger: rt.Logger,
	}

	router := mux.NewRouter()
	s.routes(router)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)

	handler = middleware.NewChain(middleware.APIKeyAuth(rt.Config.Server.APIKey, s.logger)).Then(handler)

	if rt.Observability != nil {
		handler = rt.Observability.RequestMiddleware().Then(handler)
	}

	s.http = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  rt.Config.Server.ReadTimeout,
		WriteTimeout: rt.Config.Server.WriteTimeout,
	}

	if rt.Config.Tick.Enabled {
		s.ticker = newTicker(rt, s.hub, rt.Config.Tick.Interval)
	}

	return s
}

func (s *Server) routes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleEvents)

	api.HandleFunc("/contexts", s.handleListContexts).Methods(http.MethodGet)
	api.HandleFunc("/contexts", s.handleCreateContext).Methods(http.MethodPost)
	api.HandleFunc("/contexts/search", s.handleSearchContexts).Methods(http.MethodGet)
	api.HandleFunc("/contexts/{id}", s.handleGetContext).Methods(http.MethodGet)
	api.HandleFunc("/contexts/{id}", s.handleUpdateContext).Methods(http.MethodPut)
	api.HandleFunc("/contexts/{id}", s.handleDeleteContext).Methods(http.MethodDelete)

	api.HandleFunc("/schema", s.handleGetSchema).Methods(http.MethodGet)
	api.HandleFunc("/schema", s.handlePutSchema).Methods(http.MethodPut)

	api.HandleFunc("/awareness", s.handleAwareness).Methods(http.MethodGet)
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)

	api.HandleFunc("/pending-actions", s.handleListPending).Methods(http.MethodGet)
	api.HandleFunc("/pending-actions/bulk", s.handleBulkPending).Methods(http.MethodPost)
	api.HandleFunc("/pending-actions/{id}/approve", s.handleApprovePending).Methods(http.MethodPost)
	api.HandleFunc("/pending-actions/{id}/dismiss", s.handleDismissPending).Methods(http.MethodPost)

	api.HandleFunc("/bubbles", s.handleListBubbles).Methods(http.MethodGet)
	api.HandleFunc("/bubbles", s.handleCreateBubble).Methods(http.MethodPost)
	api.HandleFunc("/bubbles/{id}", s.handleUpdateBubble).Methods(http.MethodPut)
	api.HandleFunc("/bubbles/{id}", s.handleDeleteBubble).Methods(http.MethodDelete)
	api.HandleFunc("/bubbles/{id}/contexts", s.handleBubbleContexts).Methods(http.MethodGet)

	if s.rt.Observability != nil {
		r.PathPrefix("/").Handler(s.rt.Observability.HTTPHandler())
	}
}

// ListenAndServe starts the ticker (if enabled) and blocks serving HTTP
// until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	if s.ticker != nil {
		s.ticker.start()
	}
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the ticker, drains in-flight requests up to the
// configured shutdown timeout, and closes the event hub.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.ticker != nil {
		s.ticker.stop()
	}
	s.hub.closeAll()

	timeout := s.rt.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
