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
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"storePath":     s.rt.Config.Store.StorePath,
		"awarenessPath": s.rt.Config.Store.AwarenessPath,
		"lmHost":        s.rt.Config.Analyzer.Endpoint,
	})
}

func (s *Server) handleListContexts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.rt.Store.List(r.URL.Query().Get("tag"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSearchContexts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.rt.Store.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type createContextRequest struct {
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Source   string   `json:"source"`
	BubbleID string   `json:"bubbleId"`
}

func (s *Server) handleCreateContext(w http.ResponseWriter, r *http.Request) {
	var req createContextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	entry, err := s.rt.Store.Create(req.Content, req.Source, req.Tags, req.BubbleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	entry, err := s.rt.Store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type updateContextRequest struct {
	Content  *string  `json:"content"`
	Tags     []string `json:"tags"`
	Source   *string  `json:"source"`
	BubbleID *string  `json:"bubbleId"`
}

func (s *Server) handleUpdateContext(w http.ResponseWriter, r *http.Request) {
	var req updateContextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	entry, err := s.rt.Store.Update(mux.Vars(r)["id"], req.Content, req.Tags, req.Source, req.BubbleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteContext(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.Store.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}
