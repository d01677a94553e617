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

	"github.com/adityak74/open-context/store"
)

func (s *Server) handleListBubbles(w http.ResponseWriter, r *http.Request) {
	groups, err := s.rt.Store.ListGroups()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

type createBubbleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateBubble(w http.ResponseWriter, r *http.Request) {
	var req createBubbleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	group, err := s.rt.Store.CreateGroup(req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

type updateBubbleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) handleUpdateBubble(w http.ResponseWriter, r *http.Request) {
	var req updateBubbleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	group, err := s.rt.Store.UpdateGroup(mux.Vars(r)["id"], req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteBubble(w http.ResponseWriter, r *http.Request) {
	mode := store.Orphan
	if r.URL.Query().Get("mode") == "cascade" {
		mode = store.Cascade
	}
	if err := s.rt.Store.DeleteGroup(mux.Vars(r)["id"], mode); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}

func (s *Server) handleBubbleContexts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.rt.Store.ByGroup(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
