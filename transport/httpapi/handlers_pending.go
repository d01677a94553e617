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

	apierrors "github.com/adityak74/open-context/pkg/errors"
)

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := s.rt.Control.Pending()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleApprovePending(w http.ResponseWriter, r *http.Request) {
	result, err := s.rt.Control.Approve(mux.Vars(r)["id"], s.rt.Improver.Executor())
	if err != nil {
		writeError(w, err)
		return
	}
	if !result.Applicable {
		writeError(w, apierrors.ErrNotFound.WithMessage("no pending action with that ID").WithDetail("id", mux.Vars(r)["id"]))
		return
	}
	s.hub.broadcast(event{Type: "pending-action-approved", Payload: result})
	writeJSON(w, http.StatusOK, result)
}

type dismissRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleDismissPending(w http.ResponseWriter, r *http.Request) {
	var req dismissRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.rt.Control.Dismiss(mux.Vars(r)["id"], req.Reason); err != nil {
		writeError(w, err)
		return
	}
	s.hub.broadcast(event{Type: "pending-action-dismissed", Payload: mux.Vars(r)["id"]})
	writeNoContent(w)
}

type bulkPendingRequest struct {
	ActionIDs []string `json:"action_ids"`
	Decision  string   `json:"decision"` // "approve" or "dismiss"
	Reason    string   `json:"reason"`
}

func (s *Server) handleBulkPending(w http.ResponseWriter, r *http.Request) {
	var req bulkPendingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	switch req.Decision {
	case "approve":
		results := s.rt.Control.ApproveBatch(req.ActionIDs, s.rt.Improver.Executor())
		s.hub.broadcast(event{Type: "pending-actions-bulk-approved", Payload: results})
		writeJSON(w, http.StatusOK, results)
	case "dismiss":
		errs := s.rt.Control.DismissBatch(req.ActionIDs, req.Reason)
		results := make([]map[string]interface{}, len(req.ActionIDs))
		for i, id := range req.ActionIDs {
			r := map[string]interface{}{"id": id, "ok": errs[i] == nil}
			if errs[i] != nil {
				r["error"] = errs[i].Error()
			}
			results[i] = r
		}
		s.hub.broadcast(event{Type: "pending-actions-bulk-dismissed", Payload: results})
		writeJSON(w, http.StatusOK, results)
	default:
		writeError(w, apierrors.ErrInvalidInput.WithMessage("decision must be approve or dismiss").WithDetail("decision", req.Decision))
	}
}
