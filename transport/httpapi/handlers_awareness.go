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

	apierrors "github.com/adityak74/open-context/pkg/errors"
	"github.com/adityak74/open-context/runtime"
	"github.com/adityak74/open-context/store"
)

func (s *Server) handleAwareness(w http.ResponseWriter, r *http.Request) {
	model, err := s.rt.SelfModel(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

type analyzeRequest struct {
	Action string                 `json:"action"`
	Params map[string]interface{} `json:"params"`
}

type analyzeResponse struct {
	Source string      `json:"source"`
	Result interface{} `json:"result"`
}

// handleAnalyze dispatches to one of the analyzer's ad hoc operations by
// name, mirroring the MCP tools that wrap the same analyzer methods.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if s.rt.Analyzer == nil {
		writeError(w, apierrors.ErrInvalidInput.WithMessage("analyzer is not configured"))
		return
	}

	ctx := r.Context()
	switch req.Action {
	case "suggest_schema":
		untyped, err := untypedEntries(s.rt)
		if err != nil {
			writeError(w, err)
			return
		}
		suggestions, source := s.rt.Analyzer.SuggestSchema(ctx, untyped)
		writeJSON(w, http.StatusOK, analyzeResponse{Source: string(source), Result: suggestions})

	case "summarize":
		entries, err := entriesForAnalysis(s.rt, req.Params)
		if err != nil {
			writeError(w, err)
			return
		}
		focus, _ := req.Params["focus"].(string)
		summary, source := s.rt.Analyzer.Summarize(ctx, entries, focus)
		writeJSON(w, http.StatusOK, analyzeResponse{Source: string(source), Result: summary})

	case "rank":
		entries, err := entriesForAnalysis(s.rt, req.Params)
		if err != nil {
			writeError(w, err)
			return
		}
		query, _ := req.Params["query"].(string)
		ranked, source := s.rt.Analyzer.RankByRelevance(ctx, entries, query)
		writeJSON(w, http.StatusOK, analyzeResponse{Source: string(source), Result: ranked})

	default:
		writeError(w, apierrors.ErrInvalidInput.WithMessage("unknown analyze action").WithDetail("action", req.Action))
	}
}

func untypedEntries(rt *runtime.Runtime) ([]store.Entry, error) {
	entries, err := rt.Store.AllActive()
	if err != nil {
		return nil, err
	}
	var out []store.Entry
	for _, e := range entries {
		if e.TypeName == "" {
			out = append(out, e)
		}
	}
	return out, nil
}

// entriesForAnalysis resolves the entry set an analyze action runs
// against: a query param narrows it via search, otherwise every active
// entry is used.
func entriesForAnalysis(rt *runtime.Runtime, params map[string]interface{}) ([]store.Entry, error) {
	if query, ok := params["query"].(string); ok && query != "" {
		return rt.Store.Search(query)
	}
	return rt.Store.AllActive()
}
