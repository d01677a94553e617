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

	"github.com/adityak74/open-context/schema"
)

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	if s.rt.Catalog == nil {
		writeJSON(w, http.StatusOK, schema.Catalog{Version: 1})
		return
	}
	writeJSON(w, http.StatusOK, s.rt.Catalog)
}

// handlePutSchema replaces the catalog wholesale and persists it to the
// configured schema path. The user, through the UI or a direct REST
// call, is the only writer of this file.
func (s *Server) handlePutSchema(w http.ResponseWriter, r *http.Request) {
	var cat schema.Catalog
	if err := decodeJSON(r, &cat); err != nil {
		writeError(w, err)
		return
	}
	if err := schema.Save(s.rt.Config.Store.SchemaPath, &cat); err != nil {
		writeError(w, err)
		return
	}
	s.rt.Catalog = &cat
	writeJSON(w, http.StatusOK, s.rt.Catalog)
}
