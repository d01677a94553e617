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
	"encoding/json"
	"net/http"

	apierrors "github.com/adityak74/open-context/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError translates err into a JSON error body and the matching
// status code, per the adapter error taxonomy: malformed input and
// validation failures are 400, missing resources 404, everything else
// 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := map[string]string{"error": err.Error()}

	if appErr, ok := err.(*apierrors.Error); ok {
		body["code"] = appErr.Code
	}

	switch {
	case apierrors.IsNotFound(err):
		status = http.StatusNotFound
	case apierrors.IsInvalidInput(err):
		status = http.StatusBadRequest
	case apierrors.IsUnauthorized(err):
		status = http.StatusUnauthorized
	}

	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apierrors.ErrInvalidInput.WithMessage("malformed JSON body").WithDetail("error", err.Error())
	}
	return nil
}
