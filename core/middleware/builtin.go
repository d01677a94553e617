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

package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/adityak74/open-context/pkg/errors"

	"github.com/adityak74/open-context/observability/logging"
)

// RequestID injects a request ID into the context and response headers.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)
			ctx := ContextWithRequestID(r.Context(), id)
			ctx = logging.WithRequestID(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder captures the response status code for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one structured line per request: method, path, status,
// duration, and request ID.
func AccessLog(logger logging.Logger) Middleware {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			requestID, _ := RequestIDFromContext(r.Context())
			logger.Info(r.Context(), "http request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", rec.status),
				logging.String("request_id", requestID),
				logging.Duration("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

// Recovery recovers from panics in downstream handlers and returns 500
// instead of crashing the process.
func Recovery(logger logging.Logger) Middleware {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context(), "panic recovered",
						logging.Any("panic", rec),
						logging.String("path", r.URL.Path),
					)
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds request handling to duration, returning 504 on expiry.
// It wraps http.TimeoutHandler so it composes with the rest of the chain.
func Timeout(duration time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, duration, "request timed out")
	}
}

// APIKeyAuth rejects any request whose Authorization header isn't
// "Bearer <apiKey>". An empty apiKey disables the check, which is the
// default for local/single-user deployments.
func APIKeyAuth(apiKey string, logger logging.Logger) Middleware {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || r.Header.Get("Authorization") == "Bearer "+apiKey {
				next.ServeHTTP(w, r)
				return
			}

			err := apierrors.ErrUnauthorized.WithMessage("missing or invalid API key")
			logger.Warn(r.Context(), "rejected unauthorized request",
				logging.String("path", r.URL.Path))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error(), "code": err.Code})
		})
	}
}
