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

package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// requestIDKey is also the key core/middleware's RequestID() handler writes
// through WithRequestID, so an HTTP request ID survives into every log line
// a handler emits, not just the access-log summary.
const requestIDKey contextKey = "request_id"

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// extractContextFields reads the request ID (if any) plus the active
// OpenTelemetry span's trace and span IDs, so a log line emitted between
// tracing.StartSpan and span.End carries both without the caller having to
// thread them through manually.
func extractContextFields(ctx context.Context) []Field {
	fields := make([]Field, 0, 3)

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, String("request_id", requestID))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, String("trace_id", sc.TraceID().String()))
		fields = append(fields, String("span_id", sc.SpanID().String()))
	}

	return fields
}
