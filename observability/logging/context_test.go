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
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()

	if id := GetRequestID(ctx); id != "" {
		t.Errorf("expected empty request ID, got %s", id)
	}

	ctx = WithRequestID(ctx, "req-123")
	if id := GetRequestID(ctx); id != "req-123" {
		t.Errorf("expected request ID 'req-123', got %s", id)
	}
}

func TestExtractContextFieldsEmpty(t *testing.T) {
	fields := extractContextFields(context.Background())
	if len(fields) != 0 {
		t.Errorf("expected 0 fields, got %d", len(fields))
	}
}

func TestExtractContextFieldsRequestIDOnly(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	fields := extractContextFields(ctx)
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "request_id" || fields[0].Value != "req-123" {
		t.Errorf("unexpected field: %+v", fields[0])
	}
}

func TestExtractContextFieldsFromSpan(t *testing.T) {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    [16]byte{1},
		SpanID:     [8]byte{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = WithRequestID(ctx, "req-123")

	fieldMap := make(map[string]interface{})
	for _, f := range extractContextFields(ctx) {
		fieldMap[f.Key] = f.Value
	}

	if fieldMap["request_id"] != "req-123" {
		t.Error("request_id field incorrect")
	}
	if fieldMap["trace_id"] != sc.TraceID().String() {
		t.Error("trace_id field incorrect")
	}
	if fieldMap["span_id"] != sc.SpanID().String() {
		t.Error("span_id field incorrect")
	}
}
