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
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChain_OrderOfExecution(t *testing.T) {
	var order []string

	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	chain := NewChain(mark("a"), mark("b"))
	chain.Use(mark("c"))

	handler := chain.Then(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"a", "b", "c", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestChain_Len(t *testing.T) {
	chain := NewChain()
	if chain.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", chain.Len())
	}
	chain.Use(func(next http.Handler) http.Handler { return next })
	if chain.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", chain.Len())
	}
}

func TestRequestIDFromContext_RoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "abc-123")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "abc-123" {
		t.Fatalf("RequestIDFromContext() = %q, %v, want abc-123, true", id, ok)
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	_, ok := RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	if ok {
		t.Fatal("RequestIDFromContext() on bare context should report ok=false")
	}
}
