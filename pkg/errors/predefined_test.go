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

package errors

import (
	"testing"
)

func TestPredefinedErrors_Validation(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		category ErrorCategory
		code     string
	}{
		{"ErrInvalidInput", ErrInvalidInput, CategoryValidation, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != tt.category {
				t.Errorf("Category = %v, want %v", tt.err.Category, tt.category)
			}
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
		})
	}
}

func TestPredefinedErrors_Storage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrStorageConnection", ErrStorageConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code == "" {
				t.Error("Code should not be empty")
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
		})
	}
}

func TestPredefinedErrors_LLM(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
	}{
		{"ErrLLMConnection", ErrLLMConnection},
		{"ErrLLMTimeout", ErrLLMTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != CategoryLLM {
				t.Errorf("Category = %v, want %v", tt.err.Category, CategoryLLM)
			}
			if tt.err.Code == "" {
				t.Error("Code should not be empty")
			}
		})
	}
}

func TestPredefinedErrors_Internal(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
	}{
		{"ErrInternal", ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != CategoryInternal {
				t.Errorf("Category = %v, want %v", tt.err.Category, CategoryInternal)
			}
		})
	}
}

func TestErrorUsage_WithDetails(t *testing.T) {
	err := ErrInvalidInput.
		WithDetail("field", "content").
		WithDetail("reason", "empty value")

	if err.Details["field"] != "content" {
		t.Errorf("field detail = %v, want content", err.Details["field"])
	}

	if err.Details["reason"] != "empty value" {
		t.Errorf("reason detail = %v, want empty value", err.Details["reason"])
	}
}

func TestErrorUsage_ChainedOperations(t *testing.T) {
	err := ErrStorageConnection.
		WithMessage("failed to rewrite store file").
		WithDetails(map[string]interface{}{
			"path":    "/home/user/.open-context/store.json",
			"timeout": "5s",
		})

	if err.Details["path"] != "/home/user/.open-context/store.json" {
		t.Errorf("path = %v, want store path", err.Details["path"])
	}
}
