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

// Package errors provides structured error handling for open-context.
//
// The package defines a small, categorized error system used across the
// store, analyzer, and transport layers:
//
//   - Categorized errors so transport/httpapi's json.go can map an error
//     to the right HTTP status without string matching
//   - Rich error context via Details
//   - Standard Go error wrapping support (Is/As/Unwrap)
//
// # Error Categories
//
//   - Validation: bad context/schema/bubble input
//   - Storage: the on-disk store (store/) and its file locking
//   - LLM: the local analyzer's language model calls
//   - Network: general network/connection failures
//   - NotFound: a requested context, bubble, or pending action is missing
//   - Unauthorized: a REST request failed core/middleware's APIKeyAuth
//   - Internal: everything else
//
// # Creating Errors
//
// Use predefined errors:
//
//	err := errors.ErrInvalidInput.WithDetail("field", "title")
//
// Or create custom errors:
//
//	err := errors.New(
//	    errors.CategoryValidation,
//	    "CUSTOM_ERROR",
//	    "custom error message",
//	)
//
// # Wrapping Errors
//
// Wrap errors to add context:
//
//	if err := validateContext(ctx); err != nil {
//	    return errors.ErrInvalidInput.
//	        WithMessage("context validation failed").
//	        Wrap(err)
//	}
//
// # Error Checking
//
// Check error types using standard Go patterns:
//
//	// Check if error matches a specific type
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
//	}
//
//	// Extract error details
//	var ocErr *errors.Error
//	if errors.As(err, &ocErr) {
//	    log.Printf("Code: %s, Details: %v", ocErr.Code, ocErr.Details)
//	}
package errors
