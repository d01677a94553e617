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

// LLM provider errors, both raised by analyzer.classifyLMError after a
// generate call through the circuit breaker and retry loop fails.
var (
	// ErrLLMConnection indicates the local LM endpoint could not be reached
	// or returned a non-timeout failure.
	ErrLLMConnection = &Error{
		Category: CategoryLLM,
		Code:     "LLM_CONNECTION_ERROR",
		Message:  "failed to connect to LLM provider",
	}

	// ErrLLMTimeout indicates a generate call exceeded Config.Timeout.
	ErrLLMTimeout = &Error{
		Category: CategoryLLM,
		Code:     "LLM_TIMEOUT",
		Message:  "LLM request timed out",
	}
)
