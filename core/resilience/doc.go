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

// Package resilience wraps the analyzer's calls into the local LM so one
// slow or broken endpoint degrades instead of cascading into every tick.
//
// The analyzer composes two patterns around every generate call, breaker
// outermost so a string of retried-and-failed calls still counts as one
// trip toward opening the circuit:
//
//	breaker := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig())
//
//	err := breaker.Execute(ctx, func(ctx context.Context) error {
//	    return resilience.Retry(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) error {
//	        return callLocalLM(ctx)
//	    })
//	})
//
// Once MaxFailures consecutive calls fail, the breaker opens and every
// call fails fast with ErrCircuitOpen until Timeout elapses, at which
// point one half-open probe is allowed through.
package resilience
