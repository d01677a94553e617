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

// Package middleware chains net/http handlers for transport/httpapi and
// transport/mcptool's HTTP-facing endpoints.
//
// A Chain wraps a terminal http.Handler with an ordered list of Middleware,
// outermost first. This is how the runtime applies:
//   - RequestID, assigning and propagating a request ID via the context
//   - AccessLog, logging method/path/status/duration through a
//     logging.Logger
//   - Recovery, converting a panicking handler into a 500 instead of
//     crashing the process
//   - Timeout, bounding how long a handler may run
//   - APIKeyAuth, rejecting requests missing a configured API key
//
// Example:
//
//	chain := middleware.NewChain(
//	    middleware.Recovery(logger),
//	    middleware.RequestID(),
//	    middleware.AccessLog(logger),
//	    middleware.Timeout(30 * time.Second),
//	)
//
//	http.Handle("/", chain.Then(mux))
//
// observability.Manager.HTTPHandler and transport/httpapi's router both
// build a Chain this way rather than wrapping handlers by hand.
package middleware
