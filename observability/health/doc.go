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

// Package health provides the three Kubernetes-style probes contextd
// exposes over HTTP:
//   - Liveness (/health/live): has the process wedged and needs a restart?
//   - Readiness (/health/ready): can it currently serve a request? This
//     is where the store-reachability and pending-queue-depth checks
//     registered by runtime.Builder attach, via FuncChecker.
//   - Startup (/health/startup): has the runtime finished assembling
//     its store/catalog/analyzer/control before traffic arrives?
//
// FuncChecker lets the runtime attach a domain probe without this
// package knowing about store.Store or control.Control:
//
//	obsMgr.AddReadinessCheck(health.NewFuncChecker("store", func(ctx context.Context) error {
//	    _, err := st.AllActive()
//	    return err
//	}))
package health
