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

// Package runtime assembles the store, schema catalog, observer,
// analyzer, control plane, improver, and self-model cache that make up
// one running instance of contextd, from a single config.Config.
//
// The serve, mcp, and tick subcommands all go through the same Builder
// so that the wiring between these pieces is defined in exactly one
// place.
//
// # Usage
//
//	rt, err := runtime.New(cfg).Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := rt.Improver.Tick(ctx)
package runtime
