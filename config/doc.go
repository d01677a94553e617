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

// Package config loads contextd's runtime configuration through viper,
// layering three sources from lowest to highest precedence: defaults
// registered in code, an optional YAML file, and CONTEXTD_-prefixed
// environment variables.
//
// # Usage
//
//	cfg, err := config.Load("contextd.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Passing an empty path loads defaults plus environment overrides only.
//
// Environment variables follow CONTEXTD_<SECTION>_<FIELD>, e.g.
// CONTEXTD_SERVER_PORT overrides server.port, and
// CONTEXTD_ANALYZER_ENDPOINT overrides analyzer.endpoint.
//
// Only runtime configuration lives here. The schema catalog and the
// store/awareness files have their own independent (de)serialization and
// are never touched by this package.
package config
