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

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix namespaces every environment variable this package reads, so
// CONTEXTD_SERVER_PORT overrides server.port.
const envPrefix = "CONTEXTD"

// registerDefaults seeds v with DefaultConfig's values, keyed the same
// way mapstructure tags dot-join nested structs.
func registerDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("store.store_path", d.Store.StorePath)
	v.SetDefault("store.awareness_path", d.Store.AwarenessPath)
	v.SetDefault("store.schema_path", d.Store.SchemaPath)

	v.SetDefault("analyzer.enabled", d.Analyzer.Enabled)
	v.SetDefault("analyzer.endpoint", d.Analyzer.Endpoint)
	v.SetDefault("analyzer.model", d.Analyzer.Model)
	v.SetDefault("analyzer.timeout", d.Analyzer.Timeout)

	v.SetDefault("tick.enabled", d.Tick.Enabled)
	v.SetDefault("tick.interval", d.Tick.Interval)
	v.SetDefault("tick.wall_cap", d.Tick.WallCap)

	v.SetDefault("control.pending_ttl", d.Control.PendingTTL)
	v.SetDefault("control.auto_approve_low", d.Control.AutoApproveLow)
	v.SetDefault("control.auto_approve_medium", d.Control.AutoApproveMed)
	v.SetDefault("control.auto_approve_high", d.Control.AutoApproveHi)

	v.SetDefault("cache.deep_analysis_ttl", d.Cache.SelfModelTTL)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.api_key", d.Server.APIKey)

	v.SetDefault("mcp.enabled", d.MCP.Enabled)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Load builds a Config by layering, lowest precedence first: registered
// defaults, an optional YAML file at path (skipped if path is empty or
// the file does not exist), then CONTEXTD_-prefixed environment
// variables. path may be empty to load defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	registerDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
