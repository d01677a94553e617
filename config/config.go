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
	"time"
)

// Config is the complete runtime configuration for contextd.
type Config struct {
	Store    StoreConfig
	Analyzer AnalyzerConfig
	Tick     TickConfig
	Control  ControlConfig
	Cache    CacheConfig
	Server   ServerConfig
	MCP      MCPConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// StoreConfig locates the on-disk files the runtime persists to.
type StoreConfig struct {
	StorePath     string `mapstructure:"store_path"`
	AwarenessPath string `mapstructure:"awareness_path"`
	SchemaPath    string `mapstructure:"schema_path"`
}

// AnalyzerConfig configures the optional LM-backed analyzer.
type AnalyzerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TickConfig configures the background self-improvement loop.
type TickConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	WallCap  time.Duration `mapstructure:"wall_cap"`
}

// ControlConfig configures the control plane's risk-gating behavior.
type ControlConfig struct {
	PendingTTL     time.Duration `mapstructure:"pending_ttl"`
	AutoApproveLow bool          `mapstructure:"auto_approve_low"`
	AutoApproveMed bool          `mapstructure:"auto_approve_medium"`
	AutoApproveHi  bool          `mapstructure:"auto_approve_high"`
}

// CacheConfig configures the deep-analysis result cache the self-model
// snapshot is read through.
type CacheConfig struct {
	SelfModelTTL time.Duration `mapstructure:"deep_analysis_ttl"`
}

// ServerConfig configures the REST/WebSocket transport.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// APIKey, if set, requires every REST request to carry a matching
	// "Authorization: Bearer <key>" header. Empty disables the check,
	// which is the default for local/single-user use.
	APIKey string `mapstructure:"api_key"`
}

// MCPConfig configures the stdio MCP tool surface.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig configures the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfig returns a configuration with every field set to its
// documented default, before any file or environment layer is applied.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			StorePath:     "./data/store.json",
			AwarenessPath: "./data/awareness.json",
			SchemaPath:    "./data/schema.yaml",
		},
		Analyzer: AnalyzerConfig{
			Enabled:  true,
			Endpoint: "http://localhost:11434",
			Model:    "llama3",
			Timeout:  10 * time.Second,
		},
		Tick: TickConfig{
			Enabled:  true,
			Interval: 5 * time.Minute,
			WallCap:  30 * time.Second,
		},
		Control: ControlConfig{
			PendingTTL:     7 * 24 * time.Hour,
			AutoApproveLow: true,
			AutoApproveMed: false,
			AutoApproveHi:  false,
		},
		Cache: CacheConfig{
			SelfModelTTL: time.Hour,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8090,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
