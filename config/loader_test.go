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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := DefaultConfig()
	if cfg.Server.Port != want.Server.Port {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, want.Server.Port)
	}
	if cfg.Store.StorePath != want.Store.StorePath {
		t.Errorf("Store.StorePath = %q, want %q", cfg.Store.StorePath, want.Store.StorePath)
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != DefaultConfig().Server.Port {
		t.Errorf("expected default port when file is missing, got %d", cfg.Server.Port)
	}
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contextd.yaml")
	yaml := `
server:
  port: 9191
analyzer:
  enabled: true
  endpoint: http://example.local:11434
  model: mistral
control:
  auto_approve_medium: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if !cfg.Analyzer.Enabled || cfg.Analyzer.Endpoint != "http://example.local:11434" || cfg.Analyzer.Model != "mistral" {
		t.Errorf("analyzer config not applied from file: %+v", cfg.Analyzer)
	}
	if !cfg.Control.AutoApproveMed {
		t.Error("expected control.auto_approve_medium overridden to true")
	}
	// Values the file didn't touch keep their default.
	if cfg.Store.StorePath != DefaultConfig().Store.StorePath {
		t.Errorf("expected untouched field to keep default, got %q", cfg.Store.StorePath)
	}
}

func TestLoad_EnvironmentOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contextd.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9191\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Setenv("CONTEXTD_SERVER_PORT", "9292")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9292 {
		t.Errorf("Server.Port = %d, want 9292 (env should win over file)", cfg.Server.Port)
	}
}

func TestLoad_InvalidConfigurationIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contextd.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 70000\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected Load to reject an out-of-range server port")
	}
}

func TestLoad_DurationFieldsParseFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contextd.yaml")
	if err := os.WriteFile(path, []byte("tick:\n  interval: 2m\n  wall_cap: 45s\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Tick.Interval != 2*time.Minute {
		t.Errorf("Tick.Interval = %v, want 2m", cfg.Tick.Interval)
	}
	if cfg.Tick.WallCap != 45*time.Second {
		t.Errorf("Tick.WallCap = %v, want 45s", cfg.Tick.WallCap)
	}
}
