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

package runtime

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adityak74/open-context/config"
	"github.com/adityak74/open-context/observability/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Store.StorePath = filepath.Join(dir, "store.json")
	cfg.Store.AwarenessPath = filepath.Join(dir, "awareness.json")
	cfg.Store.SchemaPath = filepath.Join(dir, "schema.yaml")
	return cfg
}

func TestBuild_AssemblesEveryComponent(t *testing.T) {
	rt, err := New(testConfig(t)).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rt.Store == nil || rt.Observer == nil || rt.Analyzer == nil || rt.Control == nil || rt.Improver == nil || rt.Cache == nil || rt.Observability == nil {
		t.Fatal("expected every component to be non-nil")
	}
	if rt.Improver.Metrics == nil || rt.Improver.Metrics != rt.Observability.RuntimeMetrics() {
		t.Error("expected the improver to record ticks through the runtime's metrics instance")
	}
	if rt.Improver.Store != rt.Store || rt.Improver.Observer != rt.Observer || rt.Improver.Control != rt.Control {
		t.Error("expected the improver to be wired to the same store/observer/control instances")
	}
}

func TestBuild_NilConfigFallsBackToDefaults(t *testing.T) {
	rt, err := New(nil).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rt.Config == nil {
		t.Fatal("expected a default config to be substituted")
	}
}

func TestBuild_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = -1
	if _, err := New(cfg).Build(); err == nil {
		t.Error("expected Build to reject an invalid config")
	}
}

func TestBuild_MissingSchemaFileYieldsNilCatalog(t *testing.T) {
	rt, err := New(testConfig(t)).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rt.Catalog != nil {
		t.Error("expected a nil catalog when no schema file exists on disk")
	}
}

func TestBuild_RespectsLoggerOverride(t *testing.T) {
	nop := logging.NewNopLogger()
	rt, err := New(testConfig(t)).WithLogger(nop).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rt.Logger != nop {
		t.Error("expected WithLogger override to be used verbatim")
	}
}

func TestMustBuild_PanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustBuild to panic on invalid config")
		}
	}()
	cfg := testConfig(t)
	cfg.Store.StorePath = ""
	New(cfg).MustBuild()
}

func TestBuild_ImproverTickRunsAgainstWiredStore(t *testing.T) {
	rt, err := New(testConfig(t)).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := rt.Improver.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
}
