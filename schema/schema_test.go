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

package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decisionCatalog() *Catalog {
	return &Catalog{
		Version: 1,
		Types: []Type{
			{
				Name:        "decision",
				Description: "An architecture decision",
				Fields: map[string]FieldSpec{
					"what": {Kind: KindString, Required: true},
					"why":  {Kind: KindString, Required: true},
				},
			},
		},
	}
}

func TestLoad_MissingFile_ReturnsNilNoError(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cat != nil {
		t.Errorf("expected nil catalog, got %+v", cat)
	}
}

func TestLoad_MalformedFile_ReturnsNilNoError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(path, []byte("not: [valid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cat != nil {
		t.Errorf("expected nil catalog for malformed file, got %+v", cat)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schema.yaml")
	cat := decisionCatalog()

	if err := Save(path, cat); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil || len(loaded.Types) != 1 || loaded.Types[0].Name != "decision" {
		t.Errorf("unexpected loaded catalog: %+v", loaded)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cat := decisionCatalog()
	ok, errs := cat.Validate("decision", map[string]interface{}{"what": "Use Redis"})
	if ok {
		t.Error("expected validation to fail")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, `"why"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error naming \"why\", got %v", errs)
	}
}

func TestValidate_UnknownType(t *testing.T) {
	cat := decisionCatalog()
	ok, errs := cat.Validate("nonexistent", map[string]interface{}{})
	if ok || len(errs) != 1 || errs[0] != "Unknown context type" {
		t.Errorf("expected single 'Unknown context type' error, got ok=%v errs=%v", ok, errs)
	}
}

func TestValidate_UnknownFieldsAllowed(t *testing.T) {
	cat := decisionCatalog()
	ok, errs := cat.Validate("decision", map[string]interface{}{
		"what":  "Use Redis",
		"why":   "Fast enough",
		"extra": "kept as-is",
	})
	if !ok || len(errs) != 0 {
		t.Errorf("expected success, got ok=%v errs=%v", ok, errs)
	}
}

func TestRenderContent_StableFormat(t *testing.T) {
	content := RenderContent("decision", map[string]interface{}{
		"what": "Use Redis",
		"why":  "Fast enough",
		"tags": []string{"cache", "infra"},
		"note": nil,
	})
	want := "[decision] tags: cache, infra | what: Use Redis | why: Fast enough"
	if content != want {
		t.Errorf("RenderContent = %q, want %q", content, want)
	}
}

func TestDescribe_NoCatalog(t *testing.T) {
	var cat *Catalog
	if !strings.Contains(cat.Describe(), "No context schema") {
		t.Errorf("expected no-schema message, got %q", cat.Describe())
	}
}
