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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adityak74/open-context/pkg/errors"
)

// Load reads the catalog from path. A missing or malformed file yields a
// nil catalog and no error — the runtime must survive without a schema.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var cat Catalog
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, nil
		}
	} else if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, nil
	}

	return &cat, nil
}

// Save writes the catalog to path, creating the parent directory if
// needed. The runtime itself never calls this — only the user-facing
// schema REST endpoint does, on explicit user edit.
func Save(path string, cat *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ErrStorageConnection.WithMessage("failed to create schema directory").
			WithDetail("path", path).WithDetail("error", err.Error())
	}

	var data []byte
	var err error
	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(cat, "", "  ")
	} else {
		data, err = yaml.Marshal(cat)
	}
	if err != nil {
		return errors.ErrInternal.WithMessage("failed to marshal schema catalog").
			WithDetail("error", err.Error())
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ErrStorageConnection.WithMessage("failed to write schema file").
			WithDetail("path", path).WithDetail("error", err.Error())
	}
	return nil
}
