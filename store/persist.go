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

package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adityak74/open-context/pkg/errors"
)

// loadFile reads the store file at path. A missing file yields an empty
// store; a malformed file fails loudly, per the store's contract.
func loadFile(path string) (file, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return file{Version: FileVersion, Entries: []Entry{}, Groups: []Group{}}, nil
	}
	if err != nil {
		return file{}, errors.ErrStorageConnection.WithMessage("failed to read store file").
			WithDetail("path", path).WithDetail("error", err.Error())
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return file{}, errors.ErrInternal.WithMessage("store file is malformed").
			WithDetail("path", path).WithDetail("error", err.Error())
	}

	if f.Version == 0 {
		f.Version = FileVersion
	}
	if f.Entries == nil {
		f.Entries = []Entry{}
	}
	if f.Groups == nil {
		f.Groups = []Group{}
	}
	return f, nil
}

// saveFile writes f to path atomically: temp file in the same directory,
// then rename over the destination.
func saveFile(path string, f file) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.ErrStorageConnection.WithMessage("failed to create store directory").
			WithDetail("dir", dir).WithDetail("error", err.Error())
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.ErrInternal.WithMessage("failed to marshal store file").
			WithDetail("error", err.Error())
	}

	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return errors.ErrStorageConnection.WithMessage("failed to create temp store file").
			WithDetail("error", err.Error())
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.ErrStorageConnection.WithMessage("failed to write temp store file").
			WithDetail("error", err.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.ErrStorageConnection.WithMessage("failed to close temp store file").
			WithDetail("error", err.Error())
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.ErrStorageConnection.WithMessage("failed to rename temp store file into place").
			WithDetail("path", path).WithDetail("error", err.Error())
	}
	return nil
}
