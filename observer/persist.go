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

package observer

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adityak74/open-context/pkg/errors"
)

func loadState(path string) (AwarenessState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return empty(), nil
	}
	if err != nil {
		return AwarenessState{}, errors.ErrStorageConnection.
			WithMessage("failed to read awareness file").
			WithDetail("path", path).
			WithDetail("error", err.Error())
	}

	var st AwarenessState
	if err := json.Unmarshal(data, &st); err != nil {
		return AwarenessState{}, errors.ErrInternal.
			WithMessage("awareness file is malformed").
			WithDetail("path", path).
			WithDetail("error", err.Error())
	}

	if st.Events == nil {
		st.Events = []Event{}
	}
	if st.Improvements == nil {
		st.Improvements = []ImprovementRecord{}
	}
	if st.Usefulness.Helpful == nil {
		st.Usefulness.Helpful = map[string]int{}
	}
	if st.Usefulness.Unhelpful == nil {
		st.Usefulness.Unhelpful = map[string]int{}
	}
	if st.PendingActions == nil {
		st.PendingActions = []PendingAction{}
	}
	if st.Protections == nil {
		st.Protections = []Protection{}
	}

	return st, nil
}

// saveState writes st to path atomically: write to a temp file in the same
// directory, then rename over the destination.
func saveState(path string, st AwarenessState) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.ErrStorageConnection.
			WithMessage("failed to create awareness directory").
			WithDetail("dir", dir).
			WithDetail("error", err.Error())
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.ErrInternal.WithMessage("failed to marshal awareness state").
			WithDetail("error", err.Error())
	}

	tmp, err := os.CreateTemp(dir, ".awareness-*.tmp")
	if err != nil {
		return errors.ErrStorageConnection.WithMessage("failed to create temp awareness file").
			WithDetail("error", err.Error())
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.ErrStorageConnection.WithMessage("failed to write temp awareness file").
			WithDetail("error", err.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.ErrStorageConnection.WithMessage("failed to close temp awareness file").
			WithDetail("error", err.Error())
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.ErrStorageConnection.WithMessage("failed to rename temp awareness file into place").
			WithDetail("path", path).
			WithDetail("error", err.Error())
	}

	return nil
}
