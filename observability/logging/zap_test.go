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

package logging

import (
	"context"
	"testing"
)

func TestNewZapLogger_ImplementsLogger(t *testing.T) {
	var _ Logger = NewZapLogger(LevelInfo)
}

func TestZapLogger_With_ReturnsChildLogger(t *testing.T) {
	l := NewZapLogger(LevelDebug)
	child := l.With(String("component", "store"))

	if child == nil {
		t.Fatal("With() should not return nil")
	}

	// Should not panic when logging through the child.
	child.Info(context.Background(), "entry saved", Int("count", 1))
}

func TestZapLogger_SetLevel_DoesNotPanic(t *testing.T) {
	l := NewZapLogger(LevelInfo)
	l.SetLevel(LevelWarn)
	l.Debug(context.Background(), "suppressed by level")
	l.Warn(context.Background(), "emitted")
}

func TestZapLogger_SetSamplingRate_ClampsRange(t *testing.T) {
	l := NewZapLogger(LevelDebug)
	l.SetSamplingRate(-1)
	if l.samplingRate != 0 {
		t.Errorf("samplingRate = %v, want 0", l.samplingRate)
	}
	l.SetSamplingRate(5)
	if l.samplingRate != 1 {
		t.Errorf("samplingRate = %v, want 1", l.samplingRate)
	}
}

func TestZapLogger_Sync_NoPanic(t *testing.T) {
	l := NewZapLogger(LevelInfo)
	_ = l.Sync()
}
